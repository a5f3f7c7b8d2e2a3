package database

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/varoOP/shinkrobot/internal/domain"
)

// ChatRepo implements domain.ChatRepo interface
type ChatRepo struct {
	log zerolog.Logger
	db  *DB
}

// NewChatRepo creates a new chat preference repository
func NewChatRepo(log zerolog.Logger, db *DB) domain.ChatRepo {
	return &ChatRepo{
		log: log.With().Str("repo", "chat").Logger(),
		db:  db,
	}
}

// FindUser returns the stored user or domain.ErrRecordNotFound
func (r *ChatRepo) FindUser(ctx context.Context, id int64) (*domain.User, error) {
	queryBuilder := r.db.squirrel.
		Select("id", "anilist_id", "anilist_token", "language_code", "created_at", "updated_at").
		From("users").
		Where(sq.Eq{"id": id})

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("FindUser")

	var (
		user                 domain.User
		anilistID            sql.NullInt64
		anilistToken         sql.NullString
		createdAt, updatedAt string
	)

	row := r.db.handler.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&user.ID, &anilistID, &anilistToken, &user.LanguageCode, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, errors.Wrap(err, "error scanning row")
	}

	user.AnilistID = int(anilistID.Int64)
	user.AnilistToken = anilistToken.String
	user.CreatedAt = parseTime(createdAt)
	user.UpdatedAt = parseTime(updatedAt)

	return &user, nil
}

// StoreUser inserts a new user and sets its timestamps
func (r *ChatRepo) StoreUser(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC().Truncate(time.Second)

	queryBuilder := r.db.squirrel.
		Insert("users").
		Columns("id", "anilist_id", "anilist_token", "language_code", "created_at", "updated_at").
		Values(user.ID, nullInt(user.AnilistID), nullString(user.AnilistToken), user.LanguageCode, formatTime(now), formatTime(now))

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Int64("id", user.ID).Msg("StoreUser")

	if _, err := r.db.handler.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "error executing query")
	}

	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

// UpdateUser overwrites the preferences of an existing user
func (r *ChatRepo) UpdateUser(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC().Truncate(time.Second)

	queryBuilder := r.db.squirrel.
		Update("users").
		Set("anilist_id", nullInt(user.AnilistID)).
		Set("anilist_token", nullString(user.AnilistToken)).
		Set("language_code", user.LanguageCode).
		Set("updated_at", formatTime(now)).
		Where(sq.Eq{"id": user.ID})

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Int64("id", user.ID).Msg("UpdateUser")

	res, err := r.db.handler.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "error executing query")
	}

	if err := expectRow(res); err != nil {
		return err
	}

	user.UpdatedAt = now
	return nil
}

// DeleteUser removes a user
func (r *ChatRepo) DeleteUser(ctx context.Context, id int64) error {
	queryBuilder := r.db.squirrel.
		Delete("users").
		Where(sq.Eq{"id": id})

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return errors.Wrap(err, "error building delete query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("DeleteUser")

	if _, err := r.db.handler.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "error executing delete query")
	}

	return nil
}

// FindGroup returns the stored group or domain.ErrRecordNotFound
func (r *ChatRepo) FindGroup(ctx context.Context, id int64) (*domain.Group, error) {
	queryBuilder := r.db.squirrel.
		Select("id", "language_code", "created_at", "updated_at").
		From("chat_groups").
		Where(sq.Eq{"id": id})

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("FindGroup")

	var (
		group                domain.Group
		createdAt, updatedAt string
	)

	row := r.db.handler.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&group.ID, &group.LanguageCode, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, errors.Wrap(err, "error scanning row")
	}

	group.CreatedAt = parseTime(createdAt)
	group.UpdatedAt = parseTime(updatedAt)

	return &group, nil
}

// StoreGroup inserts a new group and sets its timestamps
func (r *ChatRepo) StoreGroup(ctx context.Context, group *domain.Group) error {
	now := time.Now().UTC().Truncate(time.Second)

	queryBuilder := r.db.squirrel.
		Insert("chat_groups").
		Columns("id", "language_code", "created_at", "updated_at").
		Values(group.ID, group.LanguageCode, formatTime(now), formatTime(now))

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("StoreGroup")

	if _, err := r.db.handler.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "error executing query")
	}

	group.CreatedAt = now
	group.UpdatedAt = now
	return nil
}

// UpdateGroup overwrites the language of an existing group
func (r *ChatRepo) UpdateGroup(ctx context.Context, group *domain.Group) error {
	now := time.Now().UTC().Truncate(time.Second)

	queryBuilder := r.db.squirrel.
		Update("chat_groups").
		Set("language_code", group.LanguageCode).
		Set("updated_at", formatTime(now)).
		Where(sq.Eq{"id": group.ID})

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return errors.Wrap(err, "error building query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("UpdateGroup")

	res, err := r.db.handler.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "error executing query")
	}

	if err := expectRow(res); err != nil {
		return err
	}

	group.UpdatedAt = now
	return nil
}

// DeleteGroup removes a group
func (r *ChatRepo) DeleteGroup(ctx context.Context, id int64) error {
	queryBuilder := r.db.squirrel.
		Delete("chat_groups").
		Where(sq.Eq{"id": id})

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return errors.Wrap(err, "error building delete query")
	}

	r.log.Trace().Str("query", query).Interface("args", args).Msg("DeleteGroup")

	if _, err := r.db.handler.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "error executing delete query")
	}

	return nil
}

func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "error reading affected rows")
	}
	if n == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func nullInt(v int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(v), Valid: v != 0}
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
