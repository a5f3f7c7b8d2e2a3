package database

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varoOP/shinkrobot/internal/domain"
)

func newTestRepo(t *testing.T) domain.ChatRepo {
	t.Helper()

	db, err := NewDB(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewChatRepo(zerolog.Nop(), db)
}

func TestNewDB_Reopen(t *testing.T) {
	dir := t.TempDir()

	db, err := NewDB(dir, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Ping(context.Background()))
	require.NoError(t, db.Close())

	db, err = NewDB(dir, zerolog.Nop())
	require.NoError(t, err)
	defer db.Close()

	var version int
	require.NoError(t, db.handler.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, len(migrations), version)
}

func TestChatRepo_Users(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	_, err := repo.FindUser(ctx, 10)
	assert.True(t, errors.Is(err, domain.ErrRecordNotFound))

	user := &domain.User{ID: 10, LanguageCode: "pt"}
	require.NoError(t, repo.StoreUser(ctx, user))
	assert.False(t, user.CreatedAt.IsZero())

	got, err := repo.FindUser(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "pt", got.LanguageCode)
	assert.Equal(t, 0, got.AnilistID)
	assert.False(t, got.HasToken())
	assert.True(t, user.CreatedAt.Equal(got.CreatedAt))

	got.LanguageCode = "en"
	got.AnilistID = 5
	got.AnilistToken = "secret"
	require.NoError(t, repo.UpdateUser(ctx, got))

	got, err = repo.FindUser(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "en", got.LanguageCode)
	assert.Equal(t, 5, got.AnilistID)
	assert.Equal(t, "secret", got.AnilistToken)

	got.AnilistID = 0
	got.AnilistToken = ""
	require.NoError(t, repo.UpdateUser(ctx, got))

	got, err = repo.FindUser(ctx, 10)
	require.NoError(t, err)
	assert.False(t, got.HasToken())

	require.Error(t, repo.StoreUser(ctx, &domain.User{ID: 10, LanguageCode: "pt"}))

	require.NoError(t, repo.DeleteUser(ctx, 10))
	_, err = repo.FindUser(ctx, 10)
	assert.True(t, errors.Is(err, domain.ErrRecordNotFound))

	err = repo.UpdateUser(ctx, &domain.User{ID: 10, LanguageCode: "pt"})
	assert.True(t, errors.Is(err, domain.ErrRecordNotFound))
}

func TestChatRepo_Groups(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	_, err := repo.FindGroup(ctx, -100)
	assert.True(t, errors.Is(err, domain.ErrRecordNotFound))

	require.NoError(t, repo.StoreGroup(ctx, &domain.Group{ID: -100, LanguageCode: "pt"}))

	group, err := repo.FindGroup(ctx, -100)
	require.NoError(t, err)
	assert.Equal(t, "pt", group.LanguageCode)

	group.LanguageCode = "en"
	require.NoError(t, repo.UpdateGroup(ctx, group))

	group, err = repo.FindGroup(ctx, -100)
	require.NoError(t, err)
	assert.Equal(t, "en", group.LanguageCode)

	require.NoError(t, repo.DeleteGroup(ctx, -100))
	err = repo.UpdateGroup(ctx, group)
	assert.True(t, errors.Is(err, domain.ErrRecordNotFound))
}
