package catalog

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/varoOP/shinkrobot/internal/cache"
	"github.com/varoOP/shinkrobot/internal/domain"
	"github.com/varoOP/shinkrobot/pkg/anilist"
)

// Pool keeps one AniList client per chat user, authenticated with the user's stored token.
type Pool struct {
	log     zerolog.Logger
	base    *anilist.Client
	repo    domain.ChatRepo
	clients *cache.BoundedCache[int64, *anilist.Client]
}

func NewPool(log zerolog.Logger, base *anilist.Client, repo domain.ChatRepo, capacity int) *Pool {
	return &Pool{
		log:     log.With().Str("module", "pool").Logger(),
		base:    base,
		repo:    repo,
		clients: cache.New[int64, *anilist.Client](capacity),
	}
}

// ForUser returns the client for userID. Users without a token, or unknown users,
// get the anonymous client.
func (p *Pool) ForUser(ctx context.Context, userID int64) (*anilist.Client, error) {
	return p.clients.GetOrInsertWith(ctx, userID, func(ctx context.Context) (*anilist.Client, error) {
		user, err := p.repo.FindUser(ctx, userID)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return p.base, nil
			}
			return nil, errors.Wrap(err, "failed to find user")
		}

		if !user.HasToken() {
			return p.base, nil
		}

		p.log.Debug().Int64("user_id", userID).Msg("creating authenticated AniList client")
		return p.base.Authenticated(user.AnilistToken), nil
	})
}

// Viewer resolves the AniList account linked to userID.
func (p *Pool) Viewer(ctx context.Context, userID int64) (*anilist.User, error) {
	client, err := p.ForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !client.HasToken() {
		return nil, errors.Wrapf(domain.ErrNotFound, "no linked account for user %d", userID)
	}

	viewer, err := client.Viewer(ctx)
	if err != nil {
		return nil, lookupError(domain.KindUser, 0, err)
	}

	return viewer, nil
}

// Forget drops the pooled client so the next request picks up a changed token.
func (p *Pool) Forget(userID int64) {
	if _, ok := p.clients.Take(userID); ok {
		p.log.Debug().Int64("user_id", userID).Msg("dropped pooled client")
	}
}
