package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/varoOP/shinkrobot/internal/cache"
	"github.com/varoOP/shinkrobot/internal/domain"
	"github.com/varoOP/shinkrobot/pkg/anilist"
)

type Service interface {
	GetAnime(ctx context.Context, id int) (*anilist.Anime, error)
	GetManga(ctx context.Context, id int) (*anilist.Manga, error)
	GetCharacter(ctx context.Context, id int) (*anilist.Character, error)
	GetUser(ctx context.Context, id int) (*anilist.User, error)

	SearchAnime(ctx context.Context, search string, page, perPage int) ([]anilist.Anime, error)
	SearchManga(ctx context.Context, search string, page, perPage int) ([]anilist.Manga, error)
	SearchCharacter(ctx context.Context, search string, page, perPage int) ([]anilist.Character, error)
	SearchUser(ctx context.Context, search string, page, perPage int) ([]anilist.User, error)

	Stats() domain.CatalogStats
}

type service struct {
	log    zerolog.Logger
	source domain.CatalogSource
	flight singleflight.Group

	anime     *kindCache[*anilist.Anime]
	manga     *kindCache[*anilist.Manga]
	character *kindCache[*anilist.Character]
	user      *kindCache[*anilist.User]
}

type kindCache[V any] struct {
	kind     domain.Kind
	entries  *cache.BoundedCache[int, V]
	hits     atomic.Uint64
	misses   atomic.Uint64
	failures atomic.Uint64
}

func newKindCache[V any](kind domain.Kind, capacity int) *kindCache[V] {
	return &kindCache[V]{
		kind:    kind,
		entries: cache.New[int, V](capacity),
	}
}

func (k *kindCache[V]) stats() domain.KindStats {
	return domain.KindStats{
		Kind:     k.kind,
		Size:     k.entries.Len(),
		Capacity: k.entries.Capacity(),
		Hits:     k.hits.Load(),
		Misses:   k.misses.Load(),
		Failures: k.failures.Load(),
	}
}

// NewService creates the catalog accessor with one cache of the given capacity per kind.
func NewService(log zerolog.Logger, source domain.CatalogSource, capacity int) Service {
	return &service{
		log:       log.With().Str("module", "catalog").Logger(),
		source:    source,
		anime:     newKindCache[*anilist.Anime](domain.KindAnime, capacity),
		manga:     newKindCache[*anilist.Manga](domain.KindManga, capacity),
		character: newKindCache[*anilist.Character](domain.KindCharacter, capacity),
		user:      newKindCache[*anilist.User](domain.KindUser, capacity),
	}
}

func (s *service) GetAnime(ctx context.Context, id int) (*anilist.Anime, error) {
	return get(ctx, s, s.anime, id, s.source.Anime)
}

func (s *service) GetManga(ctx context.Context, id int) (*anilist.Manga, error) {
	return get(ctx, s, s.manga, id, s.source.Manga)
}

func (s *service) GetCharacter(ctx context.Context, id int) (*anilist.Character, error) {
	return get(ctx, s, s.character, id, s.source.Character)
}

func (s *service) GetUser(ctx context.Context, id int) (*anilist.User, error) {
	return get(ctx, s, s.user, id, s.source.User)
}

func (s *service) SearchAnime(ctx context.Context, search string, page, perPage int) ([]anilist.Anime, error) {
	return find(ctx, s, domain.KindAnime, search, page, perPage, s.source.SearchAnime)
}

func (s *service) SearchManga(ctx context.Context, search string, page, perPage int) ([]anilist.Manga, error) {
	return find(ctx, s, domain.KindManga, search, page, perPage, s.source.SearchManga)
}

func (s *service) SearchCharacter(ctx context.Context, search string, page, perPage int) ([]anilist.Character, error) {
	return find(ctx, s, domain.KindCharacter, search, page, perPage, s.source.SearchCharacter)
}

func (s *service) SearchUser(ctx context.Context, search string, page, perPage int) ([]anilist.User, error) {
	return find(ctx, s, domain.KindUser, search, page, perPage, s.source.SearchUser)
}

func (s *service) Stats() domain.CatalogStats {
	return domain.CatalogStats{
		Kinds: []domain.KindStats{
			s.anime.stats(),
			s.manga.stats(),
			s.character.stats(),
			s.user.stats(),
		},
	}
}

// get reads id through the kind's cache. Failures are never cached.
func get[V any](ctx context.Context, s *service, kc *kindCache[V], id int, fetch func(context.Context, int) (V, error)) (V, error) {
	var zero V
	if id <= 0 {
		return zero, errors.Wrapf(domain.ErrInvalidID, "%s %d", kc.kind, id)
	}

	if v, ok := kc.entries.Get(id); ok {
		kc.hits.Add(1)
		s.log.Trace().Str("kind", string(kc.kind)).Int("id", id).Msg("cache hit")
		return v, nil
	}
	kc.misses.Add(1)

	v, err := kc.entries.GetOrInsertWith(ctx, id, func(ctx context.Context) (V, error) {
		key := fmt.Sprintf("%s:%d", kc.kind, id)
		// The shared fetch outlives any single caller; the client timeout bounds it.
		ch := s.flight.DoChan(key, func() (any, error) {
			return fetch(context.WithoutCancel(ctx), id)
		})

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case res := <-ch:
			if res.Err != nil {
				return zero, res.Err
			}
			if res.Shared {
				s.log.Trace().Str("kind", string(kc.kind)).Int("id", id).Msg("shared in-flight fetch")
			}
			return res.Val.(V), nil
		}
	})
	if err != nil {
		kc.failures.Add(1)
		s.log.Debug().Err(err).Str("kind", string(kc.kind)).Int("id", id).Msg("fetch failed")
		return zero, lookupError(kc.kind, id, err)
	}

	s.log.Debug().Str("kind", string(kc.kind)).Int("id", id).Int("cache_size", kc.entries.Len()).Msg("fetched and cached")
	return v, nil
}

// find always goes to the remote source; search results are never cached.
func find[T any](ctx context.Context, s *service, kind domain.Kind, search string, page, perPage int, fn func(context.Context, string, int, int) ([]T, error)) ([]T, error) {
	search = strings.TrimSpace(search)
	if search == "" {
		return nil, domain.ErrInvalidQuery
	}

	res, err := fn(ctx, search, page, perPage)
	if err != nil {
		s.log.Debug().Err(err).Str("kind", string(kind)).Str("search", search).Msg("search failed")
		return nil, &remoteError{
			op:   fmt.Sprintf("search %s %q", kind, search),
			errs: []error{domain.ErrRemoteUnavailable, err},
		}
	}

	if len(res) == 0 {
		return nil, errors.Wrapf(domain.ErrNoResults, "search %s %q", kind, search)
	}

	return res, nil
}

func lookupError(kind domain.Kind, id int, err error) error {
	op := fmt.Sprintf("%s %d", kind, id)
	if errors.Is(err, anilist.ErrNotFound) {
		return errors.Wrap(domain.ErrNotFound, op)
	}
	// Unavailability still reads as not found for callers that only branch on ErrNotFound.
	return &remoteError{op: op, errs: []error{domain.ErrNotFound, domain.ErrRemoteUnavailable, err}}
}

type remoteError struct {
	op   string
	errs []error
}

func (e *remoteError) Error() string {
	return fmt.Sprintf("%s: %v", e.op, e.errs[len(e.errs)-1])
}

func (e *remoteError) Unwrap() []error {
	return e.errs
}
