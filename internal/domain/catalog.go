package domain

import (
	"context"

	"github.com/varoOP/shinkrobot/pkg/anilist"
)

// Kind is the entity category used to namespace cached ids.
type Kind string

const (
	KindAnime     Kind = "anime"
	KindManga     Kind = "manga"
	KindCharacter Kind = "character"
	KindUser      Kind = "user"
)

var Kinds = []Kind{KindAnime, KindManga, KindCharacter, KindUser}

// CatalogSource is the remote catalog the accessor reads through to.
type CatalogSource interface {
	Anime(ctx context.Context, id int) (*anilist.Anime, error)
	Manga(ctx context.Context, id int) (*anilist.Manga, error)
	Character(ctx context.Context, id int) (*anilist.Character, error)
	User(ctx context.Context, id int) (*anilist.User, error)

	SearchAnime(ctx context.Context, search string, page, perPage int) ([]anilist.Anime, error)
	SearchManga(ctx context.Context, search string, page, perPage int) ([]anilist.Manga, error)
	SearchCharacter(ctx context.Context, search string, page, perPage int) ([]anilist.Character, error)
	SearchUser(ctx context.Context, search string, page, perPage int) ([]anilist.User, error)
}

// KindStats describes one per-kind cache.
type KindStats struct {
	Kind     Kind
	Size     int
	Capacity int
	Hits     uint64
	Misses   uint64
	Failures uint64
}

type CatalogStats struct {
	Kinds []KindStats
}
