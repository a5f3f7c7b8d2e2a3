package command

import (
	"context"
	"strconv"

	"github.com/pkg/errors"

	"github.com/varoOP/shinkrobot/internal/domain"
	"github.com/varoOP/shinkrobot/internal/format"
	"github.com/varoOP/shinkrobot/pkg/anilist"
)

// searchLimit is how many matches a text search offers as buttons.
const searchLimit = 6

// lookup describes how one kind is fetched, searched and rendered.
type lookup[T any] struct {
	callback string
	usage    string
	get      func(ctx context.Context, id int) (*T, error)
	search   func(ctx context.Context, search string, page, perPage int) ([]T, error)
	info     func(*T) string
	photo    func(*T) string
	label    func(*T) string
	id       func(*T) int
}

func animeCommand(ctx context.Context, h *Handler, c *call) (*Reply, error) {
	return run(ctx, h, c, lookup[anilist.Anime]{
		callback: "anime",
		usage:    "anime_usage",
		get:      h.catalog.GetAnime,
		search:   h.catalog.SearchAnime,
		info:     format.AnimeInfo,
		photo:    func(a *anilist.Anime) string { return format.BannerURL(a.ID) },
		label:    func(a *anilist.Anime) string { return a.Title.Preferred() },
		id:       func(a *anilist.Anime) int { return a.ID },
	})
}

func mangaCommand(ctx context.Context, h *Handler, c *call) (*Reply, error) {
	return run(ctx, h, c, lookup[anilist.Manga]{
		callback: "manga",
		usage:    "manga_usage",
		get:      h.catalog.GetManga,
		search:   h.catalog.SearchManga,
		info:     format.MangaInfo,
		photo:    func(m *anilist.Manga) string { return format.BannerURL(m.ID) },
		label:    func(m *anilist.Manga) string { return m.Title.Preferred() },
		id:       func(m *anilist.Manga) int { return m.ID },
	})
}

func characterCommand(ctx context.Context, h *Handler, c *call) (*Reply, error) {
	return run(ctx, h, c, lookup[anilist.Character]{
		callback: "char",
		usage:    "character_usage",
		get:      h.catalog.GetCharacter,
		search:   h.catalog.SearchCharacter,
		info:     format.CharacterInfo,
		photo:    func(ch *anilist.Character) string { return ch.Image.Largest() },
		label:    func(ch *anilist.Character) string { return ch.Name.Full },
		id:       func(ch *anilist.Character) int { return ch.ID },
	})
}

func userCommand(ctx context.Context, h *Handler, c *call) (*Reply, error) {
	return run(ctx, h, c, userLookup(h))
}

func userLookup(h *Handler) lookup[anilist.User] {
	return lookup[anilist.User]{
		callback: "user",
		usage:    "user_usage",
		get:      h.catalog.GetUser,
		search:   h.catalog.SearchUser,
		info:     format.UserInfo,
		photo:    userPhoto,
		label:    func(u *anilist.User) string { return u.Name },
		id:       func(u *anilist.User) int { return u.ID },
	}
}

func userPhoto(u *anilist.User) string {
	if u.BannerImage != "" {
		return u.BannerImage
	}
	return u.Avatar.Largest()
}

// run answers "<cmd> <id>" with the entry and "<cmd> <text>" with a search.
func run[T any](ctx context.Context, h *Handler, c *call, l lookup[T]) (*Reply, error) {
	if c.arg == "" {
		return c.reply(h.t(c, l.usage)), nil
	}

	if id, err := strconv.Atoi(c.arg); err == nil {
		v, err := l.get(ctx, id)
		switch {
		case err == nil:
			return render(c, l, v), nil
		case errors.Is(err, domain.ErrRemoteUnavailable):
			return c.reply(h.t(c, "search_failed")), nil
		case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInvalidID):
			return c.reply(h.t(c, "not_found")), nil
		default:
			return nil, err
		}
	}

	results, err := l.search(ctx, c.arg, 1, searchLimit)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNoResults):
		return c.reply(h.t(c, "no_results")), nil
	case errors.Is(err, domain.ErrRemoteUnavailable):
		return c.reply(h.t(c, "search_failed")), nil
	case errors.Is(err, domain.ErrInvalidQuery):
		return c.reply(h.t(c, l.usage)), nil
	default:
		return nil, err
	}

	if len(results) == 1 {
		return render(c, l, &results[0]), nil
	}

	buttons := make([][]Button, 0, len(results))
	for i := range results {
		buttons = append(buttons, []Button{{
			Text: l.label(&results[i]),
			Data: l.callback + " " + strconv.Itoa(l.id(&results[i])),
		}})
	}

	reply := c.reply(h.ta(c, "search_results", map[string]string{"search": format.EscapeHTML(c.arg)}))
	reply.Buttons = buttons
	return reply, nil
}

func render[T any](c *call, l lookup[T], v *T) *Reply {
	reply := c.reply(l.info(v))
	reply.PhotoURL = l.photo(v)
	return reply
}
