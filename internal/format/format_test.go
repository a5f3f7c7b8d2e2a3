package format

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/varoOP/shinkrobot/pkg/anilist"
)

func TestEscapeHTML(t *testing.T) {
	assert.Equal(t, "Tom &amp; Jerry &lt;3", EscapeHTML("Tom & Jerry <3"))
	assert.Equal(t, "&quot;a&quot; &#x27;b&#x27; c&#x2F;d", EscapeHTML(`"a" 'b' c/d`))
	assert.Equal(t, "plain", EscapeHTML("plain"))
}

func TestShortenText(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want string
	}{
		{name: "fits", text: "hello", max: 10, want: "hello"},
		{name: "exact", text: "hello", max: 5, want: "hello"},
		{name: "cut", text: "hello world", max: 8, want: "hello..."},
		{name: "trailing_space", text: "hello world", max: 9, want: "hello..."},
		{name: "tiny_max", text: "hello", max: 2, want: "he"},
		{name: "multibyte", text: "ああああああ", max: 5, want: "ああ..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShortenText(tt.text, tt.max)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, utf8.RuneCountInString(got), tt.max)
		})
	}
}

func TestRemoveHTML(t *testing.T) {
	assert.Equal(t, "Spike Spiegel\nbounty hunter", RemoveHTML("<b>Spike</b> Spiegel<br>bounty hunter"))
	assert.Equal(t, "Tom & Jerry", RemoveHTML("<i>Tom &amp; Jerry</i>"))
	assert.Equal(t, "", RemoveHTML(""))
	assert.Equal(t, "no tags", RemoveHTML("no tags"))
}

func TestBannerURL(t *testing.T) {
	assert.Equal(t, "https://img.anili.st/media/1", BannerURL(1))
}

func TestAnimeInfo(t *testing.T) {
	anime := &anilist.Anime{
		ID:           1,
		IDMal:        1,
		Title:        anilist.Title{Romaji: "Cowboy Bebop"},
		Format:       "TV",
		Status:       "FINISHED",
		Description:  "Enter a world in the distant future...<br><i>(Source: Sunrise)</i>",
		Genres:       []string{"Action", "Sci-Fi"},
		Episodes:     26,
		AverageScore: 86,
		StartDate:    anilist.FuzzyDate{Year: 1998, Month: 4, Day: 3},
		SiteURL:      "https://anilist.co/anime/1",
	}

	text := AnimeInfo(anime)

	assert.True(t, strings.HasPrefix(text, "↓ <code>1</code> → <b>Cowboy Bebop</b>"))
	assert.Contains(t, text, "<b>Status</b>: <i>Finished</i>")
	assert.Contains(t, text, "📺 | <b>Format</b>: <i>Tv</i>")
	assert.Contains(t, text, "<b>Genres</b>: <i>Action, Sci-Fi</i>")
	assert.Contains(t, text, "<b>Episodes</b>: <i>26</i>")
	assert.Contains(t, text, "<b>Start Date</b>: <i>03/04/1998</i>")
	assert.NotContains(t, text, "End Date")
	assert.Contains(t, text, "(Source: Sunrise)")
	assert.NotContains(t, text, "<br>")
	assert.Contains(t, text, `<a href="https://myanimelist.net/anime/1">MyAnimeList</a>`)
}

func TestMangaInfo(t *testing.T) {
	manga := &anilist.Manga{
		ID:       30013,
		Title:    anilist.Title{Native: "ワンピース"},
		Format:   "MANGA",
		Status:   "RELEASING",
		Chapters: 0,
		Volumes:  105,
		SiteURL:  "https://anilist.co/manga/30013",
	}

	text := MangaInfo(manga)

	assert.Contains(t, text, "<b>ワンピース</b>")
	assert.Contains(t, text, "📆 | <b>Status</b>: <i>Releasing</i>")
	assert.Contains(t, text, "<b>Volumes</b>: <i>105</i>")
	assert.NotContains(t, text, "Chapters")
	assert.NotContains(t, text, "MyAnimeList")
	assert.NotContains(t, text, "blockquote")
}

func TestCharacterInfo(t *testing.T) {
	character := &anilist.Character{
		ID:          1,
		Name:        anilist.CharacterName{Full: "Spike Spiegel", Native: "スパイク・スピーゲル"},
		Gender:      "Male",
		Age:         "27",
		DateOfBirth: anilist.FuzzyDate{Month: 6, Day: 26},
		SiteURL:     "https://anilist.co/character/1",
	}

	text := CharacterInfo(character)

	assert.Contains(t, text, "<b>Spike Spiegel</b>")
	assert.Contains(t, text, "<b>Birthday</b>: <i>26/06</i>")
	assert.Contains(t, text, "<b>Age</b>: <i>27</i>")
	assert.Contains(t, text, `<a href="https://anilist.co/character/1">AniList</a>`)
}

func TestUserInfo(t *testing.T) {
	user := &anilist.User{
		ID:        5,
		Name:      "<script>",
		About:     "hi",
		CreatedAt: 1577836800,
	}

	text := UserInfo(user)

	assert.Contains(t, text, "<b>&lt;script&gt;</b>")
	assert.Contains(t, text, "<b>Joined At</b>: <i>01/01/2020</i>")
	assert.Contains(t, text, `<a href="https://anilist.co/user/5">AniList</a>`)
}
