package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/varoOP/shinkrobot/pkg/anilist"
)

const bannerURL = "https://img.anili.st/media/"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
)

// EscapeHTML makes text safe to embed in a Telegram HTML message.
func EscapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}

// ShortenText cuts text to at most max runes, the trailing "..." included.
func ShortenText(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return strings.TrimRightFunc(string(runes[:max-3]), isSpace) + "..."
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t'
}

// RemoveHTML returns the text content of an HTML fragment. <br> becomes a newline.
func RemoveHTML(text string) string {
	z := html.NewTokenizer(strings.NewReader(text))

	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if string(name) == "br" {
				b.WriteByte('\n')
			}
		}
	}
}

// BannerURL is the generated banner image of a media entry.
func BannerURL(id int) string {
	return bannerURL + strconv.Itoa(id)
}

func header(id int, name string) string {
	return fmt.Sprintf("↓ <code>%d</code> → <b>%s</b>\n\n", id, EscapeHTML(name))
}

func humanize(s string) string {
	if s == "" {
		return "Unknown"
	}
	parts := strings.Split(strings.ToLower(s), "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

func statusEmoji(status string) string {
	switch status {
	case "FINISHED":
		return "🏁"
	case "RELEASING":
		return "📆"
	case "NOT_YET_RELEASED":
		return "🔜"
	case "CANCELLED":
		return "❌"
	case "HIATUS":
		return "🕰"
	default:
		return "❔"
	}
}

func animeFormatEmoji(format string) string {
	switch format {
	case "TV", "TV_SHORT":
		return "📺"
	case "ONA", "OVA":
		return "🎞"
	case "MOVIE":
		return "🎥"
	case "MUSIC":
		return "🎵"
	case "SPECIAL":
		return "🎌"
	default:
		return "📖"
	}
}

func mangaFormatEmoji(format string) string {
	switch format {
	case "MANGA":
		return "📚"
	case "ONE_SHOT", "NOVEL":
		return "📖"
	default:
		return "🎥"
	}
}

func writeDescription(b *strings.Builder, description string, max int) {
	description = RemoveHTML(description)
	if description == "" {
		return
	}
	fmt.Fprintf(b, "\n<blockquote><i>%s</i></blockquote>\n", EscapeHTML(ShortenText(description, max)))
}

func writeDates(b *strings.Builder, start, end anilist.FuzzyDate) {
	if !start.IsZero() {
		fmt.Fprintf(b, "📅 | <b>Start Date</b>: <i>%s</i>\n", start)
	}
	if !end.IsZero() {
		fmt.Fprintf(b, "📆 | <b>End Date</b>: <i>%s</i>\n", end)
	}
}

func writeLinks(b *strings.Builder, siteURL, kind string, malID int) {
	fmt.Fprintf(b, "\n🔗 | <a href=\"%s\">AniList</a>", siteURL)
	if malID > 0 {
		fmt.Fprintf(b, " ↭ <a href=\"https://myanimelist.net/%s/%d\">MyAnimeList</a>", kind, malID)
	}
}

func AnimeInfo(anime *anilist.Anime) string {
	var b strings.Builder
	b.WriteString(header(anime.ID, anime.Title.Preferred()))

	if anime.AverageScore > 0 {
		fmt.Fprintf(&b, "🌟 | <b>Score</b>: <i>%d</i>\n", anime.AverageScore)
	}
	fmt.Fprintf(&b, "%s | <b>Status</b>: <i>%s</i>\n", statusEmoji(anime.Status), humanize(anime.Status))
	fmt.Fprintf(&b, "%s | <b>Format</b>: <i>%s</i>\n", animeFormatEmoji(anime.Format), humanize(anime.Format))
	if len(anime.Genres) > 0 {
		fmt.Fprintf(&b, "🎭 | <b>Genres</b>: <i>%s</i>\n", EscapeHTML(strings.Join(anime.Genres, ", ")))
	}
	if anime.Episodes > 0 {
		fmt.Fprintf(&b, "🔢 | <b>Episodes</b>: <i>%d</i>\n", anime.Episodes)
	}
	if anime.Duration > 0 {
		fmt.Fprintf(&b, "⏱ | <b>Duration</b>: <i>%d min</i>\n", anime.Duration)
	}
	writeDates(&b, anime.StartDate, anime.EndDate)
	writeDescription(&b, anime.Description, 500)
	writeLinks(&b, anime.SiteURL, "anime", anime.IDMal)

	return b.String()
}

func MangaInfo(manga *anilist.Manga) string {
	var b strings.Builder
	b.WriteString(header(manga.ID, manga.Title.Preferred()))

	if manga.AverageScore > 0 {
		fmt.Fprintf(&b, "🌟 | <b>Score</b>: <i>%d</i>\n", manga.AverageScore)
	}
	fmt.Fprintf(&b, "%s | <b>Status</b>: <i>%s</i>\n", statusEmoji(manga.Status), humanize(manga.Status))
	fmt.Fprintf(&b, "%s | <b>Format</b>: <i>%s</i>\n", mangaFormatEmoji(manga.Format), humanize(manga.Format))
	if len(manga.Genres) > 0 {
		fmt.Fprintf(&b, "🎭 | <b>Genres</b>: <i>%s</i>\n", EscapeHTML(strings.Join(manga.Genres, ", ")))
	}
	if manga.Chapters > 0 {
		fmt.Fprintf(&b, "🔢 | <b>Chapters</b>: <i>%d</i>\n", manga.Chapters)
	}
	if manga.Volumes > 0 {
		fmt.Fprintf(&b, "📚 | <b>Volumes</b>: <i>%d</i>\n", manga.Volumes)
	}
	writeDates(&b, manga.StartDate, manga.EndDate)
	writeDescription(&b, manga.Description, 300)
	writeLinks(&b, manga.SiteURL, "manga", manga.IDMal)

	return b.String()
}

func CharacterInfo(character *anilist.Character) string {
	var b strings.Builder
	b.WriteString(header(character.ID, character.Name.Full))

	if character.Name.Native != "" {
		fmt.Fprintf(&b, "🈂 | <b>Native</b>: <i>%s</i>\n", EscapeHTML(character.Name.Native))
	}
	if character.Gender != "" {
		fmt.Fprintf(&b, "⚧ | <b>Gender</b>: <i>%s</i>\n", EscapeHTML(character.Gender))
	}
	if character.Age != "" {
		fmt.Fprintf(&b, "🎂 | <b>Age</b>: <i>%s</i>\n", EscapeHTML(character.Age))
	}
	if !character.DateOfBirth.IsZero() {
		fmt.Fprintf(&b, "📅 | <b>Birthday</b>: <i>%s</i>\n", character.DateOfBirth)
	}
	if character.Favourites > 0 {
		fmt.Fprintf(&b, "❤ | <b>Favourites</b>: <i>%d</i>\n", character.Favourites)
	}
	writeDescription(&b, character.Description, 400)
	writeLinks(&b, character.SiteURL, "character", 0)

	return b.String()
}

func UserInfo(user *anilist.User) string {
	var b strings.Builder
	b.WriteString(header(user.ID, user.Name))

	if user.CreatedAt > 0 {
		joined := time.Unix(user.CreatedAt, 0).UTC().Format("02/01/2006")
		fmt.Fprintf(&b, "📅 | <b>Joined At</b>: <i>%s</i>\n", joined)
	}
	writeDescription(&b, user.About, 250)

	siteURL := user.SiteURL
	if siteURL == "" {
		siteURL = fmt.Sprintf("https://anilist.co/user/%d", user.ID)
	}
	writeLinks(&b, siteURL, "user", 0)

	return b.String()
}
