package i18n

import (
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const keyNotFound = "KEY_NOT_FOUND"

// I18n holds every loaded locale. It is read-only after Load and safe for concurrent use.
// The locale of a request is passed explicitly instead of being stored here.
type I18n struct {
	log           zerolog.Logger
	defaultLocale string
	locales       map[string]map[string]string
	names         []string
	matcher       language.Matcher
	matchedNames  []string
}

func New(log zerolog.Logger, defaultLocale string) *I18n {
	return &I18n{
		log:           log.With().Str("module", "i18n").Logger(),
		defaultLocale: defaultLocale,
		locales:       map[string]map[string]string{},
	}
}

// Load reads every <locale>.yaml file in dir.
func (i *I18n) Load(dir string) error {
	return i.LoadFS(os.DirFS(dir))
}

// LoadFS reads every <locale>.yaml file found at any depth of fsys.
func (i *I18n) LoadFS(fsys fs.FS) error {
	locales := map[string]map[string]string{}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		ext := path.Ext(p)
		if d.IsDir() || (ext != ".yaml" && ext != ".yml") {
			return nil
		}

		b, err := fs.ReadFile(fsys, p)
		if err != nil {
			return errors.Wrapf(err, "failed to read %s", p)
		}

		messages := map[string]string{}
		if err := yaml.Unmarshal(b, &messages); err != nil {
			return errors.Wrapf(err, "failed to unmarshal yaml from %s", p)
		}

		locales[strings.TrimSuffix(path.Base(p), ext)] = messages
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to load locales")
	}

	if _, ok := locales[i.defaultLocale]; !ok {
		return errors.Errorf("default locale %q not found", i.defaultLocale)
	}

	names := make([]string, 0, len(locales))
	for name := range locales {
		names = append(names, name)
	}
	sort.Strings(names)

	// The matcher falls back to its first tag, so the default locale goes first.
	tags := []language.Tag{language.Make(i.defaultLocale)}
	matched := []string{i.defaultLocale}
	for _, name := range names {
		if name == i.defaultLocale {
			continue
		}
		tags = append(tags, language.Make(name))
		matched = append(matched, name)
	}

	i.locales = locales
	i.names = names
	i.matcher = language.NewMatcher(tags)
	i.matchedNames = matched

	i.log.Debug().Strs("locales", names).Msg("locales loaded")
	return nil
}

func (i *I18n) DefaultLocale() string {
	return i.defaultLocale
}

// Locales returns the loaded locale codes sorted alphabetically.
func (i *I18n) Locales() []string {
	return append([]string(nil), i.names...)
}

func (i *I18n) HasLocale(locale string) bool {
	_, ok := i.locales[locale]
	return ok
}

// Match maps a client language tag such as "pt-BR" onto a loaded locale.
func (i *I18n) Match(tag string) string {
	if i.matcher == nil || tag == "" {
		return i.defaultLocale
	}
	if i.HasLocale(tag) {
		return tag
	}

	t, err := language.Parse(tag)
	if err != nil {
		return i.defaultLocale
	}

	_, idx, conf := i.matcher.Match(t)
	if conf == language.No {
		return i.defaultLocale
	}
	return i.matchedNames[idx]
}

// Translate looks key up in locale, then in the default locale.
func (i *I18n) Translate(locale, key string) string {
	messages, ok := i.locales[locale]
	if !ok {
		messages = i.locales[i.defaultLocale]
	}

	if v, ok := messages[key]; ok {
		return v
	}
	if v, ok := i.locales[i.defaultLocale][key]; ok {
		return v
	}

	i.log.Warn().Str("locale", locale).Str("key", key).Msg("missing translation")
	return keyNotFound
}

// TranslateArgs translates key and replaces every ${name} with args[name].
func (i *I18n) TranslateArgs(locale, key string, args map[string]string) string {
	result := i.Translate(locale, key)
	for k, v := range args {
		result = strings.ReplaceAll(result, "${"+k+"}", v)
	}
	return result
}
