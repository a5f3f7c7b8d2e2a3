package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varoOP/shinkrobot/assets"
)

func newTestI18n(t *testing.T) *I18n {
	t.Helper()

	fsys := fstest.MapFS{
		"en.yaml":       {Data: []byte("hello: \"Hello, ${name}!\"\nonly_en: \"english only\"\n")},
		"pt.yaml":       {Data: []byte("hello: \"Olá, ${name}!\"\n")},
		"nested/es.yml": {Data: []byte("hello: \"¡Hola, ${name}!\"\n")},
		"README.md":     {Data: []byte("ignored")},
	}

	i := New(zerolog.Nop(), "en")
	require.NoError(t, i.LoadFS(fsys))
	return i
}

func TestI18n_Locales(t *testing.T) {
	i := newTestI18n(t)

	assert.Equal(t, []string{"en", "es", "pt"}, i.Locales())
	assert.True(t, i.HasLocale("pt"))
	assert.False(t, i.HasLocale("fr"))
	assert.Equal(t, "en", i.DefaultLocale())
}

func TestI18n_Translate(t *testing.T) {
	i := newTestI18n(t)

	tests := []struct {
		name   string
		locale string
		key    string
		want   string
	}{
		{name: "default_locale", locale: "en", key: "hello", want: "Hello, ${name}!"},
		{name: "other_locale", locale: "pt", key: "hello", want: "Olá, ${name}!"},
		{name: "falls_back_to_default", locale: "pt", key: "only_en", want: "english only"},
		{name: "unknown_locale", locale: "fr", key: "hello", want: "Hello, ${name}!"},
		{name: "missing_key", locale: "pt", key: "nope", want: "KEY_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, i.Translate(tt.locale, tt.key))
		})
	}
}

func TestI18n_TranslateArgs(t *testing.T) {
	i := newTestI18n(t)

	assert.Equal(t, "Olá, Ana!", i.TranslateArgs("pt", "hello", map[string]string{"name": "Ana"}))
	assert.Equal(t, "Hello, ${name}!", i.TranslateArgs("en", "hello", nil))
}

func TestI18n_Match(t *testing.T) {
	i := newTestI18n(t)

	assert.Equal(t, "pt", i.Match("pt"))
	assert.Equal(t, "pt", i.Match("pt-BR"))
	assert.Equal(t, "es", i.Match("es-419"))
	assert.Equal(t, "en", i.Match("en-GB"))
	assert.Equal(t, "en", i.Match("ja"))
	assert.Equal(t, "en", i.Match(""))
	assert.Equal(t, "en", i.Match("not a tag!"))
}

func TestI18n_MissingDefaultLocale(t *testing.T) {
	i := New(zerolog.Nop(), "de")
	err := i.LoadFS(fstest.MapFS{"en.yaml": {Data: []byte("a: b\n")}})
	assert.Error(t, err)
}

func TestI18n_InvalidYAML(t *testing.T) {
	i := New(zerolog.Nop(), "en")
	err := i.LoadFS(fstest.MapFS{"en.yaml": {Data: []byte("a: [b\n")}})
	assert.Error(t, err)
}

func TestI18n_BundledLocales(t *testing.T) {
	i := New(zerolog.Nop(), "en")
	require.NoError(t, i.LoadFS(assets.Locales))

	for _, locale := range i.Locales() {
		assert.NotEqual(t, "KEY_NOT_FOUND", i.Translate(locale, "_NAME"), locale)
		assert.NotEqual(t, "KEY_NOT_FOUND", i.Translate(locale, "no_results"), locale)
	}
	assert.Contains(t, i.Locales(), "pt")
}
