package assets

import "embed"

// Locales holds the bundled translation files, one <locale>.yaml per language.
//
//go:embed locales/*.yaml
var Locales embed.FS
