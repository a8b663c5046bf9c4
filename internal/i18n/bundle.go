// Package i18n loads JSON translation files and resolves the language to
// serve each request in.
package i18n

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultLang is served when nothing about the request suggests a better
// choice.
const DefaultLang = "fr"

// Bundle holds the translations of every locale file that parsed at startup.
// It is immutable after Load and safe for concurrent use.
type Bundle struct {
	translations map[string]map[string]any
	supported    []string
}

// Load reads every <lang>.json in dir. A missing directory or a broken file
// is logged and skipped; the service keeps running with whatever loaded.
func Load(dir string, logger *slog.Logger) *Bundle {
	b := &Bundle{translations: make(map[string]map[string]any)}

	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn("locales directory not readable", "dir", dir, "error", err)
		return b
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		lang := strings.TrimSuffix(name, ".json")

		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Error("reading translation file failed", "file", name, "error", err)
			continue
		}
		var translations map[string]any
		if err := json.Unmarshal(raw, &translations); err != nil {
			logger.Error("parsing translation file failed", "file", name, "error", err)
			continue
		}

		b.translations[lang] = translations
		b.supported = append(b.supported, lang)
		logger.Info("loaded translations", "lang", lang, "file", name)
	}

	sort.Strings(b.supported)
	return b
}

// Supported returns the loaded language codes, sorted.
func (b *Bundle) Supported() []string {
	out := make([]string, len(b.supported))
	copy(out, b.supported)
	return out
}

// Has reports whether translations for lang were loaded.
func (b *Bundle) Has(lang string) bool {
	_, ok := b.translations[lang]
	return ok
}

// T returns the translation of key in lang. Keys may be nested with dots
// ("purpose_codes.COMC"), and args replace {name} placeholders. Lookup falls
// back through French then English; a key missing everywhere is returned
// as-is so nothing is silently swallowed.
func (b *Bundle) T(lang, key string, args map[string]string) string {
	for _, candidate := range fallbackChain(lang) {
		translations, ok := b.translations[candidate]
		if !ok {
			continue
		}
		if value, ok := lookup(translations, key); ok {
			return interpolate(value, args)
		}
	}
	return key
}

// PurposeLabel returns the localized label for an ISO 20022 purpose code,
// or the code itself when no label is available.
func (b *Bundle) PurposeLabel(lang, code string) string {
	key := "purpose_codes." + code
	if label := b.T(lang, key, nil); label != key {
		return label
	}
	return code
}

var displayNames = map[string]string{
	"en": "English",
	"fr": "Français",
	"de": "Deutsch",
	"es": "Español",
	"it": "Italiano",
	"nl": "Nederlands",
	"pt": "Português",
	"pl": "Polski",
	"sv": "Svenska",
	"da": "Dansk",
	"no": "Norsk",
	"fi": "Suomi",
}

// DisplayName returns the native name of a language code, or the code
// uppercased when unknown.
func DisplayName(lang string) string {
	if name, ok := displayNames[lang]; ok {
		return name
	}
	return strings.ToUpper(lang)
}

func fallbackChain(lang string) []string {
	chain := []string{lang}
	if lang != DefaultLang {
		chain = append(chain, DefaultLang)
	}
	if lang != "en" {
		chain = append(chain, "en")
	}
	return chain
}

func lookup(translations map[string]any, key string) (string, bool) {
	var value any = translations
	for _, part := range strings.Split(key, ".") {
		m, ok := value.(map[string]any)
		if !ok {
			return "", false
		}
		if value, ok = m[part]; !ok {
			return "", false
		}
	}
	s, ok := value.(string)
	return s, ok
}

func interpolate(s string, args map[string]string) string {
	if len(args) == 0 {
		return s
	}
	for name, v := range args {
		s = strings.ReplaceAll(s, "{"+name+"}", v)
	}
	return s
}
