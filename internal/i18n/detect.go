package i18n

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookie stores the user's language preference.
	LangCookie = "epc_lang"
)

// affinity maps unsupported language (and a few country) codes to the
// closest supported language: neighbouring Romance languages go to French
// or Spanish, Germanic and northern European ones to German.
var affinity = map[string]string{
	"de": "de", "at": "de", "ch": "de",
	"en": "en", "us": "en", "gb": "en", "au": "en", "ca": "en",
	"nl": "nl", "be": "nl",
	"fr": "fr",
	"es": "es", "mx": "es", "ar": "es", "co": "es",
	"it": "fr",
	"pt": "es",
	"da": "de", "sv": "de", "no": "de", "fi": "de", "pl": "de",
}

// Resolve picks the language to serve a request in: explicit ?lang= choice,
// then the language cookie, then the Accept-Language header, then the
// default. The bool reports whether the choice came from the query parameter
// and should be persisted as a cookie.
func (b *Bundle) Resolve(r *http.Request) (string, bool) {
	if v := strings.ToLower(strings.TrimSpace(r.URL.Query().Get(LangParam))); v != "" && b.Has(v) {
		return v, true
	}

	if cookie, err := r.Cookie(LangCookie); err == nil && b.Has(cookie.Value) {
		return cookie.Value, false
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			if lang, ok := b.matchTags(tags); ok {
				return lang, false
			}
		}
	}

	return DefaultLang, false
}

// matchTags walks the quality-sorted tags and returns the first supported
// language, mapping near relatives through the affinity table.
func (b *Bundle) matchTags(tags []language.Tag) (string, bool) {
	for _, tag := range tags {
		base, conf := tag.Base()
		if conf == language.No {
			continue
		}
		code := base.String()
		if b.Has(code) {
			return code, true
		}
		if mapped, ok := affinity[code]; ok && b.Has(mapped) {
			return mapped, true
		}
	}
	return "", false
}

// SetLangCookie persists the selected language on the response.
func SetLangCookie(w http.ResponseWriter, lang string) {
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookie,
		Value:    lang,
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}
