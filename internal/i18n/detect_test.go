package i18n_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sepatools/epc-qr-hub/internal/i18n"
)

func detectBundle(t *testing.T) *i18n.Bundle {
	t.Helper()
	dir := writeLocales(t, map[string]string{
		"en.json": `{}`,
		"fr.json": `{}`,
		"de.json": `{}`,
		"es.json": `{}`,
		"nl.json": `{}`,
	})
	return i18n.Load(dir, discardLogger())
}

func TestResolve_QueryParamWins(t *testing.T) {
	b := detectBundle(t)

	r := httptest.NewRequest(http.MethodGet, "/?lang=de", nil)
	r.Header.Set("Accept-Language", "en-US,en;q=0.9")
	r.AddCookie(&http.Cookie{Name: i18n.LangCookie, Value: "es"})

	lang, persist := b.Resolve(r)
	assert.Equal(t, "de", lang)
	assert.True(t, persist)
}

func TestResolve_UnknownQueryParamIgnored(t *testing.T) {
	b := detectBundle(t)

	r := httptest.NewRequest(http.MethodGet, "/?lang=ja", nil)
	r.Header.Set("Accept-Language", "en")

	lang, persist := b.Resolve(r)
	assert.Equal(t, "en", lang)
	assert.False(t, persist)
}

func TestResolve_CookieBeatsHeader(t *testing.T) {
	b := detectBundle(t)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Accept-Language", "en-US,en;q=0.9")
	r.AddCookie(&http.Cookie{Name: i18n.LangCookie, Value: "nl"})

	lang, persist := b.Resolve(r)
	assert.Equal(t, "nl", lang)
	assert.False(t, persist)
}

func TestResolve_AcceptLanguage(t *testing.T) {
	b := detectBundle(t)

	tests := []struct {
		header string
		want   string
	}{
		{"en-US,en;q=0.9,fr;q=0.8,es;q=0.7", "en"},
		{"fr-FR,fr;q=0.9,en;q=0.8", "fr"},
		{"de-DE,de;q=0.9,en;q=0.5", "de"},
		{"es-ES,es;q=0.9,en;q=0.8", "es"},
		{"nl-NL,nl;q=0.9", "nl"},
		// Near relatives map through the affinity table.
		{"it-IT,it;q=0.9", "fr"},
		{"pt-PT,pt;q=0.9", "es"},
		{"sv-SE,sv;q=0.9", "de"},
		{"da", "de"},
		{"pl", "de"},
		// No match at all: the French default.
		{"ja-JP,ja;q=0.9", "fr"},
		{"zh-CN", "fr"},
	}
	for _, tc := range tests {
		t.Run(tc.header, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set("Accept-Language", tc.header)
			lang, persist := b.Resolve(r)
			assert.Equal(t, tc.want, lang)
			assert.False(t, persist)
		})
	}
}

func TestResolve_NoSignalsDefaultsToFrench(t *testing.T) {
	b := detectBundle(t)

	lang, persist := b.Resolve(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, i18n.DefaultLang, lang)
	assert.False(t, persist)
}

func TestSetLangCookie(t *testing.T) {
	w := httptest.NewRecorder()
	i18n.SetLangCookie(w, "de")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, i18n.LangCookie, cookies[0].Name)
	assert.Equal(t, "de", cookies[0].Value)
	assert.Equal(t, "/", cookies[0].Path)
	assert.Positive(t, cookies[0].MaxAge)
}
