package utils

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"compass.qibla.app/internal/bearing"
)

var labelMatcher = language.NewMatcher(bearing.SupportedLanguages)

// NegotiateLanguage picks the compass label language from the "lang" query parameter,
// then the Accept-Language header, falling back to English.
func NegotiateLanguage(r *http.Request) language.Tag {
	var prefs []string
	if lang := strings.TrimSpace(r.URL.Query().Get("lang")); lang != "" {
		prefs = append(prefs, lang)
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		prefs = append(prefs, accept)
	}
	if len(prefs) == 0 {
		return bearing.SupportedLanguages[0]
	}
	_, index := language.MatchStrings(labelMatcher, prefs...)
	return bearing.SupportedLanguages[index]
}
