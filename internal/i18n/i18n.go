// Package i18n holds the storefront's supported languages and the compiled-in
// strings used outside of page rendering (confirmation emails, currency labels).
package i18n

import (
	"fmt"
	"strings"
)

// Lang is a supported language code.
type Lang string

const (
	French  Lang = "fr"
	English Lang = "en"
	Arabic  Lang = "ar"
)

// Fallback is used for product text when a language has no entry.
const Fallback = French

// Supported lists the languages in display order.
var Supported = []Lang{French, English, Arabic}

// Parse returns the language for a code such as "en" or "AR".
func Parse(code string) (Lang, bool) {
	l := Lang(strings.ToLower(strings.TrimSpace(code)))
	for _, s := range Supported {
		if s == l {
			return l, true
		}
	}
	return "", false
}

// Direction is "rtl" for Arabic and "ltr" otherwise.
func Direction(l Lang) string {
	if l == Arabic {
		return "rtl"
	}
	return "ltr"
}

// Translate returns the string for key in lang, formatted with args when given.
// Unknown languages fall back to French; unknown keys return the key itself.
func Translate(key string, lang Lang, args ...any) string {
	langMap, ok := translations[key]
	if !ok {
		return key
	}
	tmpl, ok := langMap[lang]
	if !ok {
		tmpl, ok = langMap[Fallback]
		if !ok {
			return key
		}
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}
