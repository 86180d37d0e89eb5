// Package i18n looks up user-facing strings by key in per-language tables.
package i18n

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
)

// Supported languages, in matcher preference order. Turkish is the
// default, English the fallback for missing keys.
var (
	Default  = language.Turkish
	Fallback = language.English

	supported = []language.Tag{language.Turkish, language.English}
	matcher   = language.NewMatcher(supported)
)

// tables maps a base language to its key -> text table.
var tables = map[language.Base]map[string]string{
	base(language.English): english,
	base(language.Turkish): turkish,
}

func base(t language.Tag) language.Base {
	b, _ := t.Base()
	return b
}

// Translator resolves keys for one language.
type Translator struct {
	tag language.Tag
}

// New returns a translator for the best supported match of the given
// preferences ("tr", "en-GB", "tr_TR.UTF-8", ...). With no usable
// preference the default language is used.
func New(prefs ...string) Translator {
	var cleaned []string
	for _, p := range prefs {
		if p = normalize(p); p != "" {
			cleaned = append(cleaned, p)
		}
	}
	if len(cleaned) == 0 {
		return Translator{tag: Default}
	}

	tag, _ := language.MatchStrings(matcher, cleaned...)
	b := base(tag)
	for _, s := range supported {
		if base(s) == b {
			return Translator{tag: s}
		}
	}
	return Translator{tag: Default}
}

// FromEnv picks a language from the configured value, falling back to the
// POSIX locale variables.
func FromEnv(configured string) Translator {
	if configured != "" {
		return New(configured)
	}
	return New(os.Getenv("LC_ALL"), os.Getenv("LC_MESSAGES"), os.Getenv("LANG"))
}

// normalize turns POSIX locale strings into BCP 47 ("tr_TR.UTF-8" -> "tr-TR").
// "C" and "POSIX" carry no language.
func normalize(s string) string {
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	s = strings.ReplaceAll(s, "_", "-")
	if s == "C" || s == "POSIX" {
		return ""
	}
	return s
}

// Language returns the selected language tag.
func (t Translator) Language() language.Tag {
	return t.tag
}

// T returns the text for key with {{name}} placeholders replaced by the
// given name/value pairs. Unknown keys fall back to English and then to
// the key itself.
func (t Translator) T(key string, args ...any) string {
	text, ok := tables[base(t.tag)][key]
	if !ok {
		text, ok = tables[base(Fallback)][key]
	}
	if !ok {
		text = key
	}
	return interpolate(text, args)
}

func interpolate(text string, args []any) string {
	for i := 0; i+1 < len(args); i += 2 {
		name := fmt.Sprint(args[i])
		text = strings.ReplaceAll(text, "{{"+name+"}}", fmt.Sprint(args[i+1]))
	}
	return text
}
