// Package localization renders the compiler's two-language (ru/en) message
// catalog, with named-parameter substitution and graceful fallback when a
// parameter or language is missing. It carries no package-level state: every
// caller builds its own *Localization from the compilation context.
package localization

import (
	"fmt"
	"strings"
)

// SupportedLanguages lists the language codes the catalog translates into.
var SupportedLanguages = []string{"ru", "en"}

// DefaultLanguage is used when the requested language is unsupported.
const DefaultLanguage = "ru"

// Localization resolves Message templates into a single language.
type Localization struct {
	Lang string
}

// New returns a Localization for lang, falling back to DefaultLanguage when
// lang is not in SupportedLanguages.
func New(lang string) *Localization {
	if !isSupported(lang) {
		lang = DefaultLanguage
	}
	return &Localization{Lang: lang}
}

func isSupported(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

// Get resolves msg into the receiver's language and substitutes the given
// named parameters (referenced in templates as "{name}"). It falls back to
// the first available translation if the receiver's language is absent from
// msg, and leaves unresolved placeholders untouched rather than failing.
func (l *Localization) Get(msg Message, params map[string]string) string {
	if len(msg) == 0 {
		return "[no translations available]"
	}
	text, ok := msg[l.Lang]
	if !ok {
		for _, v := range msg {
			text = v
			break
		}
	}
	return substitute(text, params)
}

func substitute(text string, params map[string]string) string {
	if len(params) == 0 {
		return text
	}
	for k, v := range params {
		text = strings.ReplaceAll(text, "{"+k+"}", v)
	}
	return text
}

// P is a small convenience constructor for the named-parameter maps Get
// expects, so call sites read as P("var_name", name) instead of a literal map.
func P(kv ...string) map[string]string {
	m := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i]] = kv[i+1]
	}
	return m
}

// Sprintf is a tiny helper for building a param value from a non-string,
// mirroring the places the original catalog formats counts and similar.
func Sprintf(format string, a ...any) string {
	return fmt.Sprintf(format, a...)
}
