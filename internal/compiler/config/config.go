// Package config defines the per-compilation settings threaded explicitly
// through every compiler stage. The original implementation kept these as
// classmethod-backed globals; this port deliberately does not, because a
// single process may compile several
// inputs concurrently with different language/color/debug settings, and a
// shared global would make one compilation's flags leak into another's.
package config

// Context carries the three settings every stage needs: which language to
// render diagnostics in, whether to emit color markup, and whether to print
// debug-class trace messages. The zero value has no color and no debug, and
// its empty Lang makes localization.New fall back to DefaultLanguage ("ru").
type Context struct {
	Lang  string
	Color bool
	Debug bool
}

// Default returns the English, uncolored, non-debug context.
func Default() Context {
	return Context{Lang: "en", Color: false, Debug: false}
}

// WithLang returns a copy of ctx with Lang replaced.
func (c Context) WithLang(lang string) Context {
	c.Lang = lang
	return c
}

// WithColor returns a copy of ctx with Color replaced.
func (c Context) WithColor(color bool) Context {
	c.Color = color
	return c
}

// WithDebug returns a copy of ctx with Debug replaced.
func (c Context) WithDebug(debug bool) Context {
	c.Debug = debug
	return c
}
