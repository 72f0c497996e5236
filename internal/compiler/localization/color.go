package localization

import (
	"regexp"

	"github.com/fatih/color"
)

var tagPattern = regexp.MustCompile(`>[A-Z]+<`)

// tagAttrs maps a markup tag to the fatih/color attribute it renders as.
// RS resets to the terminal default; unknown tags render as empty.
var tagAttrs = map[string]*color.Color{
	"G":    color.New(color.FgGreen),
	"R":    color.New(color.FgRed),
	"Y":    color.New(color.FgYellow),
	"O":    color.New(color.FgHiYellow),
	"BOLD": color.New(color.Bold),
}

// Colorize renders inline >TAG< markup. With colorEnabled, each tag pair
// brackets the text between open and close tags in the matching terminal
// attribute; RS and unrecognized tags reset to no styling. With color
// disabled, every >TAG< is stripped by a single pass of tagPattern.
func Colorize(text string, colorEnabled bool) string {
	if !colorEnabled {
		return tagPattern.ReplaceAllString(text, "")
	}
	return renderTags(text)
}

// renderTags walks the text once, toggling the active color.Color whenever
// it crosses a >TAG< boundary, and applies it to the literal runs between.
func renderTags(text string) string {
	var out []byte
	var active *color.Color
	idx := tagPattern.FindAllStringIndex(text, -1)
	pos := 0
	for _, m := range idx {
		literal := text[pos:m[0]]
		if literal != "" {
			out = append(out, colorBytes(literal, active)...)
		}
		tag := text[m[0]+1 : m[1]-1]
		if tag == "RS" {
			active = nil
		} else if c, ok := tagAttrs[tag]; ok {
			active = c
		} else {
			active = nil
		}
		pos = m[1]
	}
	if pos < len(text) {
		out = append(out, colorBytes(text[pos:], active)...)
	}
	return string(out)
}

func colorBytes(s string, c *color.Color) []byte {
	if c == nil {
		return []byte(s)
	}
	return []byte(c.Sprint(s))
}
