package localization

import (
	"strings"
	"testing"
)

func TestColorizeStripsTagsWhenDisabled(t *testing.T) {
	got := Colorize(">G<ok>RS< plain", false)
	if strings.ContainsAny(got, "<>") {
		t.Errorf("Colorize(disabled) left markup behind: %q", got)
	}
	if got != "ok plain" {
		t.Errorf("Colorize(disabled) = %q, want %q", got, "ok plain")
	}
}

func TestColorizeRendersKnownTagWhenEnabled(t *testing.T) {
	got := Colorize(">G<ok>RS<", true)
	if !strings.Contains(got, "ok") {
		t.Errorf("Colorize(enabled) must retain the literal text, got %q", got)
	}
	if strings.Contains(got, ">G<") || strings.Contains(got, ">RS<") {
		t.Errorf("Colorize(enabled) must consume the tags themselves, got %q", got)
	}
}

func TestColorizeUnknownTagFallsBackToPlain(t *testing.T) {
	got := Colorize(">ZZZ<text>RS<", false)
	if got != "text" {
		t.Errorf("Colorize(disabled) = %q, want %q", got, "text")
	}
}
