package errors

import (
	"strings"
	"testing"

	"github.com/btouchard/dtrtc/internal/compiler/localization"
)

func TestRenderAnchoredError(t *testing.T) {
	loc := localization.New("en")
	e := New(InvalidType, "lexer", loc, false, "  [amount] -> [total](notatype)", 5, nil,
		localization.P("data_type", "notatype", "allowed_types", "str, int"))

	out := e.Render()
	wantLines := []string{
		"Error in line 5:",
		"  [amount] -> [total](notatype)",
	}
	for _, w := range wantLines {
		if !strings.Contains(out, w) {
			t.Errorf("rendered output missing %q:\n%s", w, out)
		}
	}
	if !strings.Contains(out, "notatype") {
		t.Errorf("rendered output must substitute data_type:\n%s", out)
	}
	if !strings.Contains(out, "Possible solution:") {
		t.Errorf("rendered output must include the hint label:\n%s", out)
	}
}

func TestRenderUnanchoredError(t *testing.T) {
	loc := localization.New("en")
	e := New(MissingTargetLang, "lexer", loc, false, "", 0, nil, nil)
	out := e.Render()
	if strings.Contains(out, "Error in line") {
		t.Errorf("unanchored error must not carry a line prefix:\n%s", out)
	}
	if !strings.Contains(out, "lang=<language>") {
		t.Errorf("expected the missing-lang message, got:\n%s", out)
	}
}

func TestWithHintOverridesDefault(t *testing.T) {
	loc := localization.New("en")
	e := New(PipelineEmpty, "lexer", loc, false, "[a] -> || -> [b]", 1, nil, nil).
		WithHint("custom hint text")
	out := e.Render()
	if !strings.Contains(out, "custom hint text") {
		t.Errorf("expected overridden hint in output:\n%s", out)
	}
}

func TestNewGuessesPositionWhenNil(t *testing.T) {
	line := "[a] -> |*f() -> [b]"
	e := New(PipelineClosingBar, "lexer", localization.New("en"), false, line, 3, nil, nil)
	want := strings.LastIndex(line, "|") + 1
	if e.Position != want {
		t.Errorf("Position = %d, want %d", e.Position, want)
	}
}

func TestErrorSatisfiesErrorInterface(t *testing.T) {
	var err error = New(Unknown, "lexer", localization.New("en"), false, "garbage", 1, nil, nil)
	if err.Error() == "" {
		t.Error("Error() must not be empty")
	}
}
