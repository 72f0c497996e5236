package localization

import (
	"strings"
	"testing"
)

func TestNewFallsBackToDefaultForUnsupportedLanguage(t *testing.T) {
	l := New("fr")
	if l.Lang != DefaultLanguage {
		t.Errorf("Lang = %q, want default %q", l.Lang, DefaultLanguage)
	}
}

func TestGetSubstitutesNamedParams(t *testing.T) {
	l := New("en")
	got := l.Get(Error.InvalidType, P("data_type", "notatype"))
	if !strings.Contains(got, "notatype") {
		t.Errorf("Get() = %q, want it to contain %q", got, "notatype")
	}
	if strings.Contains(got, "{data_type}") {
		t.Errorf("Get() left an unresolved placeholder: %q", got)
	}
}

func TestGetFallsBackWhenLanguageMissingFromMessage(t *testing.T) {
	l := New("en")
	msg := Message{"ru": "только по-русски"}
	if got := l.Get(msg, nil); got == "" {
		t.Error("Get() must fall back to an available translation, not return empty")
	}
}

func TestGetOnEmptyMessage(t *testing.T) {
	l := New("en")
	if got := l.Get(Message{}, nil); got == "" {
		t.Error("Get() on an empty catalog entry must still return a placeholder string")
	}
}

func TestPBuildsParamMap(t *testing.T) {
	m := P("a", "1", "b", "2")
	if m["a"] != "1" || m["b"] != "2" {
		t.Errorf("P() = %v, want a=1 b=2", m)
	}
}
