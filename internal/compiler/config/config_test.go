package config

import "testing"

func TestDefault(t *testing.T) {
	c := Default()
	if c.Lang != "en" || c.Color || c.Debug {
		t.Errorf("Default() = %+v, want {en false false}", c)
	}
}

func TestWithersReturnIndependentCopies(t *testing.T) {
	base := Default()
	withLang := base.WithLang("ru")
	withColor := base.WithColor(true)
	withDebug := base.WithDebug(true)

	if base.Lang != "en" || base.Color || base.Debug {
		t.Errorf("base mutated: %+v", base)
	}
	if withLang.Lang != "ru" {
		t.Errorf("WithLang did not set Lang: %+v", withLang)
	}
	if !withColor.Color {
		t.Errorf("WithColor did not set Color: %+v", withColor)
	}
	if !withDebug.Debug {
		t.Errorf("WithDebug did not set Debug: %+v", withDebug)
	}
}
