package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileEmptyPathReturnsZeroValue(t *testing.T) {
	f, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if f != (File{}) {
		t.Errorf("expected zero File, got %+v", f)
	}
}

func TestLoadFileMissingPathIsNotAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")
	f, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if f != (File{}) {
		t.Errorf("expected zero File, got %+v", f)
	}
}

func TestLoadFileParsesSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dtrtc.yaml")
	content := "lang: ru\ncolor: true\nvars_dir: /data/vars\nfuncs_dir: /data/funcs\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	f, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if f.Lang != "ru" || f.Color == nil || !*f.Color || f.VarsDir != "/data/vars" || f.FuncsDir != "/data/funcs" {
		t.Errorf("parsed config = %+v", f)
	}
}
