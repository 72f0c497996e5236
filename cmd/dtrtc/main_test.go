package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleSrc = "lang=en\nsource=kafka/orders\nlocal=http/endpoint\nlocal:\n  [amount] -> [total](str)\n"

// run executes rootCmd with args, capturing its stdout and stderr in a fresh
// buffer. Flag values parsed by an earlier call are not reset.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "route.dtrt")
	if err := os.WriteFile(path, []byte(sampleSrc), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	return path
}

func TestCompileInlineSourcePrintsJSON(t *testing.T) {
	out, err := run(t, "compile", sampleSrc)
	if err != nil {
		t.Fatalf("compile failed: %v (%s)", err, out)
	}
	if out == "" {
		t.Errorf("expected IR JSON on stdout, got empty output")
	}
}

func TestCompileWritesOutputFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "ir.json")
	_, err := run(t, "compile", sampleSrc, "-o", outPath)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading output file: %v", err)
	}
	if len(data) == 0 {
		t.Errorf("expected non-empty IR file")
	}
}

func TestCheckReportsOK(t *testing.T) {
	out, err := run(t, "check", sampleSrc)
	if err != nil {
		t.Fatalf("check failed: %v (%s)", err, out)
	}
	if !strings.Contains(out, "OK") {
		t.Errorf("expected check to report OK, got %q", out)
	}
}

func TestCheckFailsOnBadSource(t *testing.T) {
	src := "lang=en\nsource=kafka/orders\nlocal=http/endpoint\nlocal:\n  [amount] -> |*round($$file.precision)| -> [total](float)\n"
	_, err := run(t, "check", src)
	if err == nil {
		t.Errorf("expected check to fail when an external variable is referenced without --vars-dir")
	}
}

func TestFmtRewritesFileInPlace(t *testing.T) {
	path := writeSample(t)
	if _, err := run(t, "fmt", path); err != nil {
		t.Fatalf("fmt failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading formatted file: %v", err)
	}
	if string(data) != sampleSrc {
		t.Errorf("fmt changed an already-canonical file:\n%q", string(data))
	}
}

func TestFmtDiffDoesNotModifyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "route.dtrt")
	unformatted := "lang=en\nsource=kafka/orders\nlocal=http/endpoint\nlocal:\n  [amount]=>[total](str)\n"
	if err := os.WriteFile(path, []byte(unformatted), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}

	out, err := run(t, "fmt", "-d", path)
	if err != nil {
		t.Fatalf("fmt -d failed: %v", err)
	}
	if out == "" {
		t.Errorf("expected a diff to be printed for an unformatted file")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}
	if string(data) != unformatted {
		t.Errorf("fmt -d must not modify the file on disk")
	}
}
