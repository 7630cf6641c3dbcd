package config

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
)

func newTestLoader() *Loader {
	return NewLoader(zerolog.Nop(), LoaderOptions{})
}

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadCUE(t *testing.T) {
	l := newTestLoader()
	path := writeTestFile(t, "cross.cue", `
host: "aarch64-unknown-linux-gnu"
sysroot: "/opt/sysroots/aarch64"
cflags: ["-O2", "-pipe"]
"meson:cross_file": "/cfg/aarch64.ini"
`)

	parsed, err := l.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(parsed.Errors) > 0 {
		t.Fatalf("unexpected validation errors: %v", parsed.Errors)
	}
	if parsed.Format != "cue" {
		t.Errorf("Format = %q, want cue", parsed.Format)
	}
	if parsed.Settings["host"] != "aarch64-unknown-linux-gnu" {
		t.Errorf("host = %v", parsed.Settings["host"])
	}
	if parsed.Settings["meson:cross_file"] != "/cfg/aarch64.ini" {
		t.Errorf("namespaced key not loaded: %v", parsed.Settings)
	}
	want := []any{"-O2", "-pipe"}
	if !reflect.DeepEqual(parsed.Settings["cflags"], want) {
		t.Errorf("cflags = %#v, want %#v", parsed.Settings["cflags"], want)
	}
}

func TestLoadYAML(t *testing.T) {
	l := newTestLoader()
	path := writeTestFile(t, "cross.yaml", `
host: armv7-unknown-linux-gnueabihf
include_dirs:
  - /sr/usr/include
platform_tag: auto
`)

	parsed, err := l.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(parsed.Errors) > 0 {
		t.Fatalf("unexpected validation errors: %v", parsed.Errors)
	}
	if parsed.Format != "yaml" {
		t.Errorf("Format = %q, want yaml", parsed.Format)
	}
	if parsed.Settings["host"] != "armv7-unknown-linux-gnueabihf" {
		t.Errorf("host = %v", parsed.Settings["host"])
	}
}

func TestLoadJSON(t *testing.T) {
	l := newTestLoader()
	path := writeTestFile(t, "cross.json", `{"host": "native", "ldflags": []}`)

	parsed, err := l.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(parsed.Errors) > 0 {
		t.Fatalf("unexpected validation errors: %v", parsed.Errors)
	}
	if parsed.Settings["host"] != "native" {
		t.Errorf("host = %v", parsed.Settings["host"])
	}
}

func TestLoadSchemaViolation(t *testing.T) {
	l := newTestLoader()

	// cflags as a scalar violates the settings schema before resolution
	// ever sees it.
	parsed := l.LoadInline(context.Background(), `cflags: "-O2"`, "cue")
	if len(parsed.Errors) == 0 {
		t.Fatal("scalar cflags must fail schema validation")
	}
	if parsed.Settings != nil {
		t.Errorf("Settings must be nil on schema failure, got %v", parsed.Settings)
	}
}

func TestLoadCUESyntaxErrorHasPosition(t *testing.T) {
	l := newTestLoader()
	path := writeTestFile(t, "broken.cue", "host: \"unterminated\ncflags: []\n")

	parsed, err := l.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(parsed.Errors) == 0 {
		t.Fatal("syntax error must be reported")
	}
	if parsed.Errors[0].File != path {
		t.Errorf("error File = %q, want %q", parsed.Errors[0].File, path)
	}
	if parsed.Errors[0].Line == 0 {
		t.Error("syntax error must carry a line number")
	}
}

func TestLoadMissingFile(t *testing.T) {
	l := newTestLoader()
	if _, err := l.Load(context.Background(), "/does/not/exist.cue"); err == nil {
		t.Fatal("missing file must return an error")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	l := newTestLoader()
	path := writeTestFile(t, "empty.yaml", "")

	parsed, err := l.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(parsed.Errors) > 0 {
		t.Fatalf("empty file must be valid: %v", parsed.Errors)
	}
	if len(parsed.Settings) != 0 {
		t.Errorf("empty file must load an empty mapping, got %v", parsed.Settings)
	}
}
