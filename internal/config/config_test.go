package config

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"sfclint/internal/diag"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.MaxParams != 2 || cfg.MaxFunctionLines != 80 || cfg.MaxNestingDepth != 4 {
		t.Fatalf("unexpected limits %+v", cfg)
	}
}

func TestLoadTOMLKeepsMissingDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sfclint.toml")
	writeFile(t, path, `
[rules]
max_params = 3
disabled = ["SCR006", "magic-number"]

[output]
source = "review"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxParams != 3 {
		t.Fatalf("expected max_params 3, got %d", cfg.MaxParams)
	}
	if cfg.MaxFunctionLines != DefaultMaxFunctionLines {
		t.Fatalf("expected default function lines, got %d", cfg.MaxFunctionLines)
	}
	if cfg.Source != "review" {
		t.Fatalf("expected source override, got %q", cfg.Source)
	}
	want := []diag.Code{diag.ScrSafeAccess, diag.ScrMagicNumber}
	if !reflect.DeepEqual(cfg.Disabled, want) {
		t.Fatalf("disabled = %v, want %v", cfg.Disabled, want)
	}
	if cfg.Enabled(diag.ScrSafeAccess) || !cfg.Enabled(diag.ScrBooleanNaming) {
		t.Fatal("unexpected Enabled result")
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".sfclint.yaml")
	writeFile(t, path, "rules:\n  max_nesting_depth: 2\n  boolean_prefixes: [is, should]\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxNestingDepth != 2 {
		t.Fatalf("expected nesting 2, got %d", cfg.MaxNestingDepth)
	}
	if !reflect.DeepEqual(cfg.BooleanPrefixes, []string{"is", "should"}) {
		t.Fatalf("unexpected prefixes %v", cfg.BooleanPrefixes)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown rule", "[rules]\ndisabled = [\"XYZ\"]\n", "unknown rule"},
		{"bad limit", "[rules]\nmax_function_lines = 0\n", "max_function_lines"},
		{"duplicate group name", "[rules]\nattribute_order = [\"id\", \"key,id\"]\n", "attribute_order"},
		{"syntax", "[rules\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".toml")
			writeFile(t, path, tt.content)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
			if !strings.Contains(err.Error(), path) {
				t.Fatalf("error should name the file: %v", err)
			}
		})
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	cfgPath := filepath.Join(root, "sfclint.toml")
	writeFile(t, cfgPath, "[rules]\nmax_params = 4\n")
	nested := filepath.Join(root, "src", "components")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, ok, err := Find(nested)
	if err != nil || !ok {
		t.Fatalf("Find: ok=%v err=%v", ok, err)
	}
	if got != cfgPath {
		t.Fatalf("Find() = %q, want %q", got, cfgPath)
	}

	cfg, path, err := LoadFor(nested)
	if err != nil || path != cfgPath || cfg.MaxParams != 4 {
		t.Fatalf("LoadFor() = %+v, %q, %v", cfg, path, err)
	}
}

func TestWriteTOMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Disabled = []diag.Code{diag.TplAttributeOrder}

	var buf bytes.Buffer
	if err := WriteTOML(&buf, cfg); err != nil {
		t.Fatalf("WriteTOML: %v", err)
	}
	path := filepath.Join(t.TempDir(), "sfclint.toml")
	writeFile(t, path, buf.String())

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(loaded, cfg) {
		t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", cfg, loaded)
	}
}

func TestDigestTracksSettings(t *testing.T) {
	a := Default()
	b := Default()
	if a.Digest() != b.Digest() {
		t.Fatal("equal configs must share a digest")
	}
	b.MaxParams = 5
	if a.Digest() == b.Digest() {
		t.Fatal("different configs must differ")
	}
	c := a.Clone()
	c.BooleanPrefixes[0] = "was"
	if a.BooleanPrefixes[0] != "is" {
		t.Fatal("Clone must not share slices")
	}
}
