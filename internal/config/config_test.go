package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[decode]
opaque = ["const/4", "0x6e"]
strict = true
max-steps = 5000

[output]
dir = "out"
dot = true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Decode.Strict || cfg.Decode.MaxSteps != 5000 {
		t.Errorf("decode = %+v", cfg.Decode)
	}
	if cfg.Output.Dir != "out" || !cfg.Output.DOT || cfg.Output.JSON {
		t.Errorf("output = %+v", cfg.Output)
	}

	set, err := cfg.OpaqueSet()
	if err != nil {
		t.Fatalf("OpaqueSet: %v", err)
	}
	if !set[0x12] || !set[0x6e] || len(set) != 2 {
		t.Errorf("opaque set = %v", set)
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if cfg.Output.Dir != "dex_output" || cfg.Decode.Strict {
		t.Errorf("default config = %+v", cfg)
	}
	if set, err := cfg.OpaqueSet(); err != nil || set != nil {
		t.Errorf("default opaque set = %v, %v", set, err)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := writeConfig(t, "[decode]\nopaque = [\"no-such-op\"]\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := cfg.OpaqueSet(); err == nil {
		t.Error("expected error for unknown mnemonic")
	}

	path = writeConfig(t, "[decode\nbroken")
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}
