package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Prompt != "$ " {
		t.Errorf("Prompt = %q, want %q", cfg.Prompt, "$ ")
	}
	if cfg.TimeoutSeconds != 20 {
		t.Errorf("TimeoutSeconds = %d, want 20", cfg.TimeoutSeconds)
	}
	if cfg.Color {
		t.Error("Color should default to false")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".gosh.yaml")
	body := "prompt: \"# \"\ntimeout_seconds: 5\ncolor: true\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Prompt != "# " {
		t.Errorf("Prompt = %q, want %q", cfg.Prompt, "# ")
	}
	if cfg.Timeout() != 5*time.Second {
		t.Errorf("Timeout() = %v, want 5s", cfg.Timeout())
	}
	if !cfg.Color {
		t.Error("Color = false, want true")
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".gosh.yaml")
	if err := os.WriteFile(path, []byte("color: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Prompt != "$ " || cfg.TimeoutSeconds != 20 {
		t.Errorf("partial config lost defaults: %+v", cfg)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".gosh.yaml")
	if err := os.WriteFile(path, []byte("prompt: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load should fail on malformed YAML")
	}
}
