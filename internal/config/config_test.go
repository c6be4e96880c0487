package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLoad_Default(t *testing.T) {
	t.Setenv("CORKBOARD_CONFIG_PATH", "")

	cfg, err := Load(Options{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != "sqlite" {
		t.Errorf("expected sqlite backend, got %q", cfg.Backend)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected info level, got %q", cfg.LogLevel)
	}
	if cfg.File != "" {
		t.Errorf("expected no config file, got %q", cfg.File)
	}
	if cfg.LogPath() != filepath.Join(cfg.DataDir, "debug.log") {
		t.Errorf("unexpected log path %q", cfg.LogPath())
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "backend: diskv\nlog_level: debug\ndata_dir: /tmp/cork\n")

	cfg, err := Load(Options{Dir: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != "diskv" || cfg.LogLevel != "debug" || cfg.DataDir != "/tmp/cork" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.File == "" {
		t.Error("expected config file to be reported")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "backend: diskv\n")
	t.Setenv("CORKBOARD_BACKEND", "sqlite")

	cfg, err := Load(Options{Dir: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != "sqlite" {
		t.Errorf("expected env to win, got %q", cfg.Backend)
	}
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("CORKBOARD_DATA_DIR", "/tmp/env")

	cfg, err := Load(Options{
		Dir:       t.TempDir(),
		Overrides: map[string]string{KeyDataDir: "/tmp/flag", KeyLogLevel: ""},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataDir != "/tmp/flag" {
		t.Errorf("expected /tmp/flag, got %q", cfg.DataDir)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("empty override should be skipped, got %q", cfg.LogLevel)
	}
}

func TestLoad_PathExpansion(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home directory")
	}

	cfg, err := Load(Options{
		Dir:       t.TempDir(),
		Overrides: map[string]string{KeyDataDir: "~/cork-data"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := filepath.Join(homeDir, "cork-data")
	if cfg.DataDir != expected {
		t.Errorf("expected %q, got %q", expected, cfg.DataDir)
	}
}

func TestLoad_UnknownBackend(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "backend: postgres\n")
	if _, err := Load(Options{Dir: dir}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "backend: [unterminated\n")
	if _, err := Load(Options{Dir: dir}); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestEnsureFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cfg")

	path, created, err := EnsureFile(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatal("expected file to be created")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.Backend != "sqlite" || s.DataDir == "" {
		t.Errorf("unexpected defaults: %+v", s)
	}

	writeConfig(t, dir, "backend: diskv\n")
	_, created, err = EnsureFile(dir)
	if err != nil || created {
		t.Fatalf("existing file must be kept: created=%v err=%v", created, err)
	}
	cfg, err := Load(Options{Dir: dir})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != "diskv" {
		t.Errorf("expected diskv, got %q", cfg.Backend)
	}
}
