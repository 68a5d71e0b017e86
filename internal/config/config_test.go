package config

import (
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("VOLTLOG_DATA", "")
	t.Setenv("VOLTLOG_EXPORT_DIR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataPath != "" || cfg.ExportDir != "" {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("VOLTLOG_DATA", "")
	t.Setenv("VOLTLOG_EXPORT_DIR", "")

	want := Config{DataPath: "/data/voltlog.db", ExportDir: "/exports"}
	if err := Save(want); err != nil {
		t.Fatal(err)
	}

	got, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if err := Save(Config{DataPath: "/from-file.db"}); err != nil {
		t.Fatal(err)
	}
	t.Setenv("VOLTLOG_DATA", "/from-env.db")
	t.Setenv("VOLTLOG_EXPORT_DIR", "/env-exports")

	got, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if got.DataPath != "/from-env.db" {
		t.Fatalf("env should override file, got %q", got.DataPath)
	}
	if got.ExportDir != "/env-exports" {
		t.Fatalf("env export dir not applied, got %q", got.ExportDir)
	}
}

func TestResolveDataPathDefault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path, err := Config{}.ResolveDataPath()
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "voltlog", "voltlog.db")
	if path != want {
		t.Fatalf("got %q, want %q", path, want)
	}
}

func TestResolveDataPathConfigured(t *testing.T) {
	path, err := Config{DataPath: "/custom.db"}.ResolveDataPath()
	if err != nil {
		t.Fatal(err)
	}
	if path != "/custom.db" {
		t.Fatalf("got %q", path)
	}
}

func TestResolveExportDirConfigured(t *testing.T) {
	dir, err := Config{ExportDir: "/out"}.ResolveExportDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/out" {
		t.Fatalf("got %q", dir)
	}
}
