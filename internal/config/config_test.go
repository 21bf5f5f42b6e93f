package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFrom_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.General.Session != "default" {
		t.Fatalf("Session = %q, want %q", cfg.General.Session, "default")
	}
	if cfg.Store.Driver != "sqlite" {
		t.Fatalf("Driver = %q, want sqlite", cfg.Store.Driver)
	}
	if filepath.Base(cfg.Store.Path) != "assessments.db" {
		t.Fatalf("Path = %q, want default db path", cfg.Store.Path)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "config.toml")
	cfg := DefaultConfig()
	cfg.General.Session = "client-42"
	cfg.Store.Path = "/tmp/x.db"
	cfg.Server.SessionTTLMinutes = 30

	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("perm = %o, want 600", perm)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got.General.Session != "client-42" || got.Store.Path != "/tmp/x.db" || got.Server.SessionTTLMinutes != 30 {
		t.Fatalf("LoadFrom = %+v", got)
	}
}

func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[general]\nsession = \"file\"\n[store]\ndriver = \"sqlite\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("SHIELDPLAN_SESSION", "env")
	t.Setenv("SHIELDPLAN_STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://generic")
	t.Setenv("SHIELDPLAN_DATABASE_URL", "postgres://specific")
	t.Setenv("SHIELDPLAN_SESSION_TTL_MINUTES", "15")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.General.Session != "env" {
		t.Errorf("Session = %q, want env", cfg.General.Session)
	}
	if cfg.Store.Driver != "postgres" {
		t.Errorf("Driver = %q, want postgres", cfg.Store.Driver)
	}
	if cfg.Store.DatabaseURL != "postgres://specific" {
		t.Errorf("DatabaseURL = %q, want postgres://specific", cfg.Store.DatabaseURL)
	}
	if cfg.Server.SessionTTLMinutes != 15 {
		t.Errorf("SessionTTLMinutes = %d, want 15", cfg.Server.SessionTTLMinutes)
	}
}

func TestEnvOverrides_BadTTL(t *testing.T) {
	t.Setenv("SHIELDPLAN_SESSION_TTL_MINUTES", "soon")
	if _, err := LoadFrom(filepath.Join(t.TempDir(), "none.toml")); err == nil {
		t.Fatal("LoadFrom = nil error, want error for bad TTL")
	}
}

func TestLoadFrom_BadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[general\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("LoadFrom = nil error, want parse error")
	}
}
