package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultManifestName)

	content := `
name = "demo"
version = "0.1.0"
entry = "main.tern"
check = false

[log]
level = "debug"
file = "tern.log"

[database]
driver = "sqlite3"
dsn = ":memory:"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %s", err)
	}

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("load manifest: %s", err)
	}

	if m.Name != "demo" {
		t.Errorf("name is %q, want %q", m.Name, "demo")
	}
	if m.Entry != "main.tern" {
		t.Errorf("entry is %q, want %q", m.Entry, "main.tern")
	}
	if m.CheckEnabled() {
		t.Errorf("check should be disabled by the manifest")
	}
	if m.Log.Level != "debug" || m.Log.File != "tern.log" {
		t.Errorf("log section is %+v", m.Log)
	}
	if m.DB.Driver != "sqlite3" || m.DB.DSN != ":memory:" {
		t.Errorf("database section is %+v", m.DB)
	}
}

func TestCheckDefaultsToEnabled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultManifestName)

	if err := os.WriteFile(path, []byte(`name = "demo"`), 0o644); err != nil {
		t.Fatalf("write manifest: %s", err)
	}

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("load manifest: %s", err)
	}
	if !m.CheckEnabled() {
		t.Errorf("check should default to enabled")
	}
}

func TestMissingManifest(t *testing.T) {
	if _, err := LoadManifest(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatalf("expected error for missing manifest")
	}
}
