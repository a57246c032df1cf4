// Package config carries the process configuration and the optional project
// manifest (tern.toml).
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Configuration struct {
	Version   string
	BuildDate string
	Commit    string

	NoCheck  bool
	DebugAST bool
}

// Manifest is the tern.toml project file. Entry names the script to run when
// the CLI is started without a file argument.
type Manifest struct {
	Name    string   `toml:"name"`
	Version string   `toml:"version"`
	Entry   string   `toml:"entry"`
	Check   *bool    `toml:"check"`
	Log     Log      `toml:"log"`
	DB      Database `toml:"database"`
}

// Log mirrors the -log-level and -log-file flags; the flags win when both
// are given.
type Log struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Database names the project database. When set, the runner exposes it to
// scripts as the DB_DRIVER and DB_DSN bindings.
type Database struct {
	Driver string `toml:"driver"`
	DSN    string `toml:"dsn"`
}

const DefaultManifestName = "tern.toml"

func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return &m, nil
}

// CheckEnabled defaults to true when the manifest does not say otherwise.
func (m *Manifest) CheckEnabled() bool {
	return m.Check == nil || *m.Check
}
