// Package config loads the table store settings file.
//
// Settings live in a single user-editable TOML file at
// <root>/conf/settings.toml. The file is created lazily from a commented
// template by an explicit Ensure call; creation is idempotent and never
// overwrites an existing file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Name is the product name, used for the default root directory and the
// root path key inside the settings file.
const Name = "BlazeStore"

// Settings is the parsed contents of settings.toml.
type Settings struct {
	Paths     map[string]string   `toml:"paths"`
	Databases map[string]Database `toml:"databases"`
}

// Database holds connection settings for one external database. MySQL-style
// databases use URL; ClickHouse clusters use URLs.
type Database struct {
	URL      string   `toml:"url"`
	URLs     []string `toml:"urls"`
	User     string   `toml:"user"`
	Password string   `toml:"password"`
}

const settingsTemplate = `[paths]
%s = "%s"

# Configuration of external databases
[databases]
# [databases.ck]
# urls = ["<host1>:<port1>", "<host2>:<port2>"]
# user = "xxx"
# password = "xxxxxx"
# [databases.mysql]
# url = "<host>:<port>"
# user = "xxxx"
# password = "xxxxxx"
`

// DefaultRoot returns the default table store root, a directory named after
// the product in the user's home directory.
func DefaultRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, Name), nil
}

// Path returns the settings file location for a store root.
func Path(root string) string {
	return filepath.Join(root, "conf", "settings.toml")
}

// Ensure creates the settings file from the template if it does not exist
// yet, creating parent directories as needed. It is a no-op when the file
// is already present.
func Ensure(root string) error {
	path := Path(root)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat settings file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	content := fmt.Sprintf(settingsTemplate, Name, filepath.ToSlash(root))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}

// Load reads and parses the settings file for a store root. A missing or
// malformed file is an explicit error; callers that can run without
// settings fall back to defaults themselves.
func Load(root string) (*Settings, error) {
	var s Settings
	if _, err := toml.DecodeFile(Path(root), &s); err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", Path(root), err)
	}
	return &s, nil
}

// Root returns the configured store root, or def when the settings carry
// no override.
func (s *Settings) Root(def string) string {
	if s == nil {
		return def
	}
	if p, ok := s.Paths[Name]; ok && p != "" {
		return filepath.FromSlash(p)
	}
	return def
}

// Database returns the named database section. The error names the section
// when it is absent.
func (s *Settings) Database(name string) (Database, error) {
	if s == nil {
		return Database{}, fmt.Errorf("no settings loaded, database %q unavailable", name)
	}
	db, ok := s.Databases[name]
	if !ok {
		return Database{}, fmt.Errorf("database %q not configured", name)
	}
	return db, nil
}

// CheckFields verifies the listed settings keys are present, mirroring the
// settings file's field names. The error enumerates every missing key.
func (d Database) CheckFields(required ...string) error {
	var missing []string
	for _, key := range required {
		switch key {
		case "url":
			if d.URL == "" {
				missing = append(missing, key)
			}
		case "urls":
			if len(d.URLs) == 0 {
				missing = append(missing, key)
			}
		case "user":
			if d.User == "" {
				missing = append(missing, key)
			}
		case "password":
			if d.Password == "" {
				missing = append(missing, key)
			}
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required keys in database config: %s", strings.Join(missing, ", "))
	}
	return nil
}
