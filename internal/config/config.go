// Package config loads runtime settings from flags and LOCNOTES_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. LOCNOTES_DATA_DIR.
const EnvPrefix = "LOCNOTES"

const (
	BackendSQLite    = "sqlite"
	BackendMemory    = "memory"
	BackendFirestore = "firestore"
)

// Config holds the application's configuration.
type Config struct {
	DataDir        string
	DBFile         string
	Backend        string
	GCPProjectID   string
	ChangesTopic   string
	PositioningURL string
	ListenAddr     string
	Debug          bool
}

// DBPath is the full path of the SQLite database file.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, c.DBFile)
}

// RegisterFlags adds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("data-dir", defaultDataDir(), "directory holding the locations database")
	fs.String("db-file", "locations.db3", "database file name inside the data directory")
	fs.String("backend", BackendSQLite, "storage backend: sqlite, memory or firestore")
	fs.String("gcp-project", "", "Google Cloud project for the firestore backend and change events")
	fs.String("changes-topic", "", "Pub/Sub topic receiving location change events")
	fs.String("positioning-url", "", "base URL of the positioning service")
	fs.String("listen", "127.0.0.1:8080", "address the HTTP API listens on")
	fs.Bool("debug", false, "sets log level to debug")
}

// Load reads the flags in fs, falling back to environment variables and defaults.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, fmt.Errorf("failed to bind flags: %w", err)
	}
	v.AutomaticEnv()

	cfg := Config{
		DataDir:        v.GetString("data-dir"),
		DBFile:         v.GetString("db-file"),
		Backend:        strings.ToLower(v.GetString("backend")),
		GCPProjectID:   v.GetString("gcp-project"),
		ChangesTopic:   v.GetString("changes-topic"),
		PositioningURL: strings.TrimRight(v.GetString("positioning-url"), "/"),
		ListenAddr:     v.GetString("listen"),
		Debug:          v.GetBool("debug"),
	}
	return cfg, cfg.Validate()
}

// Validate checks that the combination of settings is usable.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendSQLite:
		if c.DataDir == "" || c.DBFile == "" {
			return fmt.Errorf("data-dir and db-file are required for the sqlite backend")
		}
	case BackendMemory:
	case BackendFirestore:
		if c.GCPProjectID == "" {
			return fmt.Errorf("gcp-project is required for the firestore backend")
		}
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if c.ChangesTopic != "" && c.GCPProjectID == "" {
		return fmt.Errorf("gcp-project is required when changes-topic is set")
	}
	return nil
}

// defaultDataDir is the user's private documents directory.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Documents")
}
