// Package config loads application configuration: built-in defaults,
// overridden by an optional YAML file, overridden by environment
// variables. A .env file is honored when present.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Backend names for the persistence and session stores.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// PolicyConfig mirrors service.Policy so deployments can pick either
// interpretation of the original's permissive behavior.
type PolicyConfig struct {
	OwnerOnlyStatusUpdates  bool `yaml:"owner_only_status_updates"`
	RejectSelfRequests      bool `yaml:"reject_self_requests"`
	RejectDuplicateRequests bool `yaml:"reject_duplicate_requests"`
}

// Config holds all configuration for the application.
type Config struct {
	Addr      string       `yaml:"addr"`
	Backend   string       `yaml:"backend"`
	DBPath    string       `yaml:"db_path"`
	JWTSecret string       `yaml:"jwt_secret"`
	Policy    PolicyConfig `yaml:"policy"`
}

// Load builds the configuration. path may be empty, in which case only
// defaults and the environment apply.
func Load(path string) (*Config, error) {
	// A missing .env is fine.
	_ = godotenv.Load()

	cfg := &Config{
		Addr:    ":8080",
		Backend: BackendSQLite,
		DBPath:  "givehub.sqlite3",
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnv(cfg)

	if cfg.Backend != BackendSQLite && cfg.Backend != BackendMemory {
		return nil, fmt.Errorf("unknown backend %q (want %q or %q)", cfg.Backend, BackendSQLite, BackendMemory)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("GIVEHUB_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("GIVEHUB_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("GIVEHUB_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("GIVEHUB_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	envBool("GIVEHUB_OWNER_ONLY_STATUS_UPDATES", &cfg.Policy.OwnerOnlyStatusUpdates)
	envBool("GIVEHUB_REJECT_SELF_REQUESTS", &cfg.Policy.RejectSelfRequests)
	envBool("GIVEHUB_REJECT_DUPLICATE_REQUESTS", &cfg.Policy.RejectDuplicateRequests)
}

func envBool(name string, target *bool) {
	if v := os.Getenv(name); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			*target = parsed
		}
	}
}
