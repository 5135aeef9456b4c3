// Package config assembles runtime configuration from defaults, an
// optional YAML file, and environment variables (highest precedence).
// A .env file in the working directory is honored via godotenv.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the runtime configuration for the conversation engine.
type Config struct {
	// DBPath is the SQLite database file.
	DBPath string `yaml:"db_path"`

	// AdminIDs seeds the admins table at startup. The table remains the
	// single source of truth afterwards.
	AdminIDs []int64 `yaml:"admin_ids"`

	// SessionTTL clears sessions idle longer than this; zero means
	// sessions never expire (the default).
	SessionTTL time.Duration `yaml:"session_ttl"`

	// StoreTimeout bounds each handler step including its store
	// operations.
	StoreTimeout time.Duration `yaml:"store_timeout"`

	// ContentPath points at a YAML content pack (symptom categories,
	// medicine directory). Empty uses the built-in defaults.
	ContentPath string `yaml:"content_path"`
}

// Load builds the config: defaults, then the YAML file at path (if
// non-empty), then environment variables.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBPath:       "healthbot.db",
		SessionTTL:   0,
		StoreTimeout: 5 * time.Second,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("HEALTHBOT_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("HEALTHBOT_CONTENT"); v != "" {
		c.ContentPath = v
	}
	if v := os.Getenv("HEALTHBOT_ADMINS"); v != "" {
		ids, err := parseIDList(v)
		if err != nil {
			return fmt.Errorf("HEALTHBOT_ADMINS: %w", err)
		}
		c.AdminIDs = ids
	}
	if v := os.Getenv("HEALTHBOT_SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("HEALTHBOT_SESSION_TTL: %w", err)
		}
		c.SessionTTL = d
	}
	if v := os.Getenv("HEALTHBOT_STORE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("HEALTHBOT_STORE_TIMEOUT: %w", err)
		}
		c.StoreTimeout = d
	}
	return nil
}

func parseIDList(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad account id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
