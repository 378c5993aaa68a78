package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Merge struct {
		Backup   bool `yaml:"backup"`
		Validate bool `yaml:"validate"`
	} `yaml:"merge"`
	Journal struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"journal"`
}

// Default returns the configuration used when no config file is present:
// validation on, backups off, journaling off.
func Default() *Config {
	var cfg Config
	cfg.Merge.Validate = true
	cfg.Journal.Path = "docmerge.db"
	return &cfg
}

func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	// 2. Load YAML config
	cfg := Default()
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(file, cfg); err != nil {
		return nil, err
	}

	// 3. Override with Environment Variables if present
	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DOCMERGE_BACKUP"); v != "" {
		cfg.Merge.Backup = isTruthy(v)
	}
	if v := os.Getenv("DOCMERGE_VALIDATE"); v != "" {
		cfg.Merge.Validate = isTruthy(v)
	}
	if v := os.Getenv("DOCMERGE_JOURNAL"); v != "" {
		cfg.Journal.Enabled = isTruthy(v)
	}
	if v := os.Getenv("DOCMERGE_JOURNAL_PATH"); v != "" {
		cfg.Journal.Path = v
	}
}

func isTruthy(v string) bool {
	switch v {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
