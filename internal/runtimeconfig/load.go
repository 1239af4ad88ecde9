package runtimeconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. CONTENTKIT_JOURNAL_DSN.
	EnvPrefix = "CONTENTKIT"
	// DefaultConfigFile is looked up in the project root when no file is given.
	DefaultConfigFile = "contentkit.yaml"
	envFile           = ".env"
)

// ErrConfigFileMissing indicates an explicitly requested config file does not exist.
var ErrConfigFileMissing = errors.New("contentkit config: config file not found")

// Load builds a Config from defaults, an optional YAML file, a `.env` file in
// root, and CONTENTKIT_* environment variables, in increasing precedence.
// An empty configPath falls back to contentkit.yaml in root when present.
func Load(root, configPath string) (Config, error) {
	if strings.TrimSpace(root) == "" {
		root = "."
	}
	if err := loadEnvFile(filepath.Join(root, envFile)); err != nil {
		return Config{}, err
	}

	defaults := DefaultConfig()
	v := viper.New()
	v.SetDefault("root", root)
	v.SetDefault("blog_dir", defaults.BlogDir)
	v.SetDefault("categories", defaults.Categories)
	v.SetDefault("dry_run", false)
	v.SetDefault("logging.provider", defaults.Logging.Provider)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("journal.dsn", "")

	path, err := configFile(root, configPath)
	if err != nil {
		return Config{}, err
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("contentkit config: read %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("contentkit config: unmarshal: %w", err)
	}
	if len(cfg.RecordDirs) == 0 {
		cfg.RecordDirs = DefaultRecordDirs()
	}
	return cfg, nil
}

func configFile(root, configPath string) (string, error) {
	if path := strings.TrimSpace(configPath); path != "" {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", fmt.Errorf("%w: %s", ErrConfigFileMissing, path)
			}
			return "", fmt.Errorf("contentkit config: stat %s: %w", path, err)
		}
		return path, nil
	}
	candidate := filepath.Join(root, DefaultConfigFile)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", nil
}

// loadEnvFile exports the variables of a .env file. Variables already present
// in the environment keep their value.
func loadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("contentkit config: load %s: %w", path, err)
	}
	return nil
}
