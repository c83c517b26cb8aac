package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the Books API location used when nothing else is configured.
const DefaultBaseURL = "http://localhost:8000"

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "bookdesk", "config.yml")
}

// Path returns the config file in use: $BOOKDESK_CONFIG or DefaultPath.
func Path() string {
	if p := os.Getenv("BOOKDESK_CONFIG"); p != "" {
		return p
	}
	return DefaultPath()
}

// Load reads the config from disk (or env). A missing file is not an error;
// defaults apply until `bookdesk config init` writes one.
func Load() (*Config, error) {
	// A .env next to the working directory may carry BOOKDESK_* overrides.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}

	v := viper.New()

	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", "10s")
	v.SetDefault("api.max_limit", 500)
	v.SetDefault("ui.page_size", "10")
	v.SetDefault("ui.debounce", "300ms")
	v.SetDefault("ui.created_by", "system")
	v.SetDefault("ui.locale", "de")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", defaultLogFile())

	v.SetEnvPrefix("BOOKDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(Path())
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, isCfgNotFound := err.(viper.ConfigFileNotFoundError); !isCfgNotFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	cfg.Log.File = ExpandHome(cfg.Log.File)

	return &cfg, nil
}

// Save writes the config to path as YAML.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(cfg)
}

// ExpandHome expands a leading ~/ in a path.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

func defaultLogFile() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "bookdesk", "bookdesk.log")
}
