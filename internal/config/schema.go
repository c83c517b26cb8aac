package config

import "time"

// Config is the top-level bookdesk configuration.
type Config struct {
	API APIConfig `mapstructure:"api" yaml:"api"`
	UI  UIConfig  `mapstructure:"ui" yaml:"ui"`
	Log LogConfig `mapstructure:"log" yaml:"log"`
}

// APIConfig holds Books API connection settings.
type APIConfig struct {
	BaseURL  string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
	MaxLimit int           `mapstructure:"max_limit" yaml:"max_limit"` // server-side cap on ?limit=
}

// UIConfig holds defaults for the interactive screen and CLI.
type UIConfig struct {
	PageSize  string        `mapstructure:"page_size" yaml:"page_size"` // "10", "25", "50" or "all"
	Debounce  time.Duration `mapstructure:"debounce" yaml:"debounce"`
	CreatedBy string        `mapstructure:"created_by" yaml:"created_by"`
	Locale    string        `mapstructure:"locale" yaml:"locale"` // "de" or "en"
}

// LogConfig controls the diagnostic log file.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// EffectiveCreatedBy returns the configured author of mutations or "system".
func (u UIConfig) EffectiveCreatedBy() string {
	if u.CreatedBy != "" {
		return u.CreatedBy
	}
	return "system"
}

// EffectiveDebounce returns the live-search quiet interval, 300ms if unset.
func (u UIConfig) EffectiveDebounce() time.Duration {
	if u.Debounce > 0 {
		return u.Debounce
	}
	return 300 * time.Millisecond
}

// EffectiveMaxLimit returns the largest page the server accepts in one request.
func (a APIConfig) EffectiveMaxLimit() int {
	if a.MaxLimit > 0 {
		return a.MaxLimit
	}
	return 500
}
