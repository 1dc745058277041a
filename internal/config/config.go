// Package config is responsible for initializing the application's
// configuration. It uses the Viper library to read settings from a config
// file and environment variables, and validates the result before anything
// downstream sees it.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all flagfetch settings.
type Config struct {
	// BaseURL is the flag CDN root the two per-key resources hang off.
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	// OutputDir receives the downloaded flag images.
	OutputDir string `mapstructure:"output_dir" validate:"required"`
	// Concurrency caps in-flight fetch stages for one run.
	Concurrency int `mapstructure:"concurrency" validate:"min=1,max=1000"`
	// RequestTimeout bounds a single CDN exchange.
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gt=0"`
	// Verbose switches from aggregate progress to per-key logging.
	Verbose bool `mapstructure:"verbose"`
	// HTTPAddr and TCPAddr are the serve command's listen addresses.
	HTTPAddr string `mapstructure:"http_addr" validate:"required"`
	TCPAddr  string `mapstructure:"tcp_addr" validate:"required"`
	// Development selects the human-readable log encoder.
	Development bool `mapstructure:"development"`
}

// Init registers defaults, search paths, and the environment binding on the
// global Viper. Call once at startup, before Load. cfgFile overrides the
// search paths when non-empty.
func Init(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/flagfetch/")
		viper.AddConfigPath("$HOME/.flagfetch")
	}

	viper.SetDefault("base_url", "https://www.fluentpython.com/data/flags")
	viper.SetDefault("output_dir", "downloaded")
	viper.SetDefault("concurrency", 5)
	viper.SetDefault("request_timeout", "3s")
	viper.SetDefault("verbose", false)
	viper.SetDefault("http_addr", ":8000")
	viper.SetDefault("tcp_addr", ":2323")
	viper.SetDefault("development", false)

	viper.SetEnvPrefix("FLAGFETCH") // e.g. FLAGFETCH_CONCURRENCY=30
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Missing config files are fine; defaults and env cover everything.
	_ = viper.ReadInConfig()
}

// Load unmarshals and validates the settings held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}
