package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config aggregates the worksheet, dashboard server and logger settings. The defaults reproduce
// the fixed settings of the reporting dashboard; a YAML file and then CAMPAIGN_SHEETS_* environment
// variables may override them.
type Config struct {
	Sheet Sheet `yaml:"sheet" envPrefix:"SHEET_"`
	HTTP  HTTP  `yaml:"http" envPrefix:"HTTP_"`
	Log   Log   `yaml:"log" envPrefix:"LOG_"`
}

// Sheet identifies the spreadsheet document and worksheet holding the campaign records.
type Sheet struct {
	URL    string        `yaml:"url" env:"URL"`
	Name   string        `yaml:"name" env:"NAME"`
	Scopes []string      `yaml:"scopes" env:"SCOPES" envSeparator:","`
	TTL    time.Duration `yaml:"ttl" env:"TTL"`
}

// HTTP configures the dashboard server.
type HTTP struct {
	Address        string        `yaml:"address" env:"ADDRESS"`
	Port           uint16        `yaml:"port" env:"PORT"`
	SessionTimeout time.Duration `yaml:"session-timeout" env:"SESSION_TIMEOUT"`
}

// Log configures the logger. Level is one of debug, info, warn or error and Format is text or
// json. Unknown values fall back to info and text.
type Log struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
}

const prefix = "CAMPAIGN_SHEETS_"

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Sheet: Sheet{
			URL:  "https://docs.google.com/spreadsheets/d/1usWA6IeJ_XVh4y9aZ4gKEzAF2l8DdUreH8mIKCc-uwQ/edit#gid=0",
			Name: "RED Strimlit",
			Scopes: []string{
				"https://www.googleapis.com/auth/spreadsheets",
				"https://www.googleapis.com/auth/drive",
			},
			TTL: 60 * time.Second,
		},
		HTTP: HTTP{
			Address:        "",
			Port:           8080,
			SessionTimeout: 30 * time.Minute,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the configuration: defaults, then the optional YAML file at path, then environment
// variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: prefix}); err != nil {
		return Config{}, fmt.Errorf("invalid environment configuration (%w)", err)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file (%w)", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file (%w)", err)
	}

	return nil
}

// Addr returns the dashboard listen address.
func (h HTTP) Addr() string {
	return fmt.Sprintf("%v:%d", h.Address, h.Port)
}

// ZapLevel converts the textual level into a zap level.
func (l Log) ZapLevel() zapcore.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error", "err":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Encoding validates the requested log format, returning "json" or "console".
func (l Log) Encoding() string {
	switch strings.ToLower(l.Format) {
	case "json":
		return "json"
	default:
		return "console"
	}
}
