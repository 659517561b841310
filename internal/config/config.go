// Package config loads service configuration from an optional TOML file with
// environment-variable overrides. Secrets are environment-only and never read
// from (or written to) the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Config is the root configuration. Read-only after Load returns.
type Config struct {
	Server ServerConfig `toml:"server"`
	Google GoogleConfig `toml:"google"`
	Sheet  SheetConfig  `toml:"sheet"`
	SMTP   SMTPConfig   `toml:"smtp"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Addr                   string `toml:"addr"`
	ReadTimeoutSeconds     int    `toml:"read_timeout_seconds"`
	WriteTimeoutSeconds    int    `toml:"write_timeout_seconds"`
	ShutdownTimeoutSeconds int    `toml:"shutdown_timeout_seconds"`
	// AllowedOrigins is the CORS allow-list for the UI.
	AllowedOrigins []string `toml:"allowed_origins"`
}

// GoogleConfig contains the OAuth application settings.
type GoogleConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"-"` // env-only, never in the file
	RedirectURL  string `toml:"redirect_url"`
}

// SheetConfig identifies the backing spreadsheet.
type SheetConfig struct {
	SpreadsheetID string `toml:"spreadsheet_id"`
}

// SMTPConfig contains settings for template test sends.
type SMTPConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"-"` // env-only, never in the file
	From     string `toml:"from"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// Load reads path (if it exists), applies environment overrides and
// validates the result. A missing file is fine; missing required settings
// are not.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Addr:                   ":8080",
			ReadTimeoutSeconds:     15,
			WriteTimeoutSeconds:    30,
			ShutdownTimeoutSeconds: 10,
		},
		SMTP: SMTPConfig{Port: 587},
		Log:  LogConfig{Level: "info"},
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// fall through to env
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := toml.Unmarshal(raw, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	applyEnv(cfg)

	if cfg.Google.ClientID == "" || cfg.Google.ClientSecret == "" {
		return nil, errors.New("config: google client id and secret are required")
	}
	if cfg.Sheet.SpreadsheetID == "" {
		return nil, errors.New("config: spreadsheet id is required")
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Addr, "LEADFORGE_ADDR")
	setString(&cfg.Google.ClientID, "GOOGLE_CLIENT_ID")
	setString(&cfg.Google.ClientSecret, "GOOGLE_CLIENT_SECRET")
	setString(&cfg.Google.RedirectURL, "GOOGLE_REDIRECT_URL")
	setString(&cfg.Sheet.SpreadsheetID, "LEADFORGE_SPREADSHEET_ID")
	setString(&cfg.SMTP.Host, "SMTP_HOST")
	setInt(&cfg.SMTP.Port, "SMTP_PORT")
	setString(&cfg.SMTP.Username, "SMTP_USERNAME")
	setString(&cfg.SMTP.Password, "SMTP_PASSWORD")
	setString(&cfg.SMTP.From, "SMTP_FROM")
	setString(&cfg.Log.Level, "LEADFORGE_LOG_LEVEL")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
