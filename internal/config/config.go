// Package config loads knav settings from a YAML file, a .env file and
// KNAV_* environment variables, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/llm"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/logging"
)

type Config struct {
	Server ServerConfig   `yaml:"server"`
	Log    logging.Config `yaml:"log"`
	LLM    llm.Config     `yaml:"llm"`
}

type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
	MaxUploadMB int      `yaml:"max_upload_mb"`

	// SessionLifetime is the idle timeout of a browser session.
	SessionLifetime time.Duration `yaml:"session_lifetime"`

	// RequestTimeout bounds a whole HTTP request. Keep it above the
	// model timeout.
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			CORSOrigins:     []string{"*"},
			MaxUploadMB:     10,
			SessionLifetime: 12 * time.Hour,
			RequestTimeout:  90 * time.Second,
		},
		Log: logging.DefaultConfig(),
		LLM: llm.DefaultConfig(),
	}
}

// Load builds the configuration. path names an optional YAML file; when
// empty, KNAV_CONFIG is consulted. A .env file in the working directory is
// loaded first when present.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	cfg := Default()
	if path == "" {
		path = os.Getenv("KNAV_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	llm.ApplyEnv(&cfg.LLM)
	return &cfg, nil
}

// loadDotEnv sets variables from name without overriding ones already in
// the environment. A missing file is not an error.
func loadDotEnv(name string) error {
	err := godotenv.Load(name)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading %s: %w", name, err)
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("KNAV_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("KNAV_CORS_ORIGINS"); v != "" {
		cfg.Server.CORSOrigins = splitCSV(v)
	}
	if v := os.Getenv("KNAV_MAX_UPLOAD_MB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("KNAV_MAX_UPLOAD_MB: %w", err)
		}
		cfg.Server.MaxUploadMB = n
	}
	if v := os.Getenv("KNAV_SESSION_LIFETIME"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("KNAV_SESSION_LIFETIME: %w", err)
		}
		cfg.Server.SessionLifetime = d
	}
	if v := os.Getenv("KNAV_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("KNAV_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	return nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks the settings the server cannot start without. The LLM
// section is not checked here: a bad model setup leaves the server running
// with the model unavailable.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server address must not be empty")
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("max upload size must be positive, got %d MB", c.Server.MaxUploadMB)
	}
	if c.Server.SessionLifetime <= 0 {
		return fmt.Errorf("session lifetime must be positive, got %s", c.Server.SessionLifetime)
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.Server.RequestTimeout)
	}
	return c.Log.Validate()
}

// MaxUploadBytes is the upload limit in bytes.
func (c Config) MaxUploadBytes() int64 {
	return int64(c.Server.MaxUploadMB) << 20
}
