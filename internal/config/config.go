package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"socialmedia/internal/logging"
	"socialmedia/internal/password"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Config holds every runtime setting. Values come from Defaults, then an
// optional YAML file, then the environment.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`

	PasswordHashing string `yaml:"password_hashing" env:"SOCIAL_PASSWORD_HASHING"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr" env:"SOCIAL_HTTP_ADDR"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SOCIAL_SHUTDOWN_TIMEOUT"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps" env:"SOCIAL_RATE_LIMIT_RPS"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" env:"SOCIAL_RATE_LIMIT_BURST"`
}

type DatabaseConfig struct {
	Driver          string        `yaml:"driver" env:"SOCIAL_DB_DRIVER"`
	DSN             string        `yaml:"dsn" env:"SOCIAL_DB_DSN"`
	MaxOpenConns    int           `yaml:"max_open_conns" env:"SOCIAL_DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"SOCIAL_DB_MAX_IDLE_CONNS"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" env:"SOCIAL_DB_CONN_MAX_IDLE_TIME"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"SOCIAL_DB_CONN_MAX_LIFETIME"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"SOCIAL_LOG_LEVEL"`
	Format string `yaml:"format" env:"SOCIAL_LOG_FORMAT"`
}

// Defaults returns the configuration used when nothing is overridden.
func Defaults() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
			RateLimitBurst:  20,
		},
		Database: DatabaseConfig{
			Driver:          DriverSQLite,
			DSN:             "socialmedia.db",
			MaxOpenConns:    25,
			MaxIdleConns:    25,
			ConnMaxIdleTime: 5 * time.Minute,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: logging.FormatText,
		},
		PasswordHashing: password.ModePlain,
	}
}

// Load builds the configuration. yamlPath and envFile may be empty; a missing
// env file is ignored, a missing YAML file is not.
func Load(yamlPath, envFile string) (Config, error) {
	cfg := Defaults()

	if yamlPath != "" {
		if err := loadYAML(yamlPath, &cfg); err != nil {
			return Config{}, err
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		return errors.New("database dsn is required")
	}
	if c.Database.MaxOpenConns < 0 || c.Database.MaxIdleConns < 0 {
		return errors.New("database connection limits must not be negative")
	}
	if strings.TrimSpace(c.HTTP.Addr) == "" {
		return errors.New("http addr is required")
	}
	if c.HTTP.RateLimitRPS < 0 || c.HTTP.RateLimitBurst < 0 {
		return errors.New("rate limit settings must not be negative")
	}
	switch c.Log.Format {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("unsupported log format %q", c.Log.Format)
	}
	if _, err := password.New(c.PasswordHashing); err != nil {
		return err
	}
	return nil
}
