// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"oja-pos-licensing/internal/domain/activation"
)

type RuntimeConfig struct {
	Dev bool
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type HTTPConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type AdminConfig struct {
	APIKey    string        `yaml:"api_key"`
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

type DatabaseConfig struct {
	URL      string `yaml:"url"`
	MaxConns int32  `yaml:"max_conns"`
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type ActivationConfig struct {
	SecretKey     string        `yaml:"secret_key"`
	OutputDir     string        `yaml:"output_dir"`     // codegen artifacts
	AttemptLimit  int           `yaml:"attempt_limit"`  // per device per window
	AttemptWindow time.Duration `yaml:"attempt_window"` // rate limit window
	LockTTL       time.Duration `yaml:"lock_ttl"`       // per-code redemption lock
	StatusTTL     time.Duration `yaml:"status_ttl"`     // cached shop status
}

type Config struct {
	Log        LogConfig        `yaml:"log"`
	HTTP       HTTPConfig       `yaml:"http"`
	Admin      AdminConfig      `yaml:"admin"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Activation ActivationConfig `yaml:"activation"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads the service configuration. Values from a .env file next
// to the binary and from the environment override the YAML file.
func LoadConfig(path string, dev bool) (*Config, error) {
	cfg, err := read(path, false)
	if err != nil {
		return nil, err
	}
	cfg.Runtime.Dev = dev

	// Minimal validation
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required")
	}
	if cfg.Admin.APIKey == "" {
		return nil, errors.New("admin.api_key is required")
	}
	if cfg.Admin.JWTSecret == "" {
		return nil, errors.New("admin.jwt_secret is required")
	}
	return cfg, nil
}

// LoadGeneratorConfig reads only what the offline code generator needs.
// A missing file is not an error; defaults apply.
func LoadGeneratorConfig(path string) (*Config, error) {
	return read(path, true)
}

func read(path string, optional bool) (*Config, error) {
	_ = godotenv.Load() // .env is optional

	var cfg Config
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case optional && errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("OJA_ACTIVATION_SECRET"); v != "" {
		cfg.Activation.SecretKey = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
	if v := os.Getenv("OJA_ADMIN_API_KEY"); v != "" {
		cfg.Admin.APIKey = v
	}
	if v := os.Getenv("OJA_JWT_SECRET"); v != "" {
		cfg.Admin.JWTSecret = v
	}
	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		cfg.HTTP.Port = p
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 8080
	}
	cfg.HTTP.ReadTimeout = orDefault(cfg.HTTP.ReadTimeout, 10*time.Second)
	cfg.HTTP.WriteTimeout = orDefault(cfg.HTTP.WriteTimeout, 10*time.Second)
	cfg.HTTP.ShutdownTimeout = orDefault(cfg.HTTP.ShutdownTimeout, 15*time.Second)
	cfg.Admin.TokenTTL = orDefault(cfg.Admin.TokenTTL, 30*time.Minute)
	if cfg.Database.MaxConns <= 0 {
		cfg.Database.MaxConns = 10
	}
	if cfg.Activation.SecretKey == "" {
		cfg.Activation.SecretKey = activation.DefaultSecretKey
	}
	if cfg.Activation.OutputDir == "" {
		cfg.Activation.OutputDir = "."
	}
	if cfg.Activation.AttemptLimit <= 0 {
		cfg.Activation.AttemptLimit = 5
	}
	cfg.Activation.AttemptWindow = orDefault(cfg.Activation.AttemptWindow, 15*time.Minute)
	cfg.Activation.LockTTL = orDefault(cfg.Activation.LockTTL, 10*time.Second)
	cfg.Activation.StatusTTL = orDefault(cfg.Activation.StatusTTL, 30*time.Second)
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
