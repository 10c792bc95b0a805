// Package config loads server settings from a YAML file with BLOGAPI_*
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

const (
	DriverBadger = "badger"
	DriverMongo  = "mongo"

	DefaultPath = "config.yaml"
)

type Config struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`

	// TestingRoutes registers DELETE /testing/all-data.
	TestingRoutes bool `yaml:"testing_routes"`

	Log   LogConfig   `yaml:"log"`
	Auth  AuthConfig  `yaml:"auth"`
	Store StoreConfig `yaml:"store"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// AuthConfig is the single credential pair accepted on write routes.
type AuthConfig struct {
	Login      string `yaml:"login"`
	Password   string `yaml:"password"`
	BcryptCost int    `yaml:"bcrypt_cost"`
}

type StoreConfig struct {
	Driver        string `yaml:"driver"`
	Path          string `yaml:"path"`
	InMemory      bool   `yaml:"in_memory"`
	MongoURI      string `yaml:"mongo_uri"`
	MongoDatabase string `yaml:"mongo_database"`
	BackupDir     string `yaml:"backup_dir"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Auth: AuthConfig{
			Login:      "admin",
			Password:   "qwerty",
			BcryptCost: bcrypt.DefaultCost,
		},
		Store: StoreConfig{
			Driver:        DriverBadger,
			Path:          "data/badger",
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "blogapi",
			BackupDir:     "backups",
		},
	}
}

// Load reads path over the defaults and then applies environment overrides.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Addr = envOrDefault("BLOGAPI_ADDR", c.Addr)
	c.Log.Level = envOrDefault("BLOGAPI_LOG_LEVEL", c.Log.Level)
	c.Log.Format = envOrDefault("BLOGAPI_LOG_FORMAT", c.Log.Format)
	c.Log.File = envOrDefault("BLOGAPI_LOG_FILE", c.Log.File)
	c.Auth.Login = envOrDefault("BLOGAPI_AUTH_LOGIN", c.Auth.Login)
	c.Auth.Password = envOrDefault("BLOGAPI_AUTH_PASSWORD", c.Auth.Password)
	c.Store.Driver = envOrDefault("BLOGAPI_STORE_DRIVER", c.Store.Driver)
	c.Store.Path = envOrDefault("BLOGAPI_STORE_PATH", c.Store.Path)
	c.Store.MongoURI = envOrDefault("BLOGAPI_MONGO_URI", c.Store.MongoURI)
	c.Store.MongoDatabase = envOrDefault("BLOGAPI_MONGO_DATABASE", c.Store.MongoDatabase)
	c.Store.BackupDir = envOrDefault("BLOGAPI_BACKUP_DIR", c.Store.BackupDir)

	if v := os.Getenv("BLOGAPI_TESTING_ROUTES"); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("BLOGAPI_TESTING_ROUTES: %w", err)
		}
		c.TestingRoutes = on
	}
	return nil
}

// maxPasswordBytes is the longest password bcrypt will hash.
const maxPasswordBytes = 72

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if c.Auth.Login == "" || c.Auth.Password == "" {
		return errors.New("auth.login and auth.password must be set")
	}
	if len(c.Auth.Password) > maxPasswordBytes {
		return fmt.Errorf("auth.password must be at most %d bytes", maxPasswordBytes)
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.bcrypt_cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	switch c.Store.Driver {
	case DriverBadger:
		if c.Store.Path == "" && !c.Store.InMemory {
			return errors.New("store.path must be set for the badger driver")
		}
	case DriverMongo:
		if c.Store.MongoURI == "" || c.Store.MongoDatabase == "" {
			return errors.New("store.mongo_uri and store.mongo_database must be set for the mongo driver")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
