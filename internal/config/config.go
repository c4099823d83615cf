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
)

type AppConfig struct {
	Name            string        `yaml:"name"`
	Port            string        `yaml:"port"`
	Env             string        `yaml:"env"`
	LogLevel        string        `yaml:"log_level"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type PostgresConfig struct {
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	DBName          string        `yaml:"dbname"`
	SSLMode         string        `yaml:"sslmode"`
	MaxConns        int32         `yaml:"max_conns"`
	MinConns        int32         `yaml:"min_conns"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"`
}

// DSN returns a keyword/value connection string understood by pgx.
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type StoreConfig struct {
	DefaultName string `yaml:"default_name"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type Config struct {
	App      AppConfig      `yaml:"app"`
	Postgres PostgresConfig `yaml:"postgres"`
	Store    StoreConfig    `yaml:"store"`
	CORS     CORSConfig     `yaml:"cors"`
}

func defaults() Config {
	return Config{
		App: AppConfig{
			Name:            "tasty-api",
			Port:            "8000",
			Env:             "development",
			LogLevel:        "debug",
			ShutdownTimeout: 15 * time.Second,
		},
		Postgres: PostgresConfig{
			Port:            "5432",
			SSLMode:         "disable",
			MaxConns:        10,
			MinConns:        2,
			MaxConnLifetime: 30 * time.Minute,
		},
		Store: StoreConfig{
			DefaultName: "滋味點餐",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
	}
}

// NewConfig builds the configuration from built-in defaults, an optional
// YAML file named by CONFIG_PATH and the process environment, in that order.
// A .env file in the working directory is loaded first if present.
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := defaults()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := loadYAML(path, &cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func loadYAML(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
		return fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.App.Port, "APP_PORT")
	setString(&cfg.App.Env, "APP_ENV")
	setString(&cfg.App.LogLevel, "LOG_LEVEL")
	if err := setDuration(&cfg.App.ShutdownTimeout, "HTTP_SHUTDOWN_TIMEOUT"); err != nil {
		return err
	}

	setString(&cfg.Postgres.Host, "DB_HOST")
	setString(&cfg.Postgres.Port, "DB_PORT")
	setString(&cfg.Postgres.User, "DB_USER")
	setString(&cfg.Postgres.Password, "DB_PASSWORD")
	setString(&cfg.Postgres.DBName, "DB_NAME")
	setString(&cfg.Postgres.SSLMode, "DB_SSLMODE")
	if err := setInt32(&cfg.Postgres.MaxConns, "DB_MAX_CONNS"); err != nil {
		return err
	}
	if err := setInt32(&cfg.Postgres.MinConns, "DB_MIN_CONNS"); err != nil {
		return err
	}
	if err := setDuration(&cfg.Postgres.MaxConnLifetime, "DB_MAX_CONN_LIFETIME"); err != nil {
		return err
	}

	setString(&cfg.Store.DefaultName, "STORE_DEFAULT_NAME")

	if v, ok := os.LookupEnv("CORS_ALLOWED_ORIGINS"); ok && v != "" {
		origins := make([]string, 0)
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.CORS.AllowedOrigins = origins
	}

	return nil
}

func (c *Config) validate() error {
	required := map[string]string{
		"DB_HOST":     c.Postgres.Host,
		"DB_USER":     c.Postgres.User,
		"DB_PASSWORD": c.Postgres.Password,
		"DB_NAME":     c.Postgres.DBName,
	}
	for _, key := range []string{"DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME"} {
		if required[key] == "" {
			return fmt.Errorf("%s is required", key)
		}
	}

	if c.App.Port == "" {
		return errors.New("APP_PORT cannot be empty")
	}
	if c.Postgres.MinConns > c.Postgres.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) must not exceed DB_MAX_CONNS (%d)", c.Postgres.MinConns, c.Postgres.MaxConns)
	}

	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt32(dst *int32, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = int32(n)
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = d
	return nil
}
