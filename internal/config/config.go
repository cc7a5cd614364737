package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Env  string `toml:"-"`
	Port int    `toml:"port"`

	// storage
	StorageBackend string `toml:"storage_backend"`
	DBHost         string `toml:"db_host"`
	DBPort         int    `toml:"db_port"`
	DBUser         string `toml:"db_user"`
	DBPassword     string `toml:"db_password"`
	DBName         string `toml:"db_name"`
	DBSSLMode      string `toml:"db_sslmode"`

	// redis; an empty host disables caching and rate limiting
	RedisHost     string `toml:"redis_host"`
	RedisPort     int    `toml:"redis_port"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`

	// auth
	JWTSecret       string `toml:"jwt_secret"`
	JWTIssuer       string `toml:"jwt_issuer"`
	TokenTTLMinutes int    `toml:"token_ttl_minutes"`

	RateLimitPerMinute int `toml:"rate_limit_per_minute"`
	StreakQueueSize    int `toml:"streak_queue_size"`

	// logging
	LogLevel    string `toml:"log_level"`
	LogFile     string `toml:"log_file"`
	LogToStdout bool   `toml:"log_to_stdout"`
	LogJSON     bool   `toml:"log_json"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch normalizeEnv(env) {
	case "development":
		return t.Development, nil
	case "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

func normalizeEnv(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "", "dev", "development":
		return "development"
	case "prod", "production":
		return "production"
	default:
		return strings.ToLower(env)
	}
}

// Load builds the configuration for env. Values come, in increasing priority,
// from built-in defaults, the [development] or [production] table of the TOML
// file at path (skipped when path is empty) and environment variables, which
// may themselves be seeded from a .env file.
func Load(path, env string) (*Config, error) {
	_ = godotenv.Load()

	if env == "" {
		env = os.Getenv("APP_ENV")
	}

	cfg := &Config{}
	if path != "" {
		var t Toml
		if _, err := toml.DecodeFile(path, &t); err != nil {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
		c, err := t.Get(env)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, fmt.Errorf("config: no [%s] table in %s", normalizeEnv(env), path)
		}
		cfg = c
	}

	cfg.Env = normalizeEnv(env)
	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.StorageBackend == "" {
		c.StorageBackend = StoragePostgres
	}
	if c.DBHost == "" {
		c.DBHost = "localhost"
	}
	if c.DBPort == 0 {
		c.DBPort = 5432
	}
	if c.DBSSLMode == "" {
		c.DBSSLMode = "disable"
	}
	if c.RedisPort == 0 {
		c.RedisPort = 6379
	}
	if c.JWTIssuer == "" {
		c.JWTIssuer = "kanso-fit"
	}
	if c.TokenTTLMinutes == 0 {
		c.TokenTTLMinutes = 24 * 60
	}
	if c.RateLimitPerMinute == 0 {
		c.RateLimitPerMinute = 100
	}
	if c.StreakQueueSize == 0 {
		c.StreakQueueSize = 100
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) applyEnv() {
	c.Port = getEnvInt("PORT", c.Port)
	c.StorageBackend = strings.ToLower(getEnv("STORAGE_BACKEND", c.StorageBackend))
	c.DBHost = getEnv("DB_HOST", c.DBHost)
	c.DBPort = getEnvInt("DB_PORT", c.DBPort)
	c.DBUser = getEnv("DB_USER", c.DBUser)
	c.DBPassword = getEnv("DB_PASSWORD", c.DBPassword)
	c.DBName = getEnv("DB_NAME", c.DBName)
	c.DBSSLMode = getEnv("DB_SSLMODE", c.DBSSLMode)
	c.RedisHost = getEnv("REDIS_HOST", c.RedisHost)
	c.RedisPort = getEnvInt("REDIS_PORT", c.RedisPort)
	c.RedisPassword = getEnv("REDIS_PASSWORD", c.RedisPassword)
	c.RedisDB = getEnvInt("REDIS_DB", c.RedisDB)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.JWTIssuer = getEnv("JWT_ISSUER", c.JWTIssuer)
	c.TokenTTLMinutes = getEnvInt("TOKEN_TTL_MINUTES", c.TokenTTLMinutes)
	c.RateLimitPerMinute = getEnvInt("RATE_LIMIT_PER_MINUTE", c.RateLimitPerMinute)
	c.StreakQueueSize = getEnvInt("STREAK_QUEUE_SIZE", c.StreakQueueSize)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnv("LOG_FILE", c.LogFile)
	c.LogToStdout = getEnvBool("LOG_TO_STDOUT", c.LogToStdout)
	c.LogJSON = getEnvBool("LOG_JSON", c.LogJSON)
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	switch c.StorageBackend {
	case StoragePostgres:
		if c.DBUser == "" || c.DBName == "" {
			return errors.New("DB_USER and DB_NAME are required when STORAGE_BACKEND=postgres")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("STORAGE_BACKEND must be one of: %s, %s", StoragePostgres, StorageMemory)
	}
	if c.Env == "production" && c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required in production")
	}
	if c.TokenTTLMinutes <= 0 {
		return errors.New("TOKEN_TTL_MINUTES must be positive")
	}
	if c.RateLimitPerMinute < 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	if c.StreakQueueSize <= 0 {
		return errors.New("STREAK_QUEUE_SIZE must be positive")
	}
	if c.Env != "development" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, production")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// DSN returns the postgres connection URL for the pgx stdlib driver.
func (c *Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	return u.String()
}

func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
