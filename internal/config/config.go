package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPath      = "config/config.yaml"
	DefaultTimeLimit = 60 * time.Second
	DefaultCacheTTL  = 10 * time.Minute
)

type Config struct {
	Quiz struct {
		TimeLimit   string `yaml:"time_limit"`
		Bank        string `yaml:"bank"`
		BankFile    string `yaml:"bank_file"`
		DefaultName string `yaml:"default_name"`
		CacheTTL    string `yaml:"cache_ttl"`
	} `yaml:"quiz"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadDotEnv loads .env files into the process environment. Variables that
// are already set win; missing files are ignored.
func LoadDotEnv(files ...string) {
	_ = godotenv.Load(files...)
}

// ApplyEnv overlays TRIVIA_* variables and the Redis/Postgres/PORT
// conventions on cfg.
func (c *Config) ApplyEnv() {
	setFromEnv(&c.Quiz.TimeLimit, "TRIVIA_TIME_LIMIT")
	setFromEnv(&c.Quiz.Bank, "TRIVIA_BANK")
	setFromEnv(&c.Quiz.BankFile, "TRIVIA_BANK_FILE")
	setFromEnv(&c.Quiz.DefaultName, "TRIVIA_DEFAULT_NAME")
	setFromEnv(&c.Log.Level, "TRIVIA_LOG_LEVEL")
	setFromEnv(&c.Server.Port, "PORT")
	setFromEnv(&c.Redis.Addr, "REDIS_ADDR")
	setFromEnv(&c.Redis.Password, "REDIS_PASSWORD")
	setFromEnv(&c.Postgres.URL, "DATABASE_URL")
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// TimeLimit returns the configured quiz time limit, DefaultTimeLimit when unset.
// Zero and negative limits are kept; they end every attempt immediately.
func (c Config) TimeLimit() time.Duration {
	return Duration(c.Quiz.TimeLimit, DefaultTimeLimit)
}

// Duration parses a duration string or returns the fallback if empty.
// Bare integers are read as seconds.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if d, err := time.ParseDuration(raw + "s"); err == nil {
		return d
	}
	return fallback
}
