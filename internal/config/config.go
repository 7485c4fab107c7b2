package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	AppVersion  string
	GinMode     string
	DatabaseURL string // empty means in-memory storage

	LogLevel string
	LogJSON  bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	APIRateLimit  int
	APIRateWindow time.Duration

	CORSAllowedOrigins []string
	AllowedOrigin      string // websocket Origin check

	ShutdownTimeout time.Duration
}

// Загрузка конфига из env
func Load() *Config {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function; Load uses os.Getenv.
func FromEnv(getenv func(string) string) *Config {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}
	getInt := func(key string, def int) int {
		if v := getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				return n
			}
		}
		return def
	}

	var origins []string
	if v := getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return &Config{
		AppPort:            get("APP_PORT", "8080"),
		AppVersion:         get("APP_VERSION", "dev"),
		GinMode:            get("GIN_MODE", "release"),
		DatabaseURL:        get("DATABASE_URL", ""),
		LogLevel:           get("LOG_LEVEL", "info"),
		LogJSON:            getenv("LOG_JSON") == "true",
		RedisAddr:          get("REDIS_ADDR", ""),
		RedisPassword:      getenv("REDIS_PASSWORD"),
		RedisDB:            getInt("REDIS_DB", 0),
		APIRateLimit:       getInt("API_RATE_LIMIT", 120),
		APIRateWindow:      time.Duration(getInt("API_RATE_WINDOW_SECONDS", 60)) * time.Second,
		CORSAllowedOrigins: origins,
		AllowedOrigin:      get("ALLOWED_ORIGIN", ""),
		ShutdownTimeout:    time.Duration(getInt("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
	}
}

func (c *Config) UseMemoryStore() bool {
	return c.DatabaseURL == ""
}
