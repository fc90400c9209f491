package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"rps_webapp/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort       string
	DatabaseURL   string
	JWTSecret     string
	AllowedOrigin string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LogLevel string
	LogJSON  bool

	// Match rules
	RoundsPerMatch int
	RoomGrace      time.Duration
	StatsTimeout   time.Duration

	// Limits
	APIRateLimit       int
	APIRateWindow      time.Duration
	WSMessageRateLimit int
}

// Load reads .env when present, then the environment. Exits when a required
// variable is missing.
func Load() *Config {
	_ = godotenv.Load()

	cfg, err := LoadFromEnv()
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}
	return cfg
}

// LoadFromEnv reads the process environment without touching .env files.
func LoadFromEnv() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &Config{
		AppPort:       port,
		DatabaseURL:   dbURL,
		JWTSecret:     jwtSecret,
		AllowedOrigin: os.Getenv("ALLOWED_ORIGIN"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0),

		LogLevel: logLevel,
		LogJSON:  os.Getenv("LOG_JSON") == "true",

		RoundsPerMatch: envInt("ROUNDS_PER_MATCH", 5),
		RoomGrace:      envSeconds("ROOM_GRACE_SECONDS", 5),
		StatsTimeout:   envSeconds("STATS_TIMEOUT_SECONDS", 5),

		APIRateLimit:       envInt("API_RATE_LIMIT", 60),
		APIRateWindow:      envSeconds("API_RATE_WINDOW_SECONDS", 60),
		WSMessageRateLimit: envInt("WS_MESSAGE_RATE_LIMIT", 20),
	}, nil
}

// envInt returns a positive integer from key or def.
func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envSeconds(key string, def int) time.Duration {
	return time.Duration(envInt(key, def)) * time.Second
}
