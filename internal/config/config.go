package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"gameadmin/internal/database"
)

type Config struct {
	Port     string
	LogLevel slog.Level

	DB database.Config

	// ключи для cookie-сессии и CSRF; пустые значения генерируются при старте
	SessionKey    []byte
	CSRFKey       []byte
	SecureCookies bool

	DefaultResetPassword string
	MigrateOnStart       bool

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Load читает .env (если он есть) и переменные окружения.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	level, err := parseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: level,
		DB: database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "1234"),
			DBName:   getEnv("DB_NAME", "gameadmin"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		SessionKey:           []byte(getEnv("SESSION_KEY", "")),
		CSRFKey:              []byte(getEnv("CSRF_KEY", "")),
		SecureCookies:        getBool("SECURE_COOKIES", false),
		DefaultResetPassword: getEnv("DEFAULT_RESET_PASSWORD", "changeme123"),
		MigrateOnStart:       getBool("MIGRATE_ON_START", true),
		ReadTimeout:          10 * time.Second,
		WriteTimeout:         15 * time.Second,
		ShutdownTimeout:      10 * time.Second,
	}

	if len(cfg.CSRFKey) != 0 && len(cfg.CSRFKey) != 32 {
		return Config{}, fmt.Errorf("CSRF_KEY must be 32 bytes, got %d", len(cfg.CSRFKey))
	}
	if len(cfg.DefaultResetPassword) < 6 {
		return Config{}, errors.New("DEFAULT_RESET_PASSWORD must be at least 6 characters")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return level, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}
