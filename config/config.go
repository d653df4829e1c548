package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultPort                  = "8080"
	DefaultAccessTokenExpiryMin  = 15
	DefaultRefreshTokenExpiryMin = 10080
	DefaultPasswordMinLength     = 8
	DefaultLogLevel              = "info"
)

type Config struct {
	Env                string
	Port               string
	DBURL              string
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessExpiryMin    int
	RefreshExpiryMin   int
	PasswordMinLength  int
	KafkaBrokers       []string
	LogLevel           string
}

// Load reads config/.env.dev or config/.env.prod depending on ENV, then the
// process environment. godotenv never overrides variables that are already
// set, so the environment always wins over the file.
func Load() *Config {
	env := getEnv("ENV", "development")

	suffix := "dev"
	if env == "production" {
		suffix = "prod"
	}

	envFile := filepath.Join("config", ".env."+suffix)
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("Notice: %s not found, using environment variables only", envFile)
	}

	return &Config{
		Env:                env,
		Port:               getEnv("PORT", DefaultPort),
		DBURL:              mustGetEnv("DB_URL"),
		AccessTokenSecret:  mustGetEnv("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: mustGetEnv("REFRESH_TOKEN_SECRET"),
		AccessExpiryMin:    getEnvAsInt("ACCESS_TOKEN_EXPIRY", DefaultAccessTokenExpiryMin),
		RefreshExpiryMin:   getEnvAsInt("REFRESH_TOKEN_EXPIRY", DefaultRefreshTokenExpiryMin),
		PasswordMinLength:  getEnvAsInt("PASSWORD_MIN_LENGTH", DefaultPasswordMinLength),
		KafkaBrokers:       getEnvAsList("KAFKA_BROKERS"),
		LogLevel:           getEnv("LOG_LEVEL", DefaultLogLevel),
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required config: %s", key)

	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}

	return val
}

func getEnvAsList(key string) []string {
	valStr := os.Getenv(key)
	if valStr == "" {
		return nil
	}

	parts := strings.Split(valStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
