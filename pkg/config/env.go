package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// LoadEnv loads .env from the working directory when one exists.
// Variables already set in the process environment win.
func LoadEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("Failed to load .env: %v", err)
	}
}

func GetEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func GetEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func GetEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func GetEnvFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return v
}

func GetEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

const devJWTSecret = "shoguntrade-dev-secret"

// JWTSecret returns the HS256 signing key.
func JWTSecret() []byte {
	return []byte(GetEnv("JWT_SECRET", devJWTSecret))
}

// JWTSecretIsDefault reports whether the built-in development key is in use.
func JWTSecretIsDefault() bool {
	return GetEnv("JWT_SECRET", "") == ""
}

// JWTTTL returns the lifetime of issued tokens, 7 days by default.
func JWTTTL() time.Duration {
	return GetEnvDuration("JWT_TTL", 7*24*time.Hour)
}
