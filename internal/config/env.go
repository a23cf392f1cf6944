package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Goofygiraffe06/parewa/internal/logging"
	"github.com/joho/godotenv"
)

func init() {
	start := time.Now()
	logging.DebugLog("Environment configuration loading started")

	if err := godotenv.Load(); err != nil {
		logging.WarnLog("Environment configuration: no .env file found, using system environment variables")
	} else {
		logging.InfoLog("Environment configuration: .env file loaded successfully")
	}

	logging.InfoLog("Environment configuration loading completed %v", time.Since(start))
}

// MustGetEnv returns the value of the environment variable or panics if it's not set.
func MustGetEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		logging.ErrorLog("Environment configuration failed: missing required variable %s", key)
		panic("config: missing required environment variable: " + key)
	}
	return v
}

// GetEnv returns the value of the environment variable or a default if it's not set.
func GetEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		logging.DebugLog("Environment variable found: %s", key)
		return val
	}
	logging.DebugLog("Environment variable not found, using fallback: %s", key)
	return fallback
}

// MustParseDuration retrieves a duration from env or uses fallback, panics if invalid.
func MustParseDuration(key, fallback string) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		val = fallback
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		logging.ErrorLog("Duration parsing failed: %s = %s, error: %v", key, val, err)
		panic("config: invalid duration in " + key + ": " + err.Error())
	}

	logging.DebugLog("Duration parsed: %s = %v", key, d)
	return d
}

func parseIntEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil || i <= 0 {
		return def
	}
	return i
}

func parseBoolEnv(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		logging.WarnLog("Environment variable %s is not a boolean (%q), using %v", key, v, def)
		return def
	}
	return b
}

// parseListEnv splits a comma separated variable, dropping empty entries.
func parseListEnv(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
