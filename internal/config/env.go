package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

var errNotPositive = errors.New("must be positive")

// EnvBool reads a boolean environment variable. Unset or empty means
// fallback; an unparsable value logs a warning and also means fallback.
func EnvBool(key string, fallback bool) bool {
	return envValue(key, fallback, strconv.ParseBool)
}

// EnvSize reads a positive byte count.
func EnvSize(key string, fallback int64) int64 {
	return envValue(key, fallback, func(v string) (int64, error) {
		n, err := strconv.ParseInt(v, 10, 64)
		if err == nil && n <= 0 {
			err = errNotPositive
		}
		return n, err
	})
}

// EnvDuration reads a positive duration such as "45s".
func EnvDuration(key string, fallback time.Duration) time.Duration {
	return envValue(key, fallback, func(v string) (time.Duration, error) {
		d, err := time.ParseDuration(v)
		if err == nil && d <= 0 {
			err = errNotPositive
		}
		return d, err
	})
}

func envString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envValue[T any](key string, fallback T, parse func(string) (T, error)) T {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	parsed, err := parse(v)
	if err != nil {
		slog.Warn("invalid env var, using default", "key", key, "value", v, "default", fallback, "error", err) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return parsed
}
