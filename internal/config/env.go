package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Duration wraps time.Duration for clearer type usage in Config.
type Duration = time.Duration

func envOrDefault(key, defaultValue string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val != "" {
		return val
	}
	return defaultValue
}

func durationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}

// optionalDurationEnv accepts zero ("0" or "0s") as a real value meaning "off".
func optionalDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}
	if raw == "0" {
		return 0, nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if parsed < 0 {
		return 0, fmt.Errorf("%s: must not be negative", key)
	}
	return parsed, nil
}

// signedIntEnv parses a possibly negative integer, rejecting garbage.
func signedIntEnv(key string, defaultValue int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return val, nil
}

func boolEnvOrDefault(key string, defaultValue bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	if raw == "1" || strings.EqualFold(raw, "true") || strings.EqualFold(raw, "yes") {
		return true
	}
	if raw == "0" || strings.EqualFold(raw, "false") || strings.EqualFold(raw, "no") {
		return false
	}
	return defaultValue
}

// listEnv splits a comma separated value, dropping blanks.
func listEnv(key, defaultValue string) []string {
	raw := os.Getenv(key)
	if strings.TrimSpace(raw) == "" {
		raw = defaultValue
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

var byteUnits = []struct {
	suffix string
	scale  int64
}{
	{"GB", 1 << 30},
	{"MB", 1 << 20},
	{"KB", 1 << 10},
	{"B", 1},
}

// bytesEnv reads sizes like "200MB", "512KB" or a plain byte count.
func bytesEnv(key string, defaultValue int64) (int64, error) {
	raw := strings.ToUpper(strings.TrimSpace(os.Getenv(key)))
	if raw == "" {
		return defaultValue, nil
	}
	scale := int64(1)
	for _, unit := range byteUnits {
		if num, ok := strings.CutSuffix(raw, unit.suffix); ok {
			raw, scale = strings.TrimSpace(num), unit.scale
			break
		}
	}
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || val <= 0 {
		return 0, fmt.Errorf("%s: invalid size %q", key, os.Getenv(key))
	}
	return val * scale, nil
}
