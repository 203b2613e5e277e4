package util

import (
	"os"
	"strings"
)

// getEnv returns the trimmed value of key, or fallback when it is unset or blank
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	return fallback
}
