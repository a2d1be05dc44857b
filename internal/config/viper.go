// Package config provides Viper-backed configuration helpers shared by
// the CLI commands and the server.
package config

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	// Check OS env directly first
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	// If Viper doesn't have it but OS does, return OS value
	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// GetStringDefault returns the configured value for key, or fallback
// when neither Viper nor the environment has it set.
func GetStringDefault(key, fallback string) string {
	if v := GetString(key); v != "" {
		return v
	}
	return fallback
}

// GetDuration returns the configured duration for key, or fallback when
// the value is unset or does not parse.
func GetDuration(key string, fallback time.Duration) time.Duration {
	raw := GetString(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}

// GetBool returns the configured boolean for key. Viper handles the
// usual spellings (1, t, true, yes).
func GetBool(key string) bool {
	if viper.IsSet(key) {
		return viper.GetBool(key)
	}
	switch os.Getenv(key) {
	case "1", "t", "T", "true", "TRUE", "True", "yes", "YES":
		return true
	}
	return false
}
