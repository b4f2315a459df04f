package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

type EnvValue interface {
	string | int | bool
}

// GetEnv reads an environment variable typed as string, int or bool, falling
// back to defaultValue when the variable is unset or empty.
func GetEnv[T EnvValue](envVar string, defaultValue T) T {
	envValue, ok := os.LookupEnv(envVar)
	if !ok || envValue == "" {
		return defaultValue
	}
	parsed, err := parseEnv[T](envVar, envValue)
	if err != nil {
		log.Fatal(err)
	}
	return parsed
}

// GetRequiredEnv is GetEnv without a fallback: the process exits if the
// variable is unset.
func GetRequiredEnv[T EnvValue](envVar string) T {
	envValue, ok := os.LookupEnv(envVar)
	if !ok || envValue == "" {
		log.Fatalf("%s environment variable is required", envVar)
	}
	parsed, err := parseEnv[T](envVar, envValue)
	if err != nil {
		log.Fatal(err)
	}
	return parsed
}

func parseEnv[T EnvValue](envVar, envValue string) (T, error) {
	var zero T
	switch any(zero).(type) {
	case string:
		return any(envValue).(T), nil
	case int:
		intValue, err := strconv.Atoi(envValue)
		if err != nil {
			return zero, fmt.Errorf("environment variable %s: %q is not an integer", envVar, envValue)
		}
		return any(intValue).(T), nil
	case bool:
		boolValue, err := strconv.ParseBool(envValue)
		if err != nil {
			return zero, fmt.Errorf("environment variable %s: %q is not a boolean", envVar, envValue)
		}
		return any(boolValue).(T), nil
	}
	return zero, fmt.Errorf("environment variable %s: unsupported type", envVar)
}
