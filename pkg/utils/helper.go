package utils

import (
	"strconv"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// ParseBool converts string to *bool, nil when empty or malformed
func ParseBool(value string) *bool {
	if value == "" {
		return nil
	}

	result, err := strconv.ParseBool(value)
	if err != nil {
		return nil
	}

	return &result
}
