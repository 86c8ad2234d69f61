package utils

import (
	"os"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GetEnvVariable reads an environment variable with a fallback default.
func GetEnvVariable(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func ParseFloatToDecimal(number *float64) *decimal.Decimal {
	if number == nil {
		return nil
	}
	d := decimal.NewFromFloat(*number)
	return &d
}

// ParseStringToUUID parses s, returning uuid.Nil on any error.
func ParseStringToUUID(s string) uuid.UUID {
	uid, err := uuid.Parse(s)
	if err != nil || s == "" {
		return uuid.Nil
	}
	return uid
}

var (
	slugInvalid = regexp.MustCompile("[^a-z0-9-]+")
	slugDashes  = regexp.MustCompile("-+")
)

// Slugify generates a URL-safe handle from a display name,
// e.g. "Flow & Grind Studio" -> "flow-grind-studio".
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, " ", "-")
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
