package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether email looks like local@domain.tld.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsNotEmpty reports whether value has any non-whitespace character.
func IsNotEmpty(value string) bool {
	return strings.TrimSpace(value) != ""
}

// IsFutureDate reports whether t is strictly after the current instant.
func IsFutureDate(t time.Time) bool {
	return t.After(time.Now())
}

// HasMinLength reports whether value has at least minLength characters.
func HasMinLength(value string, minLength int) bool {
	return utf8.RuneCountInString(value) >= minLength
}

// HasRequiredFields reports whether every entry in fields carries a value.
// nil, empty strings, nil pointers and zero times all count as missing.
func HasRequiredFields(fields map[string]interface{}) bool {
	for _, value := range fields {
		if isMissing(value) {
			return false
		}
	}
	return true
}

func isMissing(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case *string:
		return v == nil || *v == ""
	case time.Time:
		return v.IsZero()
	case *time.Time:
		return v == nil || v.IsZero()
	default:
		return false
	}
}
