package validator

import (
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
)

// IsValidEmail checks if the email format is valid
func IsValidEmail(email string) bool {
	if strings.TrimSpace(email) == "" {
		return false
	}
	return emailRegex.MatchString(email)
}

// IsValidPhone checks if the phone number is in E.164-ish format
func IsValidPhone(phone string) bool {
	if strings.TrimSpace(phone) == "" {
		return false
	}
	return phoneRegex.MatchString(phone)
}

// IsValidName checks if the name contains only letters, spaces, and common punctuation
func IsValidName(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	nameRegex := regexp.MustCompile(`^[a-zA-Z\s\-'\.]+$`)
	return nameRegex.MatchString(name) && len(name) >= 2
}
