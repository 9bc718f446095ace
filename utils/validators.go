// File: /utils/validators.go
package utils

import (
	"regexp"
)

func IsValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

// IsValidAmount accepts a nil (not yet paid) or non-negative amount.
func IsValidAmount(amount *float64) bool {
	return amount == nil || *amount >= 0
}
