package users

import (
	"errors"
	"fmt"
	"regexp"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

func ValidateUsername(username string) error {
	if len(username) < 3 || len(username) > 30 {
		return errors.New("username must be between 3 and 30 characters")
	}
	if !usernameRegex.MatchString(username) {
		return errors.New("username can contain only letters, digits and underscores")
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	// bcrypt ignores everything beyond 72 bytes
	if len(password) > 72 {
		return errors.New("password must be at most 72 characters")
	}
	return nil
}

func ValidateProfileUpdate(fullName string, age *int, weight *float64) error {
	if len(fullName) > 100 {
		return errors.New("full name must be at most 100 characters")
	}
	if age != nil && (*age < 1 || *age > 150) {
		return fmt.Errorf("age out of range: %d", *age)
	}
	if weight != nil && (*weight <= 0 || *weight > 500) {
		return fmt.Errorf("weight out of range: %.1f", *weight)
	}
	return nil
}
