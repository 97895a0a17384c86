// Package validation checks sign-up and settings form fields locally
// before a request is issued. The backend revalidates everything; these
// checks only exist to surface obvious mistakes without a round trip.
package validation

import (
	"fmt"
	"regexp"
	"time"
)

// EmailPattern is a pragmatic email shape check, not an RFC parser.
var EmailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const (
	// MinNameLen minimum display name length
	MinNameLen = 3
	// MaxNameLen maximum display name length
	MaxNameLen = 64
	// MinPasswordLen minimum password length
	MinPasswordLen = 8
)

// ValidateName checks the display name length bounds.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if len(name) < MinNameLen {
		return fmt.Errorf("name must be at least %d characters long", MinNameLen)
	}
	if len(name) > MaxNameLen {
		return fmt.Errorf("name must not exceed %d characters", MaxNameLen)
	}
	return nil
}

// ValidateEmail checks that email looks like an address.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	if !EmailPattern.MatchString(email) {
		return fmt.Errorf("email is not a valid address")
	}
	return nil
}

// ValidatePassword checks the minimum password requirements.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}
	return nil
}

// ValidateGender checks the values the backend accepts.
func ValidateGender(gender string) error {
	switch gender {
	case "male", "female":
		return nil
	default:
		return fmt.Errorf("gender must be %q or %q", "male", "female")
	}
}

// ValidateDateOfBirth checks the MM/DD/YYYY format the backend expects
// and rejects dates in the future.
func ValidateDateOfBirth(dob string) error {
	if dob == "" {
		return fmt.Errorf("date of birth cannot be empty")
	}
	t, err := time.Parse("1/2/2006", dob)
	if err != nil {
		return fmt.Errorf("date of birth must be in MM/DD/YYYY format")
	}
	if t.After(time.Now()) {
		return fmt.Errorf("date of birth cannot be in the future")
	}
	return nil
}
