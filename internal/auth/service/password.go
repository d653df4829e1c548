package service

import (
	"fmt"
	"unicode"
)

// PasswordPolicy is the pluggable strength check applied on registration.
type PasswordPolicy func(password string) error

// MinLengthPolicy rejects passwords shorter than min runes or made up
// entirely of digits.
func MinLengthPolicy(min int) PasswordPolicy {
	return func(password string) error {
		if len([]rune(password)) < min {
			return fmt.Errorf("This password is too short. It must contain at least %d characters.", min)
		}

		numeric := true
		for _, r := range password {
			if !unicode.IsDigit(r) {
				numeric = false
				break
			}
		}
		if numeric {
			return fmt.Errorf("This password is entirely numeric.")
		}

		return nil
	}
}
