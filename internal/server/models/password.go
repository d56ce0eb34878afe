package models

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const passwordSpecialChars = "!?#$%^&*@-+="

var (
	ErrPasswordTooShort     = errors.New("password must be at least 8 characters long")
	ErrPasswordNoLetter     = errors.New("password must contain at least one letter")
	ErrPasswordNoDigit      = errors.New("password must contain at least one digit")
	ErrPasswordNoSpecial    = errors.New("password must contain at least one of !?#$%^&*@-+=")
	ErrPasswordControlChars = errors.New("password must not contain control characters")
)

// ValidatePassword enforces the account password rules on a plaintext
// candidate before it gets hashed.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrPasswordTooShort
	}
	var hasLetter, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsControl(r):
			return ErrPasswordControlChars
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSpecialChars, r):
			hasSpecial = true
		}
	}
	if !hasLetter {
		return ErrPasswordNoLetter
	}
	if !hasDigit {
		return ErrPasswordNoDigit
	}
	if !hasSpecial {
		return ErrPasswordNoSpecial
	}
	return nil
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// VerifyPassword reports whether the plaintext candidate matches the stored
// hash.
func VerifyPassword(hash []byte, password string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}
