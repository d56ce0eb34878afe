package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"valid", "hunter2!x", nil},
		{"too short", "a1!b2?c", ErrPasswordTooShort},
		{"no letter", "12345678!", ErrPasswordNoLetter},
		{"no digit", "abcdefgh!", ErrPasswordNoDigit},
		{"no special", "abcdefg1", ErrPasswordNoSpecial},
		{"control character", "abcd\tefg1!", ErrPasswordControlChars},
		{"special from full set", "abcdefg1=", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter2!x")
	require.NoError(t, err)

	assert.True(t, VerifyPassword(hash, "hunter2!x"))
	assert.False(t, VerifyPassword(hash, "hunter3!x"))
	assert.False(t, VerifyPassword(nil, "hunter2!x"))
}
