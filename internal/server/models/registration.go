package models

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/google/uuid"
)

// RegistrationRequest is a pending account registration awaiting email
// confirmation. The password is stored already hashed so the plaintext never
// outlives the initial request.
type RegistrationRequest struct {
	ID               uuid.UUID
	Email            string
	Password         []byte
	ConfirmationCode string
	IssuedAt         time.Time
	ValidUntil       time.Time
}

const (
	confirmationCodeCharset = "1234567890ABCDEFGHIJKLMNOPRSTUWXYZ@#$%&"
	confirmationCodeLength  = 9

	// ConfirmationCodeValidity bounds how long a registration request can
	// be confirmed after the code was mailed out.
	ConfirmationCodeValidity = 10 * time.Minute
)

// NewConfirmationCode generates a random confirmation code for a
// registration request.
func NewConfirmationCode() (string, error) {
	buf := make([]byte, confirmationCodeLength)
	max := big.NewInt(int64(len(confirmationCodeCharset)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = confirmationCodeCharset[n.Int64()]
	}
	return string(buf), nil
}
