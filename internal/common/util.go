package common

import (
	"crypto/rand"
	"encoding/hex"
)

// MakeRandHexString returns a hex-encoded random string built from size
// random bytes.
func MakeRandHexString(size int) (string, error) {
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
