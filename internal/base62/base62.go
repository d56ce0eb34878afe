// Package base62 encodes 128-bit UUID values as compact base62 strings.
// The alphabet is 0-9A-Za-z, matching the common base62 convention where
// digits sort before upper case before lower case.
package base62

import (
	"errors"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// ErrInvalidCharacter is returned when a decoded string contains a character
// outside the base62 alphabet.
var ErrInvalidCharacter = errors.New("invalid base62 character")

// ErrOverflow is returned when a decoded value does not fit in 128 bits.
var ErrOverflow = errors.New("base62 value overflows 128 bits")

var base = big.NewInt(62)

// EncodeUUID returns the base62 representation of the UUID's 128-bit value.
// The zero UUID encodes as "0".
func EncodeUUID(id uuid.UUID) string {
	n := new(big.Int).SetBytes(id[:])
	if n.Sign() == 0 {
		return "0"
	}

	var sb []byte
	mod := new(big.Int)
	for n.Sign() > 0 {
		n.DivMod(n, base, mod)
		sb = append(sb, alphabet[mod.Int64()])
	}

	// digits were produced least significant first
	for i, j := 0, len(sb)-1; i < j; i, j = i+1, j-1 {
		sb[i], sb[j] = sb[j], sb[i]
	}
	return string(sb)
}

// DecodeUUID parses a base62 string back into a UUID. It fails on characters
// outside the alphabet, on empty input, and on values exceeding 128 bits.
func DecodeUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, ErrInvalidCharacter
	}

	n := new(big.Int)
	for _, r := range s {
		idx := strings.IndexRune(alphabet, r)
		if idx < 0 {
			return uuid.Nil, ErrInvalidCharacter
		}
		n.Mul(n, base)
		n.Add(n, big.NewInt(int64(idx)))
	}

	if n.BitLen() > 128 {
		return uuid.Nil, ErrOverflow
	}

	var id uuid.UUID
	n.FillBytes(id[:])
	return id, nil
}
