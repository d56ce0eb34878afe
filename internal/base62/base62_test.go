package base62

import (
	"testing"

	"github.com/google/uuid"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	for i := 0; i < 50; i++ {
		id := uuid.Must(uuid.NewV7())
		encoded := EncodeUUID(id)
		decoded, err := DecodeUUID(encoded)
		if err != nil {
			t.Fatalf("DecodeUUID(%q) error: %v", encoded, err)
		}
		if decoded != id {
			t.Fatalf("round trip mismatch: %s != %s via %q", decoded, id, encoded)
		}
	}
}

func TestEncodeUUID_Zero(t *testing.T) {
	t.Parallel()

	if got := EncodeUUID(uuid.Nil); got != "0" {
		t.Fatalf("expected \"0\", got %q", got)
	}
	decoded, err := DecodeUUID("0")
	if err != nil || decoded != uuid.Nil {
		t.Fatalf("expected nil uuid, got %s, %v", decoded, err)
	}
}

func TestDecodeUUID_BadCharacter(t *testing.T) {
	t.Parallel()

	if _, err := DecodeUUID("abc-def"); err != ErrInvalidCharacter {
		t.Fatalf("expected ErrInvalidCharacter, got %v", err)
	}
	if _, err := DecodeUUID(""); err != ErrInvalidCharacter {
		t.Fatalf("expected ErrInvalidCharacter for empty input, got %v", err)
	}
}

func TestDecodeUUID_Overflow(t *testing.T) {
	t.Parallel()

	// 23 digits of z is far above 2^128-1
	if _, err := DecodeUUID("zzzzzzzzzzzzzzzzzzzzzzz"); err != ErrOverflow {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
}
