package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/adhalianna/trackers/internal/server/auth/scope"
	"github.com/adhalianna/trackers/internal/server/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return cfg
}

func TestIssueAndDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	codec := NewCodec(testConfig())
	userID := uuid.Must(uuid.NewV7())
	sc := scope.Scope{}.And(scope.Produce(scope.UserResources{}, userID))

	tok, err := codec.Issue(30*time.Minute, sc)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := codec.Decode(tok)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if claims.Issuer != "authority" {
		t.Fatalf("unexpected issuer %q", claims.Issuer)
	}
	if len(claims.Audience) != 1 || claims.Audience[0] != "my_api" {
		t.Fatalf("unexpected audience %v", claims.Audience)
	}
	if claims.TokenID == uuid.Nil {
		t.Fatalf("expected a fresh token id")
	}
	if len(claims.Scope) != 1 || claims.Scope[0] != sc[0] {
		t.Fatalf("scope mismatch: %v != %v", claims.Scope, sc)
	}

	got, err := scope.ExtractVariable(claims.Scope, scope.UserResources{})
	if err != nil || got != userID {
		t.Fatalf("extracted %s, %v; want %s", got, err, userID)
	}
}

func TestDecode_Expired(t *testing.T) {
	t.Parallel()

	codec := NewCodec(testConfig())

	claims := Claims{
		Expiry:   jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		Issuer:   "authority",
		Audience: jwt.ClaimStrings{"my_api"},
		TokenID:  uuid.Must(uuid.NewV7()),
	}
	tok, err := codec.Encode(claims)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	_, err = codec.Decode(tok)
	if !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestDecode_WrongKeyID(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	codec := NewCodec(cfg)

	other := testConfig()
	other.KeyID = "another key"
	otherCodec := NewCodec(other)

	tok, err := otherCodec.Issue(time.Hour, nil)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = codec.Decode(tok)
	if !errors.Is(err, ErrNoMatchingKey) {
		t.Fatalf("expected ErrNoMatchingKey, got %v", err)
	}
}

func TestDecode_WrongSecret(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	codec := NewCodec(cfg)

	forged := testConfig()
	forged.SecretKey = "other-secret"
	forgedCodec := NewCodec(forged)

	tok, err := forgedCodec.Issue(time.Hour, nil)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = codec.Decode(tok)
	if !errors.Is(err, ErrBadSignature) {
		t.Fatalf("expected ErrBadSignature, got %v", err)
	}
}

func TestDecode_WrongIssuerAndAudience(t *testing.T) {
	t.Parallel()

	codec := NewCodec(testConfig())

	badIssuer := testConfig()
	badIssuer.Issuer = "someone else"
	tok, err := NewCodec(badIssuer).Issue(time.Hour, nil)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if _, err := codec.Decode(tok); !errors.Is(err, ErrBadIssuer) {
		t.Fatalf("expected ErrBadIssuer, got %v", err)
	}

	badAudience := testConfig()
	badAudience.Audience = "other_api"
	tok, err = NewCodec(badAudience).Issue(time.Hour, nil)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if _, err := codec.Decode(tok); !errors.Is(err, ErrBadAudience) {
		t.Fatalf("expected ErrBadAudience, got %v", err)
	}
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	codec := NewCodec(testConfig())

	if _, err := codec.Decode("not.a.jwt"); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestDecode_DuplicateScopeNames(t *testing.T) {
	t.Parallel()

	codec := NewCodec(testConfig())

	sc := scope.Scope{scope.Token("user_resources:1"), scope.Token("user_resources:2")}
	claims := Claims{
		Expiry:   jwt.NewNumericDate(time.Now().Add(time.Hour)),
		Issuer:   "authority",
		Audience: jwt.ClaimStrings{"my_api"},
		TokenID:  uuid.Must(uuid.NewV7()),
		Scope:    sc,
	}
	tok, err := codec.Encode(claims)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	if _, err := codec.Decode(tok); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed for duplicate scope names, got %v", err)
	}
}

func TestIssue_NegativeLifetimeRejected(t *testing.T) {
	t.Parallel()

	codec := NewCodec(testConfig())
	if _, err := codec.Issue(-time.Hour, nil); err == nil {
		t.Fatalf("expected error for negative lifetime")
	}
}

func TestIssue_ScenarioExactScope(t *testing.T) {
	t.Parallel()

	// Issue a 1800 s token carrying one user_resources capability and assert
	// that the decoded scope holds exactly that token and nothing else.
	codec := NewCodec(testConfig())
	userID := uuid.MustParse("00000000-0000-0000-0000-00000000002a") // 42
	sc := scope.Scope{}.And(scope.Produce(scope.UserResources{}, userID))

	tok, err := codec.Issue(1800*time.Second, sc)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	claims, err := codec.Decode(tok)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if len(claims.Scope) != 1 {
		t.Fatalf("expected exactly one scope token, got %v", claims.Scope)
	}
	if claims.Scope[0] != scope.Token("user_resources:g") {
		t.Fatalf("unexpected scope token %q", claims.Scope[0])
	}
}
