package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/adhalianna/trackers/internal/server/auth/scope"
	"github.com/adhalianna/trackers/internal/server/config"
)

// Codec signs and verifies session tokens. All state is immutable after
// construction, so a single Codec is safe for concurrent use; signing and
// verification are pure CPU work with no I/O.
type Codec struct {
	secret   []byte
	keyID    string
	issuer   string
	audience string
}

func NewCodec(cfg *config.Config) *Codec {
	return &Codec{
		secret:   []byte(cfg.SecretKey),
		keyID:    cfg.KeyID,
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
	}
}

// Encode signs the claims with the configured key, stamping the key id into
// the token header.
func (c *Codec) Encode(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["kid"] = c.keyID

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}
	return signed, nil
}

// Issue builds and signs a fresh token: expiry now+lifetime, configured
// issuer and audience, a new UUIDv7 token id, and the supplied scope set.
// A lifetime that would overflow the expiry computation is a configuration
// error, not something to wrap around silently.
func (c *Codec) Issue(lifetime time.Duration, sc scope.Scope) (string, error) {
	if lifetime < 0 {
		return "", fmt.Errorf("negative token lifetime %v", lifetime)
	}
	now := time.Now()
	expiry := now.Add(lifetime)
	if expiry.Before(now) {
		return "", fmt.Errorf("token lifetime %v overflows expiry computation", lifetime)
	}

	claims := Claims{
		Expiry:   jwt.NewNumericDate(expiry),
		Issuer:   c.issuer,
		Audience: jwt.ClaimStrings{c.audience},
		TokenID:  uuid.Must(uuid.NewV7()),
		Scope:    sc,
	}
	return c.Encode(claims)
}

// Decode verifies a token string and returns its claims. Checks, in order:
// signature under the key named by the token's kid header (HS256 only;
// any other algorithm is a fatal mismatch, not a fallback), issuer equality,
// audience membership, expiry. Every failure maps onto one of the package's
// sentinel errors; there is no partial success.
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, c.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithAudience(c.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, verifyError(err)
	}

	if err := claims.Scope.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return claims, nil
}

func (c *Codec) keyFunc(token *jwt.Token) (any, error) {
	kid, _ := token.Header["kid"].(string)
	if kid != c.keyID {
		return nil, ErrNoMatchingKey
	}
	return c.secret, nil
}

// verifyError collapses the jwt library's error chain into our taxonomy.
func verifyError(err error) error {
	switch {
	case errors.Is(err, ErrNoMatchingKey):
		return ErrNoMatchingKey
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrBadSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return ErrBadIssuer
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return ErrBadAudience
	default:
		return ErrMalformed
	}
}
