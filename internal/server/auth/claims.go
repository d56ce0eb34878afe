// Package auth implements the signed session token: building and signing
// claims, and verifying tokens presented by callers. Signing is HS256 only;
// a token that names any other algorithm is rejected outright.
package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/adhalianna/trackers/internal/server/auth/scope"
)

// Claims is the payload of a session token. Instances are immutable once
// issued; only the serialized, signed form is ever persisted (inside a
// session row).
type Claims struct {
	Expiry   *jwt.NumericDate `json:"exp"`
	Issuer   string           `json:"iss"`
	Audience jwt.ClaimStrings `json:"aud"`
	TokenID  uuid.UUID        `json:"jti"`
	Scope    scope.Scope      `json:"scope"`
}

// The jwt.Claims interface; exp/iss/aud are validated by the parser, the
// rest are absent from our tokens.

func (c Claims) GetExpirationTime() (*jwt.NumericDate, error) { return c.Expiry, nil }
func (c Claims) GetIssuedAt() (*jwt.NumericDate, error)       { return nil, nil }
func (c Claims) GetNotBefore() (*jwt.NumericDate, error)      { return nil, nil }
func (c Claims) GetIssuer() (string, error)                   { return c.Issuer, nil }
func (c Claims) GetSubject() (string, error)                  { return "", nil }
func (c Claims) GetAudience() (jwt.ClaimStrings, error)       { return c.Audience, nil }
