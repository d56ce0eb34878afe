package auth

import "errors"

// Verification errors returned by Codec.Decode. Callers match them with
// errors.Is; a failed decode never yields partial claims.
var (
	ErrBadSignature  = errors.New("token signature is invalid")
	ErrNoMatchingKey = errors.New("failed to find matching JWK")
	ErrBadIssuer     = errors.New("token issuer is not trusted")
	ErrBadAudience   = errors.New("token audience does not match")
	ErrExpired       = errors.New("token has expired")
	ErrMalformed     = errors.New("token is malformed")
)
