// Package scope implements the capability scope language used inside session
// tokens. A scope is a set of tokens of the form "name:variable", where the
// name identifies a capability class and the variable is a value encoded in a
// class-specific way. The package also provides the request-time extractors
// that turn scope tokens into typed authorization facts.
package scope

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Extraction errors. ErrInsufficientScope covers both a missing capability
// and a variable that fails to parse; the two cases are deliberately not
// distinguishable by callers.
var (
	ErrInsufficientScope = errors.New("insufficient scope")
	ErrMalformedScope    = errors.New("malformed scope set")
)

// Token is a single capability token, e.g. "user_resources:3k9XzQ".
type Token string

// NewToken builds a token from a capability name and an already-encoded
// variable. The name must not contain the separator character.
func NewToken(name, variable string) (Token, error) {
	if strings.Contains(name, ":") {
		return "", fmt.Errorf("capability name %q contains separator", name)
	}
	return Token(name + ":" + variable), nil
}

// Variable returns the part after "name:" if the token belongs to the named
// capability class, and reports whether it matched.
func (t Token) Variable(name string) (string, bool) {
	return strings.CutPrefix(string(t), name+":")
}

// Name returns the capability class name of the token (the part before the
// first separator). Tokens without a separator are their own name.
func (t Token) Name() string {
	name, _, _ := strings.Cut(string(t), ":")
	return name
}

// Scope is a set of capability tokens. Order is irrelevant. On the wire the
// set is a single space-delimited string claim.
type Scope []Token

// And returns a new scope extended with the given token.
func (s Scope) And(t Token) Scope {
	out := make(Scope, 0, len(s)+1)
	out = append(out, s...)
	return append(out, t)
}

// Contains reports whether the exact token is present in the set.
func (s Scope) Contains(t Token) bool {
	for _, held := range s {
		if held == t {
			return true
		}
	}
	return false
}

// Validate rejects scope sets carrying more than one token per capability
// name. Normal issuance never produces duplicates, so their presence means
// the token cannot be trusted to express intent.
func (s Scope) Validate() error {
	seen := make(map[string]struct{}, len(s))
	for _, t := range s {
		name := t.Name()
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: duplicate capability %q", ErrMalformedScope, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

func (s Scope) String() string {
	parts := make([]string, len(s))
	for i, t := range s {
		parts[i] = string(t)
	}
	return strings.Join(parts, " ")
}

func (s Scope) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Scope) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = nil
	for _, part := range strings.Fields(raw) {
		*s = append(*s, Token(part))
	}
	return nil
}
