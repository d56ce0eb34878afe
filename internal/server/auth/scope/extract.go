package scope

import "fmt"

// ExtractVariable finds the scope token belonging to the capability class and
// parses its variable into a typed value. The result is an authorization
// fact, e.g. "the caller is user X". A set holding more than one token for
// the class is rejected as malformed rather than guessed at; no token, or a
// variable that fails to parse, yields ErrInsufficientScope.
//
// The scope set is never mutated.
func ExtractVariable[V any](s Scope, c Capability[V]) (V, error) {
	var zero V

	name := c.CapabilityName()
	found := false
	var raw string
	for _, t := range s {
		variable, ok := t.Variable(name)
		if !ok {
			continue
		}
		if found {
			return zero, fmt.Errorf("%w: duplicate capability %q", ErrMalformedScope, name)
		}
		found = true
		raw = variable
	}
	if !found {
		return zero, ErrInsufficientScope
	}

	v, err := c.ParseVariable(raw)
	if err != nil {
		return zero, ErrInsufficientScope
	}
	return v, nil
}

// RequireForPath asserts that the scope set explicitly authorizes the exact
// path variable: the set must contain the token produced from the (already
// percent-decoded) path parameter. This lets a route gate on "the token names
// this precise path segment" without any store lookup.
func RequireForPath(s Scope, name, pathVariable string) error {
	expected, err := NewToken(name, pathVariable)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedScope, err)
	}
	if !s.Contains(expected) {
		return ErrInsufficientScope
	}
	return nil
}
