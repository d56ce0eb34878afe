// Package mail sends transactional email. The production implementation
// talks to the SendGrid v3 REST API; a log-based sender covers local
// development where no API key is configured.
package mail

import "context"

// Sender delivers a registration confirmation code to the given address.
type Sender interface {
	SendConfirmationCode(ctx context.Context, email, code string) error
}
