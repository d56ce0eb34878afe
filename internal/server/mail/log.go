package mail

import (
	"context"

	"github.com/adhalianna/trackers/internal/logging"
)

// LogSender writes confirmation codes to the server log instead of sending
// mail. Used when no SendGrid API key is configured.
type LogSender struct {
	logger logging.Logger
}

func NewLogSender(logger logging.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) SendConfirmationCode(ctx context.Context, email, code string) error {
	s.logger.Info(ctx, "confirmation code issued", "email", email, "code", code)
	return nil
}
