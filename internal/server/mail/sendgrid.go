package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/adhalianna/trackers/internal/server/config"
)

const sendgridSendURL = "https://api.sendgrid.com/v3/mail/send"

// SendgridSender delivers confirmation codes through a SendGrid dynamic
// template. The template receives the code as the "confirmation_code"
// substitution.
type SendgridSender struct {
	apiKey     string
	templateID string
	sender     string
	sendURL    string
	client     *http.Client
}

func NewSendgridSender(cfg *config.Config) *SendgridSender {
	return &SendgridSender{
		apiKey:     cfg.SendgridAPIKey,
		templateID: cfg.SendgridTemplateID,
		sender:     cfg.SendgridSender,
		sendURL:    sendgridSendURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

type sendgridAddress struct {
	Email string `json:"email"`
}

type sendgridPersonalization struct {
	To           []sendgridAddress `json:"to"`
	TemplateData map[string]string `json:"dynamic_template_data"`
}

type sendgridMessage struct {
	Personalizations []sendgridPersonalization `json:"personalizations"`
	From             sendgridAddress           `json:"from"`
	TemplateID       string                    `json:"template_id"`
}

func (s *SendgridSender) SendConfirmationCode(ctx context.Context, email, code string) error {
	msg := sendgridMessage{
		Personalizations: []sendgridPersonalization{{
			To:           []sendgridAddress{{Email: email}},
			TemplateData: map[string]string{"confirmation_code": code},
		}},
		From:       sendgridAddress{Email: s.sender},
		TemplateID: s.templateID,
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("error encoding mail: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.sendURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("error building mail request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending mail: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("sendgrid returned %d: %s", resp.StatusCode, detail)
	}

	return nil
}
