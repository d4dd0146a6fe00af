package notify

import (
	"context"
	"fmt"

	"github.com/folioworks/folio-api/internal/config"
	"github.com/folioworks/folio-api/internal/contact"
	"github.com/folioworks/folio-api/pkg/apperror"
	"github.com/go-resty/resty/v2"
)

const emailName = "email"

// EmailWebhook posts a plain-text summary to an email relay webhook.
type EmailWebhook struct {
	client *resty.Client
	cfg    config.EmailConfig
}

func NewEmailWebhook(cfg config.EmailConfig) *EmailWebhook {
	return &EmailWebhook{client: resty.New(), cfg: cfg}
}

func (e *EmailWebhook) Name() string { return emailName }

func (e *EmailWebhook) Enabled() bool {
	return e.cfg.Enabled && e.cfg.WebhookURL != ""
}

type emailPayload struct {
	Subject string `json:"subject"`
	To      string `json:"to"`
	Text    string `json:"text"`
}

func (e *EmailWebhook) Send(ctx context.Context, l contact.Lead) error {
	resp, err := e.client.R().
		SetContext(ctx).
		SetBody(emailPayload{
			Subject: "New Portfolio Lead",
			To:      e.cfg.To,
			Text: fmt.Sprintf("New lead from contact form\n\nName: %s\nEmail: %s\nMobile: %s\nMessage: %s",
				l.Name, l.Email, l.Mobile, l.Message),
		}).
		Post(e.cfg.WebhookURL)
	if err != nil {
		return apperror.NewNotifier(emailName, err)
	}
	if resp.IsError() {
		return apperror.NewNotifier(emailName, fmt.Errorf("webhook returned %s", resp.Status()))
	}
	return nil
}
