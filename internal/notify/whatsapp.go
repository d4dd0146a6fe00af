package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/folioworks/folio-api/internal/config"
	"github.com/folioworks/folio-api/internal/contact"
	"github.com/folioworks/folio-api/pkg/apperror"
	"github.com/go-resty/resty/v2"
)

const whatsAppName = "whatsapp"

// WhatsApp sends leads through the Twilio Messages API.
type WhatsApp struct {
	client *resty.Client
	cfg    config.TwilioConfig
}

func NewWhatsApp(cfg config.TwilioConfig) *WhatsApp {
	c := resty.New().
		SetBaseURL(cfg.APIURL).
		SetBasicAuth(cfg.AccountSID, cfg.AuthToken).
		SetHeader("Accept", "application/json")
	return &WhatsApp{client: c, cfg: cfg}
}

func (w *WhatsApp) Name() string { return whatsAppName }

// Enabled is true only when both the account SID and auth token are set.
func (w *WhatsApp) Enabled() bool {
	return w.cfg.AccountSID != "" && w.cfg.AuthToken != ""
}

type twilioMessage struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

type twilioError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (w *WhatsApp) Send(ctx context.Context, l contact.Lead) error {
	var ok twilioMessage
	var fail twilioError
	resp, err := w.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"From": w.cfg.WhatsAppFrom,
			"To":   w.cfg.WhatsAppTo,
			"Body": LeadMessage(l),
		}).
		SetResult(&ok).
		SetError(&fail).
		Post(fmt.Sprintf("/2010-04-01/Accounts/%s/Messages.json", w.cfg.AccountSID))
	if err != nil {
		return apperror.NewNotifier(whatsAppName, err)
	}
	if resp.IsError() {
		msg := fail.Message
		if msg == "" {
			msg = resp.Status()
		}
		return apperror.NewNotifier(whatsAppName, fmt.Errorf("twilio %d: %s", resp.StatusCode(), msg))
	}
	return nil
}

// LeadMessage renders the chat message for a lead.
func LeadMessage(l contact.Lead) string {
	msg := l.Message
	if strings.TrimSpace(msg) == "" {
		msg = "No message provided"
	}
	var b strings.Builder
	b.WriteString("*New Portfolio Lead!*\n\n")
	fmt.Fprintf(&b, "*Name:* %s\n", l.Name)
	fmt.Fprintf(&b, "*Email:* %s\n", l.Email)
	fmt.Fprintf(&b, "*Mobile:* %s\n", l.Mobile)
	fmt.Fprintf(&b, "*Message:* %s\n\n", msg)
	fmt.Fprintf(&b, "*Time:* %s\n", l.CreatedAt.UTC().Format("2006-01-02 15:04:05 MST"))
	b.WriteString("*Source:* Portfolio Contact Form\n\n")
	b.WriteString("Reply to this message to start a conversation!")
	return b.String()
}
