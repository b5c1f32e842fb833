package mailxresend

import (
	"context"

	"github.com/Abraxas-365/cheapalerts/pkg/logx"
	"github.com/Abraxas-365/cheapalerts/pkg/mailx"
	"github.com/resend/resend-go/v2"
)

// DefaultSubject is sent when the email has none; the Resend API rejects an
// empty subject.
const DefaultSubject = "Notification"

// API is the part of resend.EmailsSvc this transport calls.
type API interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Transport sends through the Resend HTTP API.
type Transport struct {
	emails API
}

var _ mailx.Transport = (*Transport)(nil)

// New creates a Resend transport authenticated with apiKey.
func New(apiKey string) (*Transport, error) {
	if apiKey == "" {
		return nil, resendErrors.New(ErrMissingAPIKey)
	}
	return &Transport{emails: resend.NewClient(apiKey).Emails}, nil
}

// NewWithAPI wraps an existing emails service, e.g. client.Emails.
func NewWithAPI(emails API) *Transport {
	return &Transport{emails: emails}
}

// Name returns the transport name.
func (t *Transport) Name() string {
	return "resend"
}

// Send submits the email as plain text. Message-ID and Date travel as
// custom headers; Resend generates its own envelope.
func (t *Transport) Send(ctx context.Context, email *mailx.Email) error {
	subject := email.Subject
	if subject == "" {
		subject = DefaultSubject
	}

	params := &resend.SendEmailRequest{
		From:    email.Envelope.From.String(),
		To:      email.Envelope.Recipients(),
		Subject: subject,
		Text:    string(email.Body),
		Headers: map[string]string{
			"Message-ID": email.MessageID(),
			"Date":       email.DateHeader(),
		},
	}

	sent, err := t.emails.SendWithContext(ctx, params)
	if err != nil {
		return resendErrors.NewWithCause(ErrSendFailed, err).
			WithDetail("to", email.Envelope.Recipients())
	}

	logx.WithFields(logx.Fields{
		"resend_id": sent.Id,
		"to":        email.Envelope.Recipients(),
	}).Debug("mailx/resend: message sent")

	return nil
}
