package mailxconsole

import (
	"context"
	"strings"

	"github.com/Abraxas-365/cheapalerts/pkg/logx"
	"github.com/Abraxas-365/cheapalerts/pkg/mailx"
)

// Transport prints emails through logx instead of delivering them. Intended
// for development, demos and tests.
type Transport struct {
	logger *logx.Logger
}

var _ mailx.Transport = (*Transport)(nil)

// Option configures a console transport.
type Option func(*Transport)

// WithLogger routes output to logger instead of the default logger.
func WithLogger(logger *logx.Logger) Option {
	return func(t *Transport) {
		t.logger = logger
	}
}

// New creates a console transport.
func New(opts ...Option) *Transport {
	t := &Transport{}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Name returns the transport name.
func (t *Transport) Name() string {
	return "console"
}

// Send logs the envelope and body at Info. It never fails.
func (t *Transport) Send(_ context.Context, email *mailx.Email) error {
	fields := logx.Fields{
		"from":       email.Envelope.From.String(),
		"to":         strings.Join(email.Envelope.Recipients(), ", "),
		"message_id": email.MessageID(),
		"body":       string(email.Body),
	}
	if email.Subject != "" {
		fields["subject"] = email.Subject
	}

	if t.logger != nil {
		t.logger.WithFields(fields).Info("mailx/console: email sent (dev mode)")
	} else {
		logx.WithFields(fields).Info("mailx/console: email sent (dev mode)")
	}

	return nil
}
