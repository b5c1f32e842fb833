package mailx

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/mail.v2"
)

// Transport delivers a fully built Email. Implementations perform exactly
// one delivery attempt per call and do not retry.
type Transport interface {
	Name() string
	Send(ctx context.Context, email *Email) error
}

// Envelope is the SMTP-level sender and recipient list, independent of the
// message body.
type Envelope struct {
	From Address   `json:"from"`
	To   []Address `json:"to"`
}

// NewEnvelope builds an envelope with at least one recipient.
func NewEnvelope(from Address, to ...Address) (Envelope, error) {
	if len(to) == 0 {
		return Envelope{}, mailxErrors.New(ErrInvalidEnvelope).WithDetail("reason", "no recipients")
	}
	if from.IsZero() {
		return Envelope{}, mailxErrors.New(ErrInvalidEnvelope).WithDetail("reason", "no sender")
	}
	return Envelope{From: from, To: to}, nil
}

// Recipients returns the recipient addresses as strings.
func (e Envelope) Recipients() []string {
	out := make([]string, len(e.To))
	for i, a := range e.To {
		out[i] = a.String()
	}
	return out
}

// Email is one outbound message: envelope, timestamp and raw body.
type Email struct {
	ID       string
	Envelope Envelope
	Date     time.Time
	Subject  string
	Body     []byte
}

// NewEmail stamps a new message with a random ID.
func NewEmail(env Envelope, date time.Time, body []byte) *Email {
	return &Email{
		ID:       uuid.NewString(),
		Envelope: env,
		Date:     date,
		Body:     body,
	}
}

// MessageID returns the RFC 5322 Message-ID header value.
func (e *Email) MessageID() string {
	return "<" + e.ID + "@" + e.Envelope.From.Domain() + ">"
}

// DateHeader returns Date formatted per RFC 2822.
func (e *Email) DateHeader() string {
	return e.Date.Format(time.RFC1123Z)
}

// Message converts the email into a mail.v2 message with From, To, Date,
// Message-ID, an optional Subject and a UTF-8 text/plain body.
func (e *Email) Message() *mail.Message {
	m := mail.NewMessage()
	m.SetHeader("From", e.Envelope.From.String())
	m.SetHeader("To", e.Envelope.Recipients()...)
	m.SetDateHeader("Date", e.Date)
	m.SetHeader("Message-ID", e.MessageID())
	if e.Subject != "" {
		m.SetHeader("Subject", e.Subject)
	}
	m.SetBody("text/plain", string(e.Body))
	return m
}

// WriteTo writes the rendered RFC 5322 message to w.
func (e *Email) WriteTo(w io.Writer) (int64, error) {
	n, err := e.Message().WriteTo(w)
	if err != nil {
		return n, mailxErrors.NewWithCause(ErrRender, err).WithDetail("message_id", e.MessageID())
	}
	return n, nil
}

// Bytes renders the message into memory.
func (e *Email) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := e.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
