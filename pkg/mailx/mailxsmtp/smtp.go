package mailxsmtp

import (
	"context"
	"crypto/tls"
	"net"
	"strconv"
	"time"

	"github.com/Abraxas-365/cheapalerts/pkg/logx"
	"github.com/Abraxas-365/cheapalerts/pkg/mailx"
	"gopkg.in/mail.v2"
)

const (
	// LocalhostPort is the plain SMTP port used by NewUnencryptedLocalhost.
	LocalhostPort = 25
	// SubmissionPort is the message submission port used by NewSimple.
	SubmissionPort = 587
	// DefaultTimeout bounds dialing and each SMTP command.
	DefaultTimeout = 10 * time.Second
)

// Transport sends through an SMTP server using a mail.v2 dialer. One
// connection is opened per send.
type Transport struct {
	dialer *mail.Dialer
}

var _ mailx.Transport = (*Transport)(nil)

// Option tweaks the dialer built by New and NewSimple.
type Option func(*mail.Dialer)

// WithCredentials enables SMTP AUTH.
func WithCredentials(username, password string) Option {
	return func(d *mail.Dialer) {
		d.Username = username
		d.Password = password
	}
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(timeout time.Duration) Option {
	return func(d *mail.Dialer) {
		if timeout > 0 {
			d.Timeout = timeout
		}
	}
}

// WithLocalName sets the name announced in EHLO.
func WithLocalName(name string) Option {
	return func(d *mail.Dialer) {
		d.LocalName = name
	}
}

// New connects to an explicit host:port under the given security policy.
func New(addr string, security Security, opts ...Option) (*Transport, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, smtpErrors.NewWithCause(ErrAddress, err).WithDetail("address", addr)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 || port > 65535 {
		return nil, smtpErrors.New(ErrAddress).WithDetail("address", addr)
	}
	if host == "" {
		return nil, smtpErrors.New(ErrAddress).WithDetail("address", addr).WithDetail("reason", "empty host")
	}

	d := mail.NewDialer(host, port, "", "")
	d.Timeout = DefaultTimeout
	security.apply(d)
	for _, o := range opts {
		o(d)
	}

	return &Transport{dialer: d}, nil
}

// NewUnencryptedLocalhost talks plain SMTP to localhost:25. Local testing only.
func NewUnencryptedLocalhost(opts ...Option) *Transport {
	d := mail.NewDialer("localhost", LocalhostPort, "", "")
	d.Timeout = DefaultTimeout
	None().apply(d)
	for _, o := range opts {
		o(d)
	}
	return &Transport{dialer: d}
}

// NewSimple submits to domain on the submission port and requires STARTTLS,
// verifying the certificate against domain.
func NewSimple(domain string, opts ...Option) (*Transport, error) {
	if domain == "" {
		return nil, smtpErrors.New(ErrAddress).WithDetail("reason", "empty domain")
	}
	return New(net.JoinHostPort(domain, strconv.Itoa(SubmissionPort)),
		Required(&tls.Config{ServerName: domain, MinVersion: tls.VersionTLS12}),
		opts...)
}

// FromDialer wraps a caller-built dialer as is.
func FromDialer(d *mail.Dialer) *Transport {
	return &Transport{dialer: d}
}

// Name returns the transport name.
func (t *Transport) Name() string {
	return "smtp"
}

// Addr returns host:port of the server.
func (t *Transport) Addr() string {
	return net.JoinHostPort(t.dialer.Host, strconv.Itoa(t.dialer.Port))
}

// Dialer returns the underlying dialer.
func (t *Transport) Dialer() *mail.Dialer {
	return t.dialer
}

// Send dials, delivers the message and closes the connection. mail.v2 has no
// context support, so ctx is only checked before dialing.
func (t *Transport) Send(ctx context.Context, email *mailx.Email) error {
	if err := ctx.Err(); err != nil {
		return smtpErrors.NewWithCause(ErrConnect, err).WithDetail("server", t.Addr())
	}

	sc, err := t.dialer.Dial()
	if err != nil {
		return smtpErrors.NewWithCause(ErrConnect, err).WithDetail("server", t.Addr())
	}

	if err := mail.Send(sc, email.Message()); err != nil {
		_ = sc.Close()
		return smtpErrors.NewWithCause(ErrSend, err).
			WithDetail("server", t.Addr()).
			WithDetail("to", email.Envelope.Recipients())
	}

	if err := sc.Close(); err != nil {
		logx.WithError(err).WithField("server", t.Addr()).Warn("mailx/smtp: error closing connection")
	}

	logx.WithFields(logx.Fields{
		"server":     t.Addr(),
		"message_id": email.MessageID(),
	}).Debug("mailx/smtp: message sent")

	return nil
}
