package smsx

import (
	"time"

	"github.com/Abraxas-365/cheapalerts/pkg/fsx"
	"github.com/Abraxas-365/cheapalerts/pkg/logx"
	"github.com/Abraxas-365/cheapalerts/pkg/mailx"
	"github.com/Abraxas-365/cheapalerts/pkg/mailx/mailxconsole"
	"github.com/Abraxas-365/cheapalerts/pkg/mailx/mailxfile"
	"github.com/Abraxas-365/cheapalerts/pkg/mailx/mailxresend"
	"github.com/Abraxas-365/cheapalerts/pkg/mailx/mailxsendmail"
	"github.com/Abraxas-365/cheapalerts/pkg/mailx/mailxses"
	"github.com/Abraxas-365/cheapalerts/pkg/mailx/mailxsmtp"
	"gopkg.in/mail.v2"
)

// Builder collects sender settings and finishes with exactly one backend
// selection call, which returns the Sender.
//
// The from address is validated when it is set but an invalid value is
// dropped silently; the mistake surfaces as ErrMissingEmail from whichever
// backend call comes next. Every backend call checks the address before
// touching its backend.
type Builder struct {
	from    mailx.Address
	subject string
	now     func() time.Time
}

// NewBuilder starts a sender configuration.
func NewBuilder() *Builder {
	return &Builder{now: time.Now}
}

// Address sets the from address if it parses. Invalid input leaves the
// previous value in place.
func (b *Builder) Address(from string) *Builder {
	addr, err := mailx.ParseAddress(from)
	if err != nil {
		logx.WithError(err).WithField("from", from).Debug("smsx: ignoring invalid from address")
		return b
	}
	b.from = addr
	return b
}

// Subject sets an optional Subject header. Most gateways show it before the
// body, so the default is none.
func (b *Builder) Subject(subject string) *Builder {
	b.subject = subject
	return b
}

// Clock overrides the time source used to date messages.
func (b *Builder) Clock(now func() time.Time) *Builder {
	if now != nil {
		b.now = now
	}
	return b
}

// Ready returns ErrMissingEmail if no valid from address has been set. Every
// backend call performs the same check first.
func (b *Builder) Ready() error {
	if b.from.IsZero() {
		return smsxErrors.New(ErrMissingEmail)
	}
	return nil
}

func (b *Builder) finish(t mailx.Transport) *Sender {
	return &Sender{
		from:      b.from,
		subject:   b.subject,
		transport: t,
		now:       b.now,
	}
}

// File writes each message as a JSON record into the directory at path.
func (b *Builder) File(path string) (*Sender, error) {
	if err := b.Ready(); err != nil {
		return nil, err
	}
	t, err := mailxfile.NewLocal(path)
	if err != nil {
		return nil, err
	}
	return b.finish(t), nil
}

// FileSystem writes JSON records through any fsx writer, e.g. an S3 bucket.
func (b *Builder) FileSystem(fs fsx.FileWriter) (*Sender, error) {
	if err := b.Ready(); err != nil {
		return nil, err
	}
	return b.finish(mailxfile.New(fs)), nil
}

// Sendmail pipes each message to the local sendmail command.
func (b *Builder) Sendmail(opts ...mailxsendmail.Option) (*Sender, error) {
	if err := b.Ready(); err != nil {
		return nil, err
	}
	return b.finish(mailxsendmail.New(opts...)), nil
}

// SMTPUnencryptedLocalhost talks plain SMTP to localhost:25.
func (b *Builder) SMTPUnencryptedLocalhost(opts ...mailxsmtp.Option) (*Sender, error) {
	if err := b.Ready(); err != nil {
		return nil, err
	}
	return b.finish(mailxsmtp.NewUnencryptedLocalhost(opts...)), nil
}

// SMTPSimple submits to domain:587 with STARTTLS required.
func (b *Builder) SMTPSimple(domain string, opts ...mailxsmtp.Option) (*Sender, error) {
	if err := b.Ready(); err != nil {
		return nil, err
	}
	t, err := mailxsmtp.NewSimple(domain, opts...)
	if err != nil {
		return nil, err
	}
	return b.finish(t), nil
}

// SMTPFull connects to addr (host:port) under the given security policy.
func (b *Builder) SMTPFull(addr string, security mailxsmtp.Security, opts ...mailxsmtp.Option) (*Sender, error) {
	if err := b.Ready(); err != nil {
		return nil, err
	}
	t, err := mailxsmtp.New(addr, security, opts...)
	if err != nil {
		return nil, err
	}
	return b.finish(t), nil
}

// SMTP uses a dialer the caller configured completely.
func (b *Builder) SMTP(dialer *mail.Dialer) (*Sender, error) {
	if err := b.Ready(); err != nil {
		return nil, err
	}
	return b.finish(mailxsmtp.FromDialer(dialer)), nil
}

// Console logs messages instead of sending them.
func (b *Builder) Console(opts ...mailxconsole.Option) (*Sender, error) {
	if err := b.Ready(); err != nil {
		return nil, err
	}
	return b.finish(mailxconsole.New(opts...)), nil
}

// SES sends raw messages through Amazon SES.
func (b *Builder) SES(client mailxses.API) (*Sender, error) {
	if err := b.Ready(); err != nil {
		return nil, err
	}
	return b.finish(mailxses.New(client)), nil
}

// Resend sends through the Resend API.
func (b *Builder) Resend(apiKey string) (*Sender, error) {
	if err := b.Ready(); err != nil {
		return nil, err
	}
	t, err := mailxresend.New(apiKey)
	if err != nil {
		return nil, err
	}
	return b.finish(t), nil
}

// Transport uses any mailx.Transport.
func (b *Builder) Transport(t mailx.Transport) (*Sender, error) {
	if err := b.Ready(); err != nil {
		return nil, err
	}
	return b.finish(t), nil
}
