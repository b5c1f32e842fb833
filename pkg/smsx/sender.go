package smsx

import (
	"context"
	"errors"
	"time"

	"github.com/Abraxas-365/cheapalerts/pkg/errx"
	"github.com/Abraxas-365/cheapalerts/pkg/logx"
	"github.com/Abraxas-365/cheapalerts/pkg/mailx"
)

// Sender sends text messages from one address through one fixed transport.
// A Sender is as safe for concurrent use as its transport.
type Sender struct {
	from      mailx.Address
	subject   string
	transport mailx.Transport
	now       func() time.Time
}

// From returns the validated sender address.
func (s *Sender) From() mailx.Address {
	return s.from
}

// Transport returns the backend chosen at build time.
func (s *Sender) Transport() mailx.Transport {
	return s.transport
}

// SendTo composes msg for dest and makes exactly one delivery attempt.
//
// A destination address that does not parse fails with a mailx error before
// the transport is touched. Coded transport errors are returned unchanged;
// anything else is wrapped in ErrSendFailed with the cause kept.
func (s *Sender) SendTo(ctx context.Context, dest Destination, msg string) error {
	to, err := mailx.ParseAddress(dest.Address())
	if err != nil {
		return err
	}

	env, err := mailx.NewEnvelope(s.from, to)
	if err != nil {
		return err
	}

	email := mailx.NewEmail(env, s.now(), []byte(msg))
	email.Subject = s.subject

	if err := s.transport.Send(ctx, email); err != nil {
		return s.translate(err)
	}

	logx.WithFields(logx.Fields{
		"transport":  s.transport.Name(),
		"to":         to.String(),
		"message_id": email.MessageID(),
	}).Debug("smsx: message sent")

	return nil
}

func (s *Sender) translate(err error) error {
	var coded *errx.Error
	if errors.As(err, &coded) {
		return err
	}
	return smsxErrors.NewWithCause(ErrSendFailed, err).WithDetail("transport", s.transport.Name())
}
