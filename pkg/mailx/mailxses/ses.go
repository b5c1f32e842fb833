package mailxses

import (
	"context"

	"github.com/Abraxas-365/cheapalerts/pkg/logx"
	"github.com/Abraxas-365/cheapalerts/pkg/mailx"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// API is the subset of *ses.Client used here.
type API interface {
	SendRawEmail(ctx context.Context, params *ses.SendRawEmailInput, optFns ...func(*ses.Options)) (*ses.SendRawEmailOutput, error)
}

// Transport sends the fully rendered message through SES SendRawEmail, so
// headers (Date, Message-ID) match what the other backends produce.
type Transport struct {
	client API
}

var _ mailx.Transport = (*Transport)(nil)

// New creates an SES transport. client is usually a *ses.Client.
func New(client API) *Transport {
	return &Transport{client: client}
}

// Name returns the transport name.
func (t *Transport) Name() string {
	return "ses"
}

// Send renders the email and submits it with an explicit envelope.
func (t *Transport) Send(ctx context.Context, email *mailx.Email) error {
	raw, err := email.Bytes()
	if err != nil {
		return sesErrors.NewWithCause(ErrBuildMessage, err).WithDetail("message_id", email.MessageID())
	}

	input := &ses.SendRawEmailInput{
		Source:       aws.String(email.Envelope.From.String()),
		Destinations: email.Envelope.Recipients(),
		RawMessage:   &types.RawMessage{Data: raw},
	}

	out, err := t.client.SendRawEmail(ctx, input)
	if err != nil {
		return sesErrors.NewWithCause(ErrSendFailed, err).
			WithDetail("to", email.Envelope.Recipients())
	}

	logx.WithFields(logx.Fields{
		"ses_message_id": aws.ToString(out.MessageId),
		"to":             email.Envelope.Recipients(),
	}).Debug("mailx/ses: message sent")

	return nil
}
