package smsx

import (
	"github.com/Abraxas-365/cheapalerts/pkg/errx"
	"github.com/Abraxas-365/cheapalerts/pkg/mailx"
	"github.com/Abraxas-365/cheapalerts/pkg/mailx/mailxfile"
	"github.com/Abraxas-365/cheapalerts/pkg/mailx/mailxresend"
	"github.com/Abraxas-365/cheapalerts/pkg/mailx/mailxsendmail"
	"github.com/Abraxas-365/cheapalerts/pkg/mailx/mailxses"
	"github.com/Abraxas-365/cheapalerts/pkg/mailx/mailxsmtp"
)

var smsxErrors = errx.NewRegistry("SMSX")

var (
	ErrMissingEmail = smsxErrors.Register("MISSING_EMAIL", errx.TypeConfiguration, "Error, email address to build a Sender")
	ErrSendFailed   = smsxErrors.Register("SEND_FAILED", errx.TypeExternal, "Transport failed to send message")
)

// Kind classifies an error returned by a Builder or Sender.
type Kind int

const (
	KindUnknown Kind = iota
	// KindAddress is a malformed from/to address or envelope.
	KindAddress
	KindFile
	KindSendmail
	KindSMTP
	KindSES
	KindResend
	// KindMissingEmail means the builder never received a valid from address.
	KindMissingEmail
	// KindTransport is an uncoded error from a caller-supplied transport.
	KindTransport
)

var kindNames = [...]string{
	KindUnknown:      "unknown",
	KindAddress:      "address",
	KindFile:         "file",
	KindSendmail:     "sendmail",
	KindSMTP:         "smtp",
	KindSES:          "ses",
	KindResend:       "resend",
	KindMissingEmail: "missing_email",
	KindTransport:    "transport",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

var kindRegistries = []struct {
	kind     Kind
	registry *errx.Registry
}{
	{KindAddress, mailx.Errors()},
	{KindFile, mailxfile.Errors()},
	{KindSendmail, mailxsendmail.Errors()},
	{KindSMTP, mailxsmtp.Errors()},
	{KindSES, mailxses.Errors()},
	{KindResend, mailxresend.Errors()},
}

// KindOf reports which part of the pipeline produced err.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	switch {
	case errx.IsCode(err, ErrMissingEmail):
		return KindMissingEmail
	case errx.IsCode(err, ErrSendFailed):
		return KindTransport
	}
	for _, kr := range kindRegistries {
		if kr.registry.Owns(err) {
			return kr.kind
		}
	}
	return KindUnknown
}

// Errors exposes the registry for error classification.
func Errors() *errx.Registry {
	return smsxErrors
}
