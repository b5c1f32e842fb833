package mailxsmtp

import "github.com/Abraxas-365/cheapalerts/pkg/errx"

var smtpErrors = errx.NewRegistry("MAILX_SMTP")

var (
	ErrAddress  = smtpErrors.Register("ADDRESS", errx.TypeConfiguration, "Invalid SMTP server address")
	ErrSecurity = smtpErrors.Register("SECURITY", errx.TypeConfiguration, "Invalid SMTP security policy")
	ErrConnect  = smtpErrors.Register("CONNECT", errx.TypeExternal, "Failed to connect to SMTP server")
	ErrSend     = smtpErrors.Register("SEND", errx.TypeExternal, "SMTP send failed")
)

// Errors exposes the registry for error classification.
func Errors() *errx.Registry {
	return smtpErrors
}
