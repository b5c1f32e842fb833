package mailxresend

import "github.com/Abraxas-365/cheapalerts/pkg/errx"

var resendErrors = errx.NewRegistry("MAILX_RESEND")

var (
	ErrMissingAPIKey = resendErrors.Register("MISSING_API_KEY", errx.TypeConfiguration, "Resend API key is required")
	ErrSendFailed    = resendErrors.Register("SEND_FAILED", errx.TypeExternal, "Resend send failed")
)

// Errors exposes the registry for error classification.
func Errors() *errx.Registry {
	return resendErrors
}
