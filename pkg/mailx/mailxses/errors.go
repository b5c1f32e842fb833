package mailxses

import "github.com/Abraxas-365/cheapalerts/pkg/errx"

var sesErrors = errx.NewRegistry("MAILX_SES")

var (
	ErrSendFailed   = sesErrors.Register("SEND_FAILED", errx.TypeExternal, "SES send email failed")
	ErrBuildMessage = sesErrors.Register("BUILD_MESSAGE", errx.TypeInternal, "Failed to build SES message")
)

// Errors exposes the registry for error classification.
func Errors() *errx.Registry {
	return sesErrors
}
