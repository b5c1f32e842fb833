package mailx

import "github.com/Abraxas-365/cheapalerts/pkg/errx"

var mailxErrors = errx.NewRegistry("MAILX")

var (
	ErrInvalidAddress  = mailxErrors.Register("INVALID_ADDRESS", errx.TypeValidation, "Invalid email address")
	ErrInvalidEnvelope = mailxErrors.Register("INVALID_ENVELOPE", errx.TypeValidation, "Invalid envelope")
	ErrRender          = mailxErrors.Register("RENDER", errx.TypeInternal, "Failed to render email message")
)

// Errors exposes the registry so callers can classify errors raised while
// parsing addresses or building messages.
func Errors() *errx.Registry {
	return mailxErrors
}
