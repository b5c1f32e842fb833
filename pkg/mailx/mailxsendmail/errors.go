package mailxsendmail

import "github.com/Abraxas-365/cheapalerts/pkg/errx"

var sendmailErrors = errx.NewRegistry("MAILX_SENDMAIL")

var (
	ErrNotFound = sendmailErrors.Register("NOT_FOUND", errx.TypeConfiguration, "sendmail command not found")
	ErrExec     = sendmailErrors.Register("EXEC", errx.TypeExternal, "sendmail command failed")
)

// Errors exposes the registry for error classification.
func Errors() *errx.Registry {
	return sendmailErrors
}
