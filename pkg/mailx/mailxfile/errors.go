package mailxfile

import "github.com/Abraxas-365/cheapalerts/pkg/errx"

var fileErrors = errx.NewRegistry("MAILX_FILE")

var (
	ErrOpen   = fileErrors.Register("OPEN", errx.TypeExternal, "Failed to open file sink")
	ErrWrite  = fileErrors.Register("WRITE", errx.TypeExternal, "Failed to write message record")
	ErrRead   = fileErrors.Register("READ", errx.TypeExternal, "Failed to read message record")
	ErrEncode = fileErrors.Register("ENCODE", errx.TypeInternal, "Failed to encode message record")
	ErrDecode = fileErrors.Register("DECODE", errx.TypeInternal, "Failed to decode message record")
)

// Errors exposes the registry for error classification.
func Errors() *errx.Registry {
	return fileErrors
}
