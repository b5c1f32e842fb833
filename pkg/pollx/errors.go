package pollx

import "github.com/Abraxas-365/cheapalerts/pkg/errx"

var pollxErrors = errx.NewRegistry("POLLX")

var (
	ErrAlreadyRunning = pollxErrors.Register("ALREADY_RUNNING", errx.TypeInternal, "Poller is already running")
)
