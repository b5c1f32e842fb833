package pollxredis

import "github.com/Abraxas-365/cheapalerts/pkg/errx"

var redisErrors = errx.NewRegistry("POLLX_REDIS")

var (
	ErrGet = redisErrors.Register("GET", errx.TypeExternal, "Failed to read status key")
)
