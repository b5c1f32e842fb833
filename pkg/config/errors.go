package config

import "github.com/Abraxas-365/cheapalerts/pkg/errx"

var configErrors = errx.NewRegistry("CONFIG")

var (
	ErrRead    = configErrors.Register("READ", errx.TypeConfiguration, "Failed to read config file")
	ErrParse   = configErrors.Register("PARSE", errx.TypeConfiguration, "Failed to parse config file")
	ErrInvalid = configErrors.Register("INVALID", errx.TypeValidation, "Invalid configuration")
	ErrAWS     = configErrors.Register("AWS", errx.TypeConfiguration, "Failed to load AWS configuration")
)
