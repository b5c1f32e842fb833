package errx

// Type represents the category of error
type Type string

const (
	// TypeInternal represents failures inside this module
	TypeInternal Type = "INTERNAL"

	// TypeValidation represents malformed caller input
	TypeValidation Type = "VALIDATION"

	// TypeConfiguration represents an incomplete or inconsistent setup,
	// detected before any delivery is attempted
	TypeConfiguration Type = "CONFIGURATION"

	// TypeExternal represents errors from external services and processes
	TypeExternal Type = "EXTERNAL"
)
