package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Server lifecycle errors
	ErrStartupUnsupported = fmt.Errorf("host cannot open a listening socket")
	ErrListenerClosed     = fmt.Errorf("listener closed")

	// Content errors
	ErrNotFound             = fmt.Errorf("file not found")
	ErrUnsupportedExtension = fmt.Errorf("unsupported file extension")

	// Authorization flow errors
	ErrAuthFailed    = fmt.Errorf("authorization failed")
	ErrStateMismatch = fmt.Errorf("state parameter mismatch")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
)
