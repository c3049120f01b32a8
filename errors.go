package colourspace

import "errors"

var (
	// ErrUnknownSpace is returned when a colour space name cannot be
	// resolved.
	ErrUnknownSpace = errors.New("unknown colour space")

	// ErrBadConfig is returned when a configuration file cannot be
	// decoded.
	ErrBadConfig = errors.New("configuration is invalid")
)
