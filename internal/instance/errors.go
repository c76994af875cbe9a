package instance

import "errors"

var (
	// ErrDecode is returned when an instance file is not valid YAML for
	// the schema.
	ErrDecode = errors.New("decoding instance")

	// ErrSchema is returned when a decoded instance file is internally
	// inconsistent.
	ErrSchema = errors.New("invalid instance")
)
