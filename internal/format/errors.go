package format

import "errors"

// ErrUnknownFormat is returned for output formats other than text or json.
var ErrUnknownFormat = errors.New("unknown output format")
