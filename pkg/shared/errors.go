package shared

import "errors"

// ErrInvalidNumberConversion reports a numeric value that cannot be
// represented in the requested type.
var ErrInvalidNumberConversion = errors.New("invalid number conversion")
