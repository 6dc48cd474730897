package heading

import "errors"

// Errors returned by registry construction and feature registration.
var (
	ErrDuplicateFormat = errors.New("duplicate block format")
	ErrEmptyFormatID   = errors.New("block format id is empty")
)
