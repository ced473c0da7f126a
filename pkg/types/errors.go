package types

import "errors"

// Store errors.
var (
	ErrNotFound       = errors.New("command not found")
	ErrStoreOpen      = errors.New("cannot open completion store")
	ErrSchemaMismatch = errors.New("schema version mismatch")
	ErrFieldTooLong   = errors.New("field exceeds maximum length")
)

// Grammar validation errors.
var (
	ErrInvalidName    = errors.New("invalid name")
	ErrInvalidArg     = errors.New("argument needs a long or short name")
	ErrInvalidArgType = errors.New("invalid argument type")
)
