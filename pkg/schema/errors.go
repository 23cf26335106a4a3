package schema

import "errors"

var (
	// ErrInvalidField marks a field whose shape or payload does not match its kind.
	ErrInvalidField = errors.New("schema: invalid field")
	// ErrInvalidProfile marks a YAML profile that cannot be turned into structs.
	ErrInvalidProfile = errors.New("schema: invalid profile")
)
