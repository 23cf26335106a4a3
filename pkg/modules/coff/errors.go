package coff

import "errors"

var (
	// ErrTruncated indicates the view lacked the bytes required for a record.
	ErrTruncated = errors.New("coff: truncated record")
	// ErrSignatureMismatch indicates a record had an unexpected signature or marker.
	ErrSignatureMismatch = errors.New("coff: signature mismatch")
	// ErrInvalidSize indicates an archive member header with an unreadable size.
	ErrInvalidSize = errors.New("coff: invalid member size")
)
