package hmm

import "errors"

var (
	ErrInvalidModel     = errors.New("invalid model")
	ErrEmptySequence    = errors.New("empty sequence")
	ErrSymbolOutOfRange = errors.New("index out of range")
	ErrLengthMismatch   = errors.New("length mismatch")
	ErrEmptyState       = errors.New("state has no positions")
)
