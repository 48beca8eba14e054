package domain

import "errors"

var (
	ErrNotATerminal     = errors.New("standard input/output is not a terminal")
	ErrReservedKey      = errors.New("all-digit key sequences are reserved for object commands")
	ErrUnknownAction    = errors.New("unknown default action")
	ErrDuplicateBinding = errors.New("key sequence already bound")
)
