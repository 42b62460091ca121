package testvector

import (
	"errors"
)

var (
	// ErrInputMissing is returned when the input file does not exist.
	ErrInputMissing = errors.New("testvector: input file does not exist")
	// ErrMalformedHex is returned for a key, signature or message that is
	// not an even-length hexadecimal string.
	ErrMalformedHex = errors.New("testvector: malformed hex value")
)
