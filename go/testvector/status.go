package testvector

import (
	"strconv"
)

// Status is the expected verification outcome written at the end of every
// record, using the PSA Crypto API status codes.
type Status int32

const (
	StatusValid Status = 0
	// PSA_ERROR_INVALID_SIGNATURE
	StatusInvalidSignature Status = -149
)

// ParseStatus maps a Wycheproof result text to a Status. Only the literal
// "invalid" is a failure; "valid", "acceptable" and any other text map to
// StatusValid.
func ParseStatus(text string) Status {
	if text == "invalid" {
		return StatusInvalidSignature
	}
	return StatusValid
}

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusInvalidSignature:
		return "invalid"
	default:
		return "status(" + strconv.Itoa(int(s)) + ")"
	}
}
