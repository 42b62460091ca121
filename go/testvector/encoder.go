package testvector

import (
	"bytes"
	"encoding/hex"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/trustedfirmware/wpvectors/go/testvector/internal/littleendian"
)

var log = logrus.WithField("prefix", "testvector")

var keyPlaceholder = [4]byte{0, 0, 0, 0}

// Encoder writes the binary record stream for a sequence of fields.
//
// Every record has the shape
//
//	[u32 key length][key][u32 length][bytes][u32 length][bytes][i32 status]
//
// with all integers little-endian. A key length of 0 means the record reuses
// the key of the previous record.
type Encoder struct {
	w     *CountingWriter
	state State
	chunk bytes.Buffer
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: NewCountingWriter(w), state: AwaitingGroupStart}
}

// State returns the placeholder state the next field will be encoded in.
func (e *Encoder) State() State {
	return e.state
}

// Written returns the number of bytes written so far.
func (e *Encoder) Written() int64 {
	return e.w.Written
}

// Encode appends the encoding of f. Fields of kind KindIgnored are skipped.
// Nothing is written for f if an error is returned, except when the
// underlying writer itself fails.
func (e *Encoder) Encode(f RawField) error {
	next, placeholder := e.state.Advance(f.Kind)

	e.chunk.Reset()
	switch {
	case f.Kind.IsBytes():
		b, err := hex.DecodeString(f.Value)
		if err != nil {
			return errors.Wrapf(ErrMalformedHex, "line %d: %s %q: %v", f.Line, f.Kind, f.Value, err)
		}
		length, err := littleendian.Encode4BytesLittleEndianUint(len(b))
		if err != nil {
			return errors.Wrapf(err, "line %d: %s of %d bytes", f.Line, f.Kind, len(b))
		}
		if placeholder {
			log.WithField("line", f.Line).Debugf("No key before %s, writing key placeholder", f.Kind)
			e.chunk.Write(keyPlaceholder[:])
		}
		e.chunk.Write(length[:])
		e.chunk.Write(b)
	case f.Kind == KindResult:
		status := ParseStatus(f.Value)
		if status == StatusValid && f.Value != "valid" {
			log.WithField("line", f.Line).Debugf("Treating result %q as valid", f.Value)
		}
		b := littleendian.Encode4BytesLittleEndianInt(int32(status))
		e.chunk.Write(b[:])
	default:
		return nil
	}

	if _, err := e.w.Write(e.chunk.Bytes()); err != nil {
		return errors.Wrapf(err, "testvector: failed to write %s from line %d", f.Kind, f.Line)
	}
	e.state = next
	return nil
}
