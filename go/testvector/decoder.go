package testvector

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/trustedfirmware/wpvectors/go/testvector/internal/littleendian"
)

// Layout is the order of the signature and message inside a record. The
// encoder keeps the order of the input file.
type Layout [2]FieldKind

var (
	// LayoutMessageFirst is the order used by the Wycheproof test files.
	LayoutMessageFirst = Layout{KindMessage, KindSignature}

	LayoutSignatureFirst = Layout{KindSignature, KindMessage}
)

// ParseLayout accepts "msg-sig" and "sig-msg".
func ParseLayout(s string) (Layout, bool) {
	switch s {
	case "msg-sig":
		return LayoutMessageFirst, true
	case "sig-msg":
		return LayoutSignatureFirst, true
	}
	return Layout{}, false
}

func (l Layout) String() string {
	return fmt.Sprintf("%s-%s", l[0], l[1])
}

// Record is one decoded test case.
type Record struct {
	// Key is nil if KeyReused is set.
	Key       []byte
	KeyReused bool
	Signature []byte
	Message   []byte
	Status    Status
}

func (r *Record) String() string {
	return fmt.Sprintf("{Key: %x, KeyReused: %v, Signature: %x, Message: %x, Status: %v}",
		r.Key, r.KeyReused, r.Signature, r.Message, r.Status)
}

// Decoder reads back the records written by Encoder.
type Decoder struct {
	r      io.Reader
	layout Layout
	index  int
}

func NewDecoder(r io.Reader, layout Layout) *Decoder {
	return &Decoder{r: r, layout: layout}
}

// Next returns the next record, or io.EOF once the stream ends on a record
// boundary. A stream ending inside a record yields io.ErrUnexpectedEOF.
func (d *Decoder) Next() (*Record, error) {
	var head [4]byte
	if _, err := io.ReadFull(d.r, head[:]); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, errors.Wrapf(err, "testvector.records[%d]: Failed to read key length", d.index)
	}

	rec := &Record{}
	if n := littleendian.Decode4BytesLittleEndianUint(head); n == 0 {
		rec.KeyReused = true
	} else {
		key, err := d.readBytes(n, KindKey)
		if err != nil {
			return nil, err
		}
		rec.Key = key
	}

	for _, kind := range d.layout {
		b, err := d.readChunk(kind)
		if err != nil {
			return nil, err
		}
		switch kind {
		case KindSignature:
			rec.Signature = b
		case KindMessage:
			rec.Message = b
		}
	}

	if _, err := io.ReadFull(d.r, head[:]); err != nil {
		return nil, errors.Wrapf(noEOF(err), "testvector.records[%d]: Failed to read status", d.index)
	}
	rec.Status = Status(littleendian.Decode4BytesLittleEndianInt(head))
	d.index++
	return rec, nil
}

func (d *Decoder) readChunk(kind FieldKind) ([]byte, error) {
	var head [4]byte
	if _, err := io.ReadFull(d.r, head[:]); err != nil {
		return nil, errors.Wrapf(noEOF(err), "testvector.records[%d]: Failed to read %s length", d.index, kind)
	}
	return d.readBytes(littleendian.Decode4BytesLittleEndianUint(head), kind)
}

func (d *Decoder) readBytes(n uint32, kind FieldKind) ([]byte, error) {
	// Read through a LimitReader so a corrupt length cannot force a huge
	// allocation up front.
	b, err := io.ReadAll(io.LimitReader(d.r, int64(n)))
	if err != nil {
		return nil, errors.Wrapf(err, "testvector.records[%d]: Failed to read %s", d.index, kind)
	}
	if int64(len(b)) != int64(n) {
		return nil, errors.Wrapf(io.ErrUnexpectedEOF, "testvector.records[%d]: %s has %d of %d bytes", d.index, kind, len(b), n)
	}
	return b, nil
}

func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// ReadAll decodes every record in r.
func ReadAll(r io.Reader, layout Layout) ([]*Record, error) {
	d := NewDecoder(r, layout)
	var recs []*Record
	for {
		rec, err := d.Next()
		if err == io.EOF {
			return recs, nil
		}
		if err != nil {
			return recs, err
		}
		recs = append(recs, rec)
	}
}
