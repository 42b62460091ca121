package testvector

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustedfirmware/wpvectors/go/internal/testhelper"
)

func encodeAll(t *testing.T, fields ...RawField) []byte {
	t.Helper()
	var b bytes.Buffer
	enc := NewEncoder(&b)
	for _, f := range fields {
		require.NoError(t, enc.Encode(f))
	}
	assert.EqualValues(t, b.Len(), enc.Written())
	return b.Bytes()
}

func TestEncodeRecord(t *testing.T) {
	got := encodeAll(t,
		RawField{Kind: KindKey, Value: "04ab"},
		RawField{Kind: KindSignature, Value: "30"},
		RawField{Kind: KindMessage, Value: "0a"},
		RawField{Kind: KindResult, Value: "valid"},
	)
	assert.Equal(t, testhelper.FromHex("02000000 04ab 01000000 30 01000000 0a 00000000"), got)
}

func TestEncodeInvalidResult(t *testing.T) {
	got := encodeAll(t,
		RawField{Kind: KindKey, Value: "04ab"},
		RawField{Kind: KindSignature, Value: "30"},
		RawField{Kind: KindMessage, Value: "0a"},
		RawField{Kind: KindResult, Value: "invalid"},
	)
	assert.Equal(t, testhelper.FromHex("6bffffff"), got[len(got)-4:])
}

func TestEncodeKeyPlaceholder(t *testing.T) {
	got := encodeAll(t,
		RawField{Kind: KindKey, Value: "04ab"},
		RawField{Kind: KindMessage, Value: "0a"},
		RawField{Kind: KindSignature, Value: "30"},
		RawField{Kind: KindResult, Value: "valid"},
		RawField{Kind: KindMessage, Value: "0b"},
		RawField{Kind: KindSignature, Value: "31"},
		RawField{Kind: KindResult, Value: "invalid"},
	)
	assert.Equal(t, testhelper.FromHex(
		"02000000 04ab 01000000 0a 01000000 30 00000000"+
			"00000000 01000000 0b 01000000 31 6bffffff"), got)
}

func TestEncodeFirstRecordWithoutKey(t *testing.T) {
	got := encodeAll(t,
		RawField{Kind: KindSignature, Value: "30"},
		RawField{Kind: KindMessage, Value: "0a"},
		RawField{Kind: KindResult, Value: "valid"},
	)
	assert.Equal(t, testhelper.FromHex("00000000 01000000 30 01000000 0a 00000000"), got)
}

func TestEncodePlaceholderOnlyOncePerRecord(t *testing.T) {
	var b bytes.Buffer
	enc := NewEncoder(&b)
	assert.Equal(t, AwaitingGroupStart, enc.State())
	require.NoError(t, enc.Encode(RawField{Kind: KindMessage, Value: ""}))
	assert.Equal(t, WithinGroup, enc.State())
	require.NoError(t, enc.Encode(RawField{Kind: KindSignature, Value: "30"}))
	require.NoError(t, enc.Encode(RawField{Kind: KindResult, Value: "acceptable"}))
	assert.Equal(t, AwaitingGroupStart, enc.State())

	// An empty message still gets its zero length.
	assert.Equal(t, testhelper.FromHex("00000000 00000000 01000000 30 00000000"), b.Bytes())
}

func TestEncodeIgnoredField(t *testing.T) {
	var b bytes.Buffer
	enc := NewEncoder(&b)
	require.NoError(t, enc.Encode(RawField{Kind: KindIgnored, Value: "zz"}))
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, AwaitingGroupStart, enc.State())
}

func TestEncodeMalformedHex(t *testing.T) {
	for _, value := range []string{"zz", "0", "04a", "0x04", "g0"} {
		var b bytes.Buffer
		enc := NewEncoder(&b)
		err := enc.Encode(RawField{Kind: KindSignature, Value: value, Line: 7})
		if !errors.Is(err, ErrMalformedHex) {
			t.Errorf("Encode(%q): got err %v, want %v", value, err, ErrMalformedHex)
		}
		// Neither the placeholder nor a length prefix may be written.
		if b.Len() != 0 {
			t.Errorf("Encode(%q): wrote %d bytes", value, b.Len())
		}
		if enc.State() != AwaitingGroupStart {
			t.Errorf("Encode(%q): state changed to %v", value, enc.State())
		}
	}
}

func TestEncodeMalformedHexMidRecord(t *testing.T) {
	var b bytes.Buffer
	enc := NewEncoder(&b)
	require.NoError(t, enc.Encode(RawField{Kind: KindKey, Value: "04ab"}))
	err := enc.Encode(RawField{Kind: KindSignature, Value: "zz", Line: 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedHex))
	assert.Contains(t, err.Error(), "line 3")
	assert.Equal(t, testhelper.FromHex("02000000 04ab"), b.Bytes())
}

type failingWriter struct{}

var errWrite = errors.New("write failed")

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errWrite
}

func TestEncodeWriteError(t *testing.T) {
	enc := NewEncoder(failingWriter{})
	err := enc.Encode(RawField{Kind: KindKey, Value: "04"})
	assert.True(t, errors.Is(err, errWrite))
	assert.Equal(t, AwaitingGroupStart, enc.State())
	assert.EqualValues(t, 0, enc.Written())
}
