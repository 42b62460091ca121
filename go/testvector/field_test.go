package testvector

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyLine(t *testing.T) {
	assert := assert.New(t)

	cases := []struct {
		line string
		ok   bool
		want RawField
	}{
		{`        "uncompressed" : "04abCD",`, true, RawField{Kind: KindKey, Value: "04abCD"}},
		{`          "sig" : "3006020101020102",`, true, RawField{Kind: KindSignature, Value: "3006020101020102"}},
		{`          "msg" : "",`, true, RawField{Kind: KindMessage, Value: ""}},
		{`          "result" : "valid"` + "\r\n", true, RawField{Kind: KindResult, Value: "valid"}},
		{`          "result" : "acceptable"`, true, RawField{Kind: KindResult, Value: "acceptable"}},
		{`"msg" : "31 32 33"`, true, RawField{Kind: KindMessage, Value: "313233"}},
		// Tab indentation and trailing whitespace.
		{"\t\t\"sig\" : \"30\",", true, RawField{Kind: KindSignature, Value: "30"}},
		{"\"sig\" : \"30\"\t", true, RawField{Kind: KindSignature, Value: "30"}},
		{"\t\"result\" : \"invalid\"\t\v", true, RawField{Kind: KindResult, Value: "invalid"}},
		// Not tracked.
		{`        "wx" : "00ab",`, false, RawField{}},
		{`          "tcId" : 1,`, false, RawField{}},
		{`  "numberOfTests" : 3,`, false, RawField{}},
		// Without the " : " separator the line does not match.
		{`"sig":"30"`, false, RawField{}},
		// The marker appears inside another field.
		{`"comment" : "see "sig" : below"`, false, RawField{}},
		{``, false, RawField{}},
	}
	for _, c := range cases {
		got, ok := ClassifyLine(c.line)
		assert.Equal(c.ok, ok, "line %q", c.line)
		assert.Equal(c.want, got, "line %q", c.line)
	}
}

func TestClassifyLineMarkerPriority(t *testing.T) {
	// Both markers appear; the key marker is tested first and decides the
	// kind, and its value is the second ':'-separated element.
	got, ok := ClassifyLine(`"uncompressed" : "04", "sig" : "30"`)
	require.True(t, ok)
	assert.Equal(t, KindKey, got.Kind)
	assert.Equal(t, "04sig", got.Value)
}

func TestExtractor(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	fields := NewExtractor(strings.NewReader(`{
  "testGroups" : [
    {
      "publicKey" : {
        "uncompressed" : "04ab",
        "wx" : "ab"
      },
      "tests" : [
        {
          "tcId" : 1,
          "msg" : "0a",
          "sig" : "30",
          "result" : "invalid"
        }
      ]
    }
  ]
}`))

	var got []RawField
	for {
		f, ok := fields.Next()
		if !ok {
			break
		}
		got = append(got, f)
	}
	require.NoError(fields.Err())
	assert.Equal([]RawField{
		{Kind: KindKey, Value: "04ab", Line: 5},
		{Kind: KindMessage, Value: "0a", Line: 11},
		{Kind: KindSignature, Value: "30", Line: 12},
		{Kind: KindResult, Value: "invalid", Line: 13},
	}, got)

	_, ok := fields.Next()
	assert.False(ok, "Extractor must stay exhausted")
}

func TestExtractorLongLine(t *testing.T) {
	msg := strings.Repeat("ab", 100*1024)
	fields := NewExtractor(strings.NewReader(`"msg" : "` + msg + `",` + "\n"))

	f, ok := fields.Next()
	require.True(t, ok)
	require.NoError(t, fields.Err())
	assert.Equal(t, msg, f.Value)
}

func TestFieldKindString(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("uncompressed", KindKey.String())
	assert.Equal("sig", KindSignature.String())
	assert.Equal("msg", KindMessage.String())
	assert.Equal("result", KindResult.String())
	assert.Equal("ignored", KindIgnored.String())
	assert.False(KindResult.IsBytes())
	assert.False(KindIgnored.IsBytes())
}
