package testvector

import (
	"bufio"
	"io"
	"strings"
	"unicode"
)

// FieldKind identifies which tracked test-vector field a line carries.
type FieldKind int

const (
	KindIgnored FieldKind = iota
	KindKey
	KindSignature
	KindMessage
	KindResult
)

func (k FieldKind) String() string {
	switch k {
	case KindKey:
		return "uncompressed"
	case KindSignature:
		return "sig"
	case KindMessage:
		return "msg"
	case KindResult:
		return "result"
	default:
		return "ignored"
	}
}

// IsBytes reports whether fields of this kind carry hex-encoded bytes.
func (k FieldKind) IsBytes() bool {
	return k == KindKey || k == KindSignature || k == KindMessage
}

// Markers in the order they are tested against a line. The first hit wins.
var markers = []struct {
	marker string
	kind   FieldKind
}{
	{`"uncompressed" :`, KindKey},
	{`"sig" :`, KindSignature},
	{`"msg" :`, KindMessage},
	{`"result" :`, KindResult},
}

// normalizeLine drops all whitespace, commas and double quotes from a matched
// line before it is split on ':'.
func normalizeLine(line string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == ',' || r == '"' {
			return -1
		}
		return r
	}, line)
}

// RawField is one recognized input line.
type RawField struct {
	Kind  FieldKind
	Value string
	Line  int // 1-based line number in the input, 0 if unknown
}

// ClassifyLine returns the field carried by line, if any.
func ClassifyLine(line string) (RawField, bool) {
	for _, m := range markers {
		if !strings.Contains(line, m.marker) {
			continue
		}
		el := strings.Split(normalizeLine(line), ":")
		if len(el) < 2 || el[0] != m.kind.String() {
			// The marker occurs inside some other field, e.g. a comment.
			return RawField{}, false
		}
		return RawField{Kind: m.kind, Value: el[1]}, true
	}
	return RawField{}, false
}

// 16 MiB, enough for the largest messages in the public corpus.
const maxLineLength = 16 << 20

// Extractor yields the tracked fields of a line-oriented test-vector file.
type Extractor struct {
	lines *bufio.Scanner
	line  int
}

func NewExtractor(r io.Reader) *Extractor {
	lines := bufio.NewScanner(r)
	lines.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	return &Extractor{lines: lines}
}

// Next returns the next recognized field. It returns false once the input is
// exhausted or a read error occurred; see Err.
func (e *Extractor) Next() (RawField, bool) {
	for e.lines.Scan() {
		e.line++
		f, ok := ClassifyLine(e.lines.Text())
		if !ok {
			continue
		}
		f.Line = e.line
		return f, true
	}
	return RawField{}, false
}

func (e *Extractor) Err() error {
	return e.lines.Err()
}
