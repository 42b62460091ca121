package testvector

// State tracks whether the current test case has supplied its key yet.
//
// Wycheproof lists the public key once per test group and then every test
// case of that group. A record whose first byte field is not a key therefore
// gets a zero key length, telling the reader to reuse the previous key.
type State int

const (
	// AwaitingGroupStart is the state at the start of the stream and after
	// every result field.
	AwaitingGroupStart State = iota
	// WithinGroup is entered by the first byte field of a record.
	WithinGroup
)

func (s State) String() string {
	switch s {
	case AwaitingGroupStart:
		return "AwaitingGroupStart"
	case WithinGroup:
		return "WithinGroup"
	default:
		return "State(?)"
	}
}

// Advance returns the state after a field of the given kind and whether a key
// placeholder has to be written before that field.
func (s State) Advance(kind FieldKind) (next State, placeholder bool) {
	switch {
	case kind == KindResult:
		return AwaitingGroupStart, false
	case !kind.IsBytes():
		return s, false
	case s == AwaitingGroupStart:
		return WithinGroup, kind != KindKey
	default:
		return WithinGroup, false
	}
}
