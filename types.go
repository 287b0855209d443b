package typedclass

// UnknownPolicy controls how supplied names that match no declared field are handled.
type UnknownPolicy int

const (
	UnknownStrict      UnknownPolicy = iota // Reject unknown names with an UnexpectedFieldError.
	UnknownStrip                            // Drop unknown names.
	UnknownPassthrough                      // Keep unknown names, unvalidated, in Instance.Extra.
)

func (p UnknownPolicy) String() string {
	switch p {
	case UnknownStrict:
		return "strict"
	case UnknownStrip:
		return "strip"
	case UnknownPassthrough:
		return "passthrough"
	default:
		return "unknown"
	}
}

// Kind tags the variant of a Type.
type Kind uint8

const (
	KindAny      Kind = iota // Accepts every value.
	KindPlain                // A single Go type (assignability).
	KindUnion                // Any of several alternatives.
	KindOptional             // None or the inner type.
	KindLiteral              // One of a fixed set of values.
	KindSubtype              // A reflect.Type assignable to a base type.
	KindSequence             // Slice or array of elements.
	KindSet                  // map[K]struct{} or map[K]bool keyed by elements.
	KindMap                  // map[K]V.
	KindTuple                // Fixed-length positional sequence.
	KindRecord               // *Instance of a declared shape.
)

var kindNames = [...]string{
	KindAny:      "any",
	KindPlain:    "plain",
	KindUnion:    "union",
	KindOptional: "optional",
	KindLiteral:  "literal",
	KindSubtype:  "subtype",
	KindSequence: "sequence",
	KindSet:      "set",
	KindMap:      "map",
	KindTuple:    "tuple",
	KindRecord:   "record",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}
