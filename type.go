package typedclass

import (
	"reflect"
	"strings"
)

// Type is a declared type specification. It is immutable once constructed and
// safe to share between goroutines. Constructors never fail; malformed types
// are reported by Validate, which Declare runs for every field.
type Type struct {
	kind     Kind
	rtype    reflect.Type
	alts     []*Type
	elem     *Type
	key      *Type
	literals []any
	shape    *Shape
}

var anyType = &Type{kind: KindAny}

// Any accepts every value, including None.
func Any() *Type { return anyType }

// Plain declares a single Go type. A value conforms when its dynamic type is
// assignable to rt, so interface types accept every implementation.
func Plain(rt reflect.Type) *Type { return &Type{kind: KindPlain, rtype: rt} }

// PlainOf is Plain for the static type T.
func PlainOf[T any]() *Type { return Plain(reflect.TypeFor[T]()) }

// Union accepts a value conforming to any alternative. Alternatives are tried
// in the given order.
func Union(alts ...*Type) *Type {
	return &Type{kind: KindUnion, alts: append([]*Type(nil), alts...)}
}

// Optional accepts None or a value conforming to inner.
func Optional(inner *Type) *Type { return &Type{kind: KindOptional, elem: inner} }

// Literal accepts values equal to one of vals. Equality is Go interface
// equality, so int(1) and int64(1) are different literals.
func Literal(vals ...any) *Type {
	return &Type{kind: KindLiteral, literals: append([]any(nil), vals...)}
}

// Subtype accepts reflect.Type values assignable to base.
func Subtype(base reflect.Type) *Type { return &Type{kind: KindSubtype, rtype: base} }

// SubtypeOf is Subtype for the static type T.
func SubtypeOf[T any]() *Type { return Subtype(reflect.TypeFor[T]()) }

// SequenceOf accepts slices and arrays whose elements conform to elem.
func SequenceOf(elem *Type) *Type { return &Type{kind: KindSequence, elem: elem} }

// SetOf accepts map[K]struct{} and map[K]bool values whose members conform
// to elem. In a map[K]bool only keys mapped to true are members.
func SetOf(elem *Type) *Type { return &Type{kind: KindSet, elem: elem} }

// MapOf accepts maps whose keys conform to key and values to value.
func MapOf(key, value *Type) *Type { return &Type{kind: KindMap, key: key, elem: value} }

// TupleOf accepts slices and arrays of exactly len(items) elements, each
// conforming to the item at the same position.
func TupleOf(items ...*Type) *Type {
	return &Type{kind: KindTuple, alts: append([]*Type(nil), items...)}
}

// RecordOf accepts instances of s or of a shape extending s.
func RecordOf(s *Shape) *Type { return &Type{kind: KindRecord, shape: s} }

func (t *Type) Kind() Kind { return t.kind }

// ReflectType returns the Go type of Plain and Subtype specifications.
func (t *Type) ReflectType() reflect.Type { return t.rtype }

// Alternatives returns the union alternatives, or the tuple items.
func (t *Type) Alternatives() []*Type { return append([]*Type(nil), t.alts...) }

// Items is Alternatives under the tuple name.
func (t *Type) Items() []*Type { return t.Alternatives() }

// Elem returns the inner type of Optional, the element of Sequence and Set,
// and the value type of Map.
func (t *Type) Elem() *Type { return t.elem }

// Key returns the key type of Map.
func (t *Type) Key() *Type { return t.key }

func (t *Type) Literals() []any { return append([]any(nil), t.literals...) }

func (t *Type) Shape() *Shape { return t.shape }

// String renders the type the way error messages show it.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	b := &strings.Builder{}
	t.writeTo(b)
	return b.String()
}

func (t *Type) writeTo(b *strings.Builder) {
	switch t.kind {
	case KindAny:
		b.WriteString("Any")
	case KindPlain:
		b.WriteString(rtypeName(t.rtype))
	case KindUnion:
		writeGeneric(b, "Union", t.alts...)
	case KindOptional:
		writeGeneric(b, "Optional", t.elem)
	case KindLiteral:
		b.WriteString("Literal[")
		for i, v := range t.literals {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(formatValue(v))
		}
		b.WriteByte(']')
	case KindSubtype:
		b.WriteString("Type[" + rtypeName(t.rtype) + "]")
	case KindSequence:
		writeGeneric(b, "Sequence", t.elem)
	case KindSet:
		writeGeneric(b, "Set", t.elem)
	case KindMap:
		writeGeneric(b, "Map", t.key, t.elem)
	case KindTuple:
		writeGeneric(b, "Tuple", t.alts...)
	case KindRecord:
		if t.shape == nil {
			b.WriteString("<nil>")
			return
		}
		b.WriteString(t.shape.name)
	}
}

func writeGeneric(b *strings.Builder, name string, params ...*Type) {
	b.WriteString(name)
	b.WriteByte('[')
	for i, p := range params {
		if i > 0 {
			b.WriteString(", ")
		}
		if p == nil {
			b.WriteString("<nil>")
			continue
		}
		p.writeTo(b)
	}
	b.WriteByte(']')
}

func rtypeName(rt reflect.Type) string {
	if rt == nil {
		return "<nil>"
	}
	return rt.String()
}

// Validate reports whether the type is well formed. Match assumes it is.
func (t *Type) Validate() error {
	if reason := t.malformed(); reason != "" {
		return &DeclarationError{Reason: reason}
	}
	return nil
}

func (t *Type) malformed() string {
	if t == nil {
		return "type is nil"
	}
	switch t.kind {
	case KindAny:
	case KindPlain, KindSubtype:
		if t.rtype == nil {
			return t.kind.String() + " type has no Go type"
		}
	case KindUnion:
		if len(t.alts) == 0 {
			return "union must name at least one alternative"
		}
		for _, a := range t.alts {
			if r := a.malformed(); r != "" {
				return r
			}
		}
	case KindOptional:
		if t.elem == nil {
			return "optional has no inner type"
		}
		return t.elem.malformed()
	case KindLiteral:
		if len(t.literals) == 0 {
			return "literal must name at least one value"
		}
		for _, v := range t.literals {
			if v != nil && (!reflect.TypeOf(v).Comparable() || !dynamicallyComparable(v)) {
				return "literal value of type " + describeType(v) + " is not comparable"
			}
		}
	case KindSequence, KindSet:
		if t.elem == nil {
			return t.kind.String() + " has no element type"
		}
		if t.kind == KindSet && t.elem.kind == KindPlain && t.elem.rtype != nil && !t.elem.rtype.Comparable() {
			return "set element type " + t.elem.rtype.String() + " is not comparable"
		}
		return t.elem.malformed()
	case KindMap:
		if t.key == nil {
			return "map has no key type; use Any() to accept every key"
		}
		if t.elem == nil {
			return "map has no value type"
		}
		if r := t.key.malformed(); r != "" {
			return r
		}
		return t.elem.malformed()
	case KindTuple:
		for _, a := range t.alts {
			if r := a.malformed(); r != "" {
				return r
			}
		}
	case KindRecord:
		if t.shape == nil {
			return "record type has no shape"
		}
	default:
		return "unknown type kind"
	}
	return ""
}
