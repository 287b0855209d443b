package typedclass

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	json "github.com/goccy/go-json"
)

// Instance is a constructed record. Its fields are fixed by its Shape; values
// may be replaced with Set, which does not re-run validation. An Instance is
// owned by its caller and is not safe for concurrent mutation.
type Instance struct {
	shape    *Shape
	values   []any
	presence []Presence
	extra    map[string]any
}

func (in *Instance) Shape() *Shape { return in.shape }

// Fields returns the field names in declaration order.
func (in *Instance) Fields() []string {
	out := make([]string, len(in.shape.fields))
	for i, f := range in.shape.fields {
		out[i] = f.Name
	}
	return out
}

// Get returns the value of a declared field.
func (in *Instance) Get(name string) (any, bool) {
	i, ok := in.shape.index[name]
	if !ok {
		return nil, false
	}
	return in.values[i], true
}

// MustGet is like Get but panics on an undeclared name.
func MustGet(in *Instance, name string) any {
	v, ok := in.Get(name)
	if !ok {
		panic(&UnexpectedFieldError{Record: in.shape.name, Fields: []string{name}})
	}
	return v
}

// Value returns a field value asserted to T.
func Value[T any](in *Instance, name string) (T, error) {
	var zero T
	v, ok := in.Get(name)
	if !ok {
		return zero, &UnexpectedFieldError{Record: in.shape.name, Fields: []string{name}}
	}
	tv, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("typedclass: %s: field %q holds %s, not %T", in.shape.name, name, describeType(v), zero)
	}
	return tv, nil
}

// Set replaces the value of a declared field without validating it. Names
// that are not declared fields are rejected.
func (in *Instance) Set(name string, v any) error {
	i, ok := in.shape.index[name]
	if !ok {
		return &UnexpectedFieldError{Record: in.shape.name, Fields: []string{name}}
	}
	p := PresenceSupplied
	if IsNone(v) {
		v = None
		p |= PresenceWasNone
	}
	in.values[i] = v
	in.presence[i] = p
	return nil
}

// Presence returns how a field got its value.
func (in *Instance) Presence(name string) Presence {
	i, ok := in.shape.index[name]
	if !ok {
		return 0
	}
	return in.presence[i]
}

// Extra returns a copy of the unknown names kept under UnknownPassthrough.
func (in *Instance) Extra() map[string]any { return maps.Clone(in.extra) }

// Map returns the fields as a map. Nested instances become maps and None
// becomes nil, recursively through []any and map[string]any containers.
func (in *Instance) Map() map[string]any {
	out := make(map[string]any, len(in.values))
	for i, f := range in.shape.fields {
		out[f.Name] = exportValue(in.values[i])
	}
	return out
}

func exportValue(v any) any {
	if IsNone(v) {
		return nil
	}
	switch t := v.(type) {
	case *Instance:
		if t == nil {
			return nil
		}
		return t.Map()
	case []*Instance:
		out := make([]any, len(t))
		for i := range t {
			out[i] = exportValue(t[i])
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = exportValue(t[i])
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = exportValue(vv)
		}
		return out
	}
	return v
}

// String renders the instance as Name(field=value, ...) in declaration order.
func (in *Instance) String() string {
	b := &strings.Builder{}
	b.WriteString(in.shape.name)
	b.WriteByte('(')
	for i, f := range in.shape.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Name)
		b.WriteByte('=')
		b.WriteString(formatValue(in.values[i]))
	}
	b.WriteByte(')')
	return b.String()
}

// MarshalJSON writes the fields as a JSON object in declaration order,
// followed by passthrough extras in sorted order. None is written as null.
func (in *Instance) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	write := func(k string, v any) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		kb, err := json.Marshal(k)
		if err != nil {
			return err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("typedclass: %s: field %q: %w", in.shape.name, k, err)
		}
		buf.Write(vb)
		return nil
	}
	for i, f := range in.shape.fields {
		if err := write(f.Name, in.values[i]); err != nil {
			return nil, err
		}
	}
	for _, k := range slices.Sorted(maps.Keys(in.extra)) {
		if err := write(k, in.extra[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
