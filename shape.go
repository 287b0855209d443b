package typedclass

import (
	"fmt"
	"slices"

	"github.com/reoring/typedclass/i18n"
)

// Field declares one record field. A field is optional when it has a Default
// (HasDefault) or a DefaultFunc; defaults are trusted and never matched.
type Field struct {
	Name        string
	Type        *Type
	Default     any
	HasDefault  bool
	DefaultFunc func() any
}

// Optional reports whether the field may be omitted at construction.
func (f Field) Optional() bool { return f.HasDefault || f.DefaultFunc != nil }

func (f Field) defaultValue() any {
	var v any
	if f.DefaultFunc != nil {
		v = f.DefaultFunc()
	} else {
		v = f.Default
	}
	if IsNone(v) {
		return None
	}
	return v
}

// Shape is a sealed record kind: an ordered list of field declarations.
// A Shape never changes after Declare returns, so one Shape can serve
// concurrent constructions without locking.
type Shape struct {
	name    string
	fields  []Field
	index   map[string]int
	base    *Shape
	unknown UnknownPolicy
}

// DeclareOption configures Declare.
type DeclareOption func(*declareConfig)

type declareConfig struct {
	base       *Shape
	unknown    UnknownPolicy
	unknownSet bool
}

// WithBase makes the declared shape extend base: base fields come first, and a
// field declared again replaces the base declaration at the same position.
// Instances of the new shape conform to RecordOf(base).
func WithBase(base *Shape) DeclareOption {
	return func(c *declareConfig) { c.base = base }
}

// WithUnknown sets the unknown-field policy. The default is UnknownStrict, or
// the base shape's policy when WithBase is used.
func WithUnknown(p UnknownPolicy) DeclareOption {
	return func(c *declareConfig) { c.unknown = p; c.unknownSet = true }
}

// Declare seals a record shape. Every field type is checked for
// well-formedness here; problems are reported as *DeclarationError and never
// deferred to construction.
func Declare(name string, fields []Field, opts ...DeclareOption) (*Shape, error) {
	cfg := declareConfig{unknown: UnknownStrict}
	for _, o := range opts {
		o(&cfg)
	}
	if name == "" {
		return nil, &DeclarationError{Reason: "record name is empty"}
	}
	s := &Shape{name: name, base: cfg.base, unknown: cfg.unknown}
	if cfg.base != nil {
		s.fields = append(s.fields, cfg.base.fields...)
		if !cfg.unknownSet {
			s.unknown = cfg.base.unknown
		}
	}
	s.index = make(map[string]int, len(s.fields)+len(fields))
	for i, f := range s.fields {
		s.index[f.Name] = i
	}
	own := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return nil, &DeclarationError{Record: name, Reason: "field name is empty"}
		}
		if _, dup := own[f.Name]; dup {
			return nil, &DeclarationError{Record: name, Field: f.Name, Reason: "field declared more than once"}
		}
		own[f.Name] = struct{}{}
		if reason := f.Type.malformed(); reason != "" {
			return nil, &DeclarationError{Record: name, Field: f.Name, Reason: reason}
		}
		if f.HasDefault && f.DefaultFunc != nil {
			return nil, &DeclarationError{Record: name, Field: f.Name, Reason: "both a default value and a default function are set"}
		}
		if i, ok := s.index[f.Name]; ok {
			s.fields[i] = f
			continue
		}
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	return s, nil
}

// MustDeclare is like Declare but panics on error.
func MustDeclare(name string, fields []Field, opts ...DeclareOption) *Shape {
	s, err := Declare(name, fields, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Shape) Name() string   { return s.name }
func (s *Shape) String() string { return s.name }

// Base returns the shape this one extends, or nil.
func (s *Shape) Base() *Shape { return s.base }

// Unknown returns the unknown-field policy.
func (s *Shape) Unknown() UnknownPolicy { return s.unknown }

// Fields returns the field declarations in declaration order.
func (s *Shape) Fields() []Field { return slices.Clone(s.fields) }

// Field looks up a field declaration by name.
func (s *Shape) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Extends reports whether s is other or (transitively) declared with it as base.
func (s *Shape) Extends(other *Shape) bool {
	for cur := s; cur != nil; cur = cur.base {
		if cur == other {
			return true
		}
	}
	return false
}

// New constructs an instance from values keyed by field name. Fields are
// resolved in declaration order and the first failure aborts construction:
// *ValidationError for a nonconforming value, *MissingFieldError for an
// absent required field, then *UnexpectedFieldError for unknown names under
// UnknownStrict. No instance is returned on error.
func (s *Shape) New(values map[string]any) (*Instance, error) {
	inst := &Instance{
		shape:    s,
		values:   make([]any, len(s.fields)),
		presence: make([]Presence, len(s.fields)),
	}
	for i, f := range s.fields {
		v, ok := values[f.Name]
		if ok {
			if m := match(f.Type, v); m != nil {
				return nil, &ValidationError{Record: s.name, Field: f.Name, Expected: f.Type.String(), Actual: describeType(v), Mismatch: m}
			}
			inst.presence[i] = PresenceSupplied
			if IsNone(v) {
				v = None
				inst.presence[i] |= PresenceWasNone
			}
			inst.values[i] = v
			continue
		}
		if f.Optional() {
			inst.values[i] = f.defaultValue()
			inst.presence[i] = PresenceDefaultApplied
			continue
		}
		return nil, &MissingFieldError{Record: s.name, Field: f.Name}
	}
	unknown := s.unknownNames(values)
	if len(unknown) == 0 {
		return inst, nil
	}
	switch s.unknown {
	case UnknownStrip:
	case UnknownPassthrough:
		inst.extra = make(map[string]any, len(unknown))
		for _, k := range unknown {
			inst.extra[k] = values[k]
		}
	default:
		return nil, &UnexpectedFieldError{Record: s.name, Fields: unknown}
	}
	return inst, nil
}

// Validate checks values without constructing an instance and collects every
// problem instead of stopping at the first. It returns nil or Issues, ordered
// by field declaration and then by sorted unknown name.
func (s *Shape) Validate(values map[string]any) error {
	var iss Issues
	for _, f := range s.fields {
		p := Root().Field(f.Name)
		v, ok := values[f.Name]
		if ok {
			if m := match(f.Type, v); m != nil {
				ve := &ValidationError{Record: s.name, Field: f.Name, Expected: f.Type.String(), Actual: describeType(v), Mismatch: m}
				iss = AppendIssues(iss, ve.Issue())
			}
			continue
		}
		if !f.Optional() {
			iss = AppendIssues(iss, IssueAt(p, CodeRequired, i18n.T(CodeRequired, map[string]string{"field": fmt.Sprintf("%q", f.Name)}), nil))
		}
	}
	if s.unknown == UnknownStrict {
		if unknown := s.unknownNames(values); len(unknown) > 0 {
			ue := &UnexpectedFieldError{Record: s.name, Fields: unknown}
			iss = AppendIssues(iss, ue.Issues()...)
		}
	}
	if len(iss) == 0 {
		return nil
	}
	return iss
}

// unknownNames returns the sorted names in values that match no field.
func (s *Shape) unknownNames(values map[string]any) []string {
	if len(values) <= len(s.fields) {
		n := 0
		for k := range values {
			if _, ok := s.index[k]; ok {
				n++
			}
		}
		if n == len(values) {
			return nil
		}
	}
	var out []string
	for k := range values {
		if _, ok := s.index[k]; !ok {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}
