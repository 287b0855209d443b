package dsl

import (
	tc "github.com/reoring/typedclass"
)

type recordBuilder struct {
	name       string
	fields     []tc.Field
	base       *tc.Shape
	unknown    tc.UnknownPolicy
	unknownSet bool
}

type fieldStep struct {
	b   *recordBuilder
	idx int
}

// Record starts declaring a record shape. Unknown names are rejected unless
// another policy is chosen (or inherited through Extends).
func Record(name string) *recordBuilder {
	return &recordBuilder{name: name, unknown: tc.UnknownStrict}
}

// Field appends a field. Without Default or DefaultFunc the field is required.
func (b *recordBuilder) Field(name string, t *tc.Type) *fieldStep {
	b.fields = append(b.fields, tc.Field{Name: name, Type: t})
	return &fieldStep{b: b, idx: len(b.fields) - 1}
}

// Extends makes the record inherit base's fields and unknown policy.
func (b *recordBuilder) Extends(base *tc.Shape) *recordBuilder {
	b.base = base
	return b
}

// UnknownStrict rejects unknown names at construction.
func (b *recordBuilder) UnknownStrict() *recordBuilder {
	b.unknown, b.unknownSet = tc.UnknownStrict, true
	return b
}

// UnknownStrip silently drops unknown names.
func (b *recordBuilder) UnknownStrip() *recordBuilder {
	b.unknown, b.unknownSet = tc.UnknownStrip, true
	return b
}

// UnknownPassthrough keeps unknown names unchecked in Instance.Extra.
func (b *recordBuilder) UnknownPassthrough() *recordBuilder {
	b.unknown, b.unknownSet = tc.UnknownPassthrough, true
	return b
}

// Build seals the record. Declaration problems are returned as
// *typedclass.DeclarationError.
func (b *recordBuilder) Build() (*tc.Shape, error) {
	var opts []tc.DeclareOption
	if b.base != nil {
		opts = append(opts, tc.WithBase(b.base))
	}
	if b.unknownSet {
		opts = append(opts, tc.WithUnknown(b.unknown))
	}
	return tc.Declare(b.name, b.fields, opts...)
}

// MustBuild is like Build but panics on error.
func (b *recordBuilder) MustBuild() *tc.Shape {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// Default sets a default for the current field. The value is used as is and
// is not matched against the field type; nil means None.
func (f *fieldStep) Default(v any) *recordBuilder {
	fd := &f.b.fields[f.idx]
	fd.Default, fd.HasDefault, fd.DefaultFunc = v, true, nil
	return f.b
}

// DefaultFunc sets a default factory, called once per construction that
// omits the field. Use it for mutable defaults such as slices and maps.
func (f *fieldStep) DefaultFunc(fn func() any) *recordBuilder {
	fd := &f.b.fields[f.idx]
	fd.Default, fd.HasDefault, fd.DefaultFunc = nil, false, fn
	return f.b
}

// Required clears any default set for the current field.
func (f *fieldStep) Required() *recordBuilder {
	fd := &f.b.fields[f.idx]
	fd.Default, fd.HasDefault, fd.DefaultFunc = nil, false, nil
	return f.b
}

func (f *fieldStep) Field(name string, t *tc.Type) *fieldStep { return f.b.Field(name, t) }
func (f *fieldStep) Extends(base *tc.Shape) *recordBuilder    { return f.b.Extends(base) }
func (f *fieldStep) UnknownStrict() *recordBuilder            { return f.b.UnknownStrict() }
func (f *fieldStep) UnknownStrip() *recordBuilder             { return f.b.UnknownStrip() }
func (f *fieldStep) UnknownPassthrough() *recordBuilder       { return f.b.UnknownPassthrough() }
func (f *fieldStep) Build() (*tc.Shape, error)                { return f.b.Build() }
func (f *fieldStep) MustBuild() *tc.Shape                     { return f.b.MustBuild() }
