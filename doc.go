// Package typedclass enforces declared field types on records at construction time.
//
// It provides:
//
// - Type specifications built from explicit constructors (Plain, Union, Optional, Literal,
//   Subtype, SequenceOf, SetOf, MapOf, TupleOf, RecordOf, Any)
// - A pure recursive matcher (Match/Conforms) reporting the first mismatch with a JSON Pointer
// - Record shapes (Declare) and all-or-nothing construction (Shape.New) with typed errors
// - A collect-mode check (Shape.Validate) returning Issues with stable codes
// - JSON Schema projection of shapes and types
//
// Design policy:
// - Keep only public APIs in the root package; builders live under dsl/, type expressions
//   under typeexpr/, file loading under shapefile/ and input decoding under source/.
// - Types and shapes are immutable once declared and shared read-only.
// - Values are never converted: a value conforms or it does not.
//
// Typical usage:
//
//	user := typedclass.MustDeclare("User", []typedclass.Field{
//		{Name: "id", Type: typedclass.PlainOf[int]()},
//		{Name: "name", Type: typedclass.PlainOf[string]()},
//		{Name: "email", Type: typedclass.Optional(typedclass.PlainOf[string]()), HasDefault: true, Default: typedclass.None},
//	})
//	u, err := user.New(map[string]any{"id": 1, "name": "foobar"})
//	// u.String() == `User(id=1, name="foobar", email=None)`
//
//	_, err = user.New(map[string]any{"id": "1", "name": "foobar"})
//	// err is *typedclass.ValidationError: field "id": expected int, got string
package typedclass
