// Package dsl is a builder layer over typedclass.Declare.
//
// Overview
//   - Record(name).Field(...).Default(...).Build() declares a shape in one chain.
//   - Int(), String(), Optional(...), List(...), Map(...) and friends shorten
//     type construction.
//   - RecordFromStruct[T]() derives a shape from a Go struct, and Bind[T]
//     decodes a constructed instance back into that struct.
//
// Example
//
//	user := dsl.Record("User").
//	    Field("id", dsl.Int()).
//	    Field("name", dsl.String()).
//	    Field("email", dsl.Optional(dsl.String())).Default(typedclass.None).
//	    MustBuild()
//
//	u, err := user.New(map[string]any{"id": 1, "name": "foobar"})
//
//	type User struct {
//	    ID    int     `json:"id"`
//	    Name  string  `json:"name"`
//	    Email *string `json:"email"`
//	}
//	v, err := dsl.Bind[User](u)
package dsl
