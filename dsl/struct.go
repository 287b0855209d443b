package dsl

import (
	"fmt"
	"reflect"

	tc "github.com/reoring/typedclass"
)

// RecordFromStruct derives a record shape from the exported fields of struct
// type T (or *T). Keys follow typedclass.ResolveStructKey. Field types map as:
//
//	*E              -> Optional[E], default None
//	[]byte          -> bytes
//	[]E, [N]E       -> Sequence[E]
//	map[K]V         -> Map[K, V]
//	interface{}     -> Any
//	other           -> plain
//
// The tag option `optional` (typedclass:"name,optional") gives a field the
// zero value of its Go type as default.
func RecordFromStruct[T any](opts ...tc.DeclareOption) (*tc.Shape, error) {
	rt := reflect.TypeFor[T]()
	if rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return nil, &tc.DeclarationError{Record: rt.String(), Reason: "RecordFromStruct requires a struct type"}
	}
	fields := make([]tc.Field, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := tc.ResolveStructKey(sf)
		if name == "-" || name == "" {
			continue
		}
		f := tc.Field{Name: name, Type: typeForGo(sf.Type)}
		switch {
		case sf.Type.Kind() == reflect.Pointer:
			f.HasDefault, f.Default = true, tc.None
		case tc.StructTagHas(sf, "optional"):
			zt := sf.Type
			f.DefaultFunc = func() any { return reflect.Zero(zt).Interface() }
		}
		fields = append(fields, f)
	}
	return tc.Declare(rt.Name(), fields, opts...)
}

// MustRecordFromStruct is like RecordFromStruct but panics on error.
func MustRecordFromStruct[T any](opts ...tc.DeclareOption) *tc.Shape {
	s, err := RecordFromStruct[T](opts...)
	if err != nil {
		panic(fmt.Errorf("dsl: %w", err))
	}
	return s
}

func typeForGo(rt reflect.Type) *tc.Type {
	switch rt.Kind() {
	case reflect.Pointer:
		return tc.Optional(typeForGo(rt.Elem()))
	case reflect.Slice:
		if rt.Elem().Kind() == reflect.Uint8 {
			return tc.Plain(rt)
		}
		return tc.SequenceOf(typeForGo(rt.Elem()))
	case reflect.Array:
		return tc.SequenceOf(typeForGo(rt.Elem()))
	case reflect.Map:
		return tc.MapOf(typeForGo(rt.Key()), typeForGo(rt.Elem()))
	case reflect.Interface:
		if rt.NumMethod() == 0 {
			return tc.Any()
		}
	}
	return tc.Plain(rt)
}
