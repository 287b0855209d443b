package dsl

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"

	tc "github.com/reoring/typedclass"
)

// Bind decodes a constructed instance into struct type T. Keys resolve as in
// RecordFromStruct; nested instances decode into nested structs and None
// leaves the target at its zero value. Values are assigned, never coerced:
// an int field cannot receive a string.
func Bind[T any](in *tc.Instance) (T, error) {
	var out T
	if in == nil {
		return out, fmt.Errorf("dsl: bind %T: nil instance", out)
	}
	rt := reflect.TypeFor[T]()
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return out, fmt.Errorf("dsl: bind %T: target must be a struct", out)
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: tc.TagName,
		Result:  &out,
		MatchName: func(mapKey, fieldName string) bool {
			return mapKey == fieldName
		},
	})
	if err != nil {
		return out, fmt.Errorf("dsl: bind %T: %w", out, err)
	}
	if err := dec.Decode(rekey(in.Map(), rt)); err != nil {
		return out, fmt.Errorf("dsl: bind %s into %T: %w", in.Shape().Name(), out, err)
	}
	return out, nil
}

// MustBind is like Bind but panics on error.
func MustBind[T any](in *tc.Instance) T {
	v, err := Bind[T](in)
	if err != nil {
		panic(err)
	}
	return v
}

// rekey rewrites the external keys of v into the names mapstructure matches
// for rt: the typedclass tag name when set, else the Go field name. Each
// struct type resolves its own keys; keys naming no field are dropped.
func rekey(v any, rt reflect.Type) any {
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	switch rt.Kind() {
	case reflect.Struct:
		m, ok := v.(map[string]any)
		if !ok {
			return v
		}
		out := make(map[string]any, len(m))
		for i := 0; i < rt.NumField(); i++ {
			sf := rt.Field(i)
			if !sf.IsExported() {
				continue
			}
			key := tc.ResolveStructKey(sf)
			if key == "-" {
				continue
			}
			fv, ok := m[key]
			if !ok {
				continue
			}
			target := tagName(sf)
			if target == "" {
				target = sf.Name
			}
			out[target] = rekey(fv, sf.Type)
		}
		return out
	case reflect.Slice, reflect.Array:
		arr, ok := v.([]any)
		if !ok {
			return v
		}
		out := make([]any, len(arr))
		for i, e := range arr {
			out[i] = rekey(e, rt.Elem())
		}
		return out
	case reflect.Map:
		m, ok := v.(map[string]any)
		if !ok {
			return v
		}
		out := make(map[string]any, len(m))
		for k, e := range m {
			out[k] = rekey(e, rt.Elem())
		}
		return out
	}
	return v
}

func tagName(sf reflect.StructField) string {
	v, ok := sf.Tag.Lookup(tc.TagName)
	if !ok {
		return ""
	}
	name, _, _ := strings.Cut(v, ",")
	return strings.TrimSpace(name)
}
