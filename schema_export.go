package typedclass

import (
	"reflect"

	js "github.com/reoring/typedclass/jsonschema"
)

// JSONSchema projects the shape into a JSON Schema object. Required lists the
// fields without defaults; additionalProperties follows the unknown policy
// (UnknownStrict => false).
func (s *Shape) JSONSchema() *js.Schema {
	out := &js.Schema{Title: s.name, Type: "object", Properties: make(map[string]*js.Schema, len(s.fields))}
	for _, f := range s.fields {
		fs := f.Type.JSONSchema()
		if f.HasDefault && !IsNone(f.Default) {
			fs.Default = f.Default
		}
		out.Properties[f.Name] = fs
		if !f.Optional() {
			out.Required = append(out.Required, f.Name)
		}
	}
	out.AdditionalProperties = s.unknown != UnknownStrict
	return out
}

// JSONSchema projects the type into JSON Schema. Go types without a JSON
// counterpart map to the empty (accept-all) schema.
func (t *Type) JSONSchema() *js.Schema {
	switch t.kind {
	case KindPlain:
		return plainSchema(t.rtype)
	case KindUnion:
		out := &js.Schema{AnyOf: make([]*js.Schema, 0, len(t.alts))}
		for _, a := range t.alts {
			out.AnyOf = append(out.AnyOf, a.JSONSchema())
		}
		return out
	case KindOptional:
		return &js.Schema{AnyOf: []*js.Schema{t.elem.JSONSchema(), {Type: "null"}}}
	case KindLiteral:
		out := &js.Schema{Enum: make([]any, 0, len(t.literals))}
		for _, v := range t.literals {
			if IsNone(v) {
				v = nil
			}
			out.Enum = append(out.Enum, v)
		}
		return out
	case KindSequence:
		return &js.Schema{Type: "array", Items: t.elem.JSONSchema()}
	case KindSet:
		return &js.Schema{Type: "array", Items: t.elem.JSONSchema(), UniqueItems: true}
	case KindMap:
		out := &js.Schema{Type: "object", AdditionalProperties: t.elem.JSONSchema()}
		if t.key.kind == KindLiteral {
			out.PropertyNames = t.key.JSONSchema()
		}
		return out
	case KindTuple:
		n := len(t.alts)
		out := &js.Schema{Type: "array", PrefixItems: make([]*js.Schema, 0, n), Items: false, MinItems: &n, MaxItems: &n}
		for _, a := range t.alts {
			out.PrefixItems = append(out.PrefixItems, a.JSONSchema())
		}
		return out
	case KindRecord:
		return t.shape.JSONSchema()
	}
	return &js.Schema{}
}

func plainSchema(rt reflect.Type) *js.Schema {
	if rt.PkgPath() == "time" && rt.Name() == "Time" {
		return &js.Schema{Type: "string", Format: "date-time"}
	}
	switch rt.Kind() {
	case reflect.Bool:
		return &js.Schema{Type: "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &js.Schema{Type: "integer"}
	case reflect.Float32, reflect.Float64:
		return &js.Schema{Type: "number"}
	case reflect.String:
		return &js.Schema{Type: "string"}
	case reflect.Slice:
		if rt.Elem().Kind() == reflect.Uint8 {
			return &js.Schema{Type: "string", Format: "byte"}
		}
		return &js.Schema{Type: "array", Items: plainSchema(rt.Elem())}
	case reflect.Array:
		n := rt.Len()
		return &js.Schema{Type: "array", Items: plainSchema(rt.Elem()), MinItems: &n, MaxItems: &n}
	case reflect.Map:
		return &js.Schema{Type: "object", AdditionalProperties: plainSchema(rt.Elem())}
	case reflect.Pointer:
		return plainSchema(rt.Elem())
	}
	return &js.Schema{}
}
