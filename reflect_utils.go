package typedclass

import (
	"reflect"
	"strings"
)

// TagName is the struct tag read by struct-derived shapes and struct decoding.
const TagName = "typedclass"

// ResolveStructKey applies the repository-wide rule to resolve a struct field's
// external key used by struct-derived shapes and instance decoding.
// Priority: typedclass:"name" > json tag name > field name; "-" disables the field.
func ResolveStructKey(sf reflect.StructField) string {
	if gt, ok := sf.Tag.Lookup(TagName); ok {
		name, _, _ := strings.Cut(gt, ",")
		if name = strings.TrimSpace(name); name != "" {
			return name
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			if jt[:i] != "" {
				return jt[:i]
			}
			return sf.Name
		}
		return jt
	}
	return sf.Name
}

// StructTagHas reports whether the typedclass tag of sf lists opt after the
// name, as in `typedclass:"email,optional"`.
func StructTagHas(sf reflect.StructField, opt string) bool {
	gt, ok := sf.Tag.Lookup(TagName)
	if !ok {
		return false
	}
	_, rest, _ := strings.Cut(gt, ",")
	for _, p := range strings.Split(rest, ",") {
		if strings.TrimSpace(p) == opt {
			return true
		}
	}
	return false
}
