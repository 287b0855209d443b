package typedclass

import (
	"fmt"
	"reflect"
	"strconv"
)

type noneType struct{}

func (noneType) String() string { return "None" }

// None is the absence sentinel. It is distinct from every real value,
// including zero numbers, empty strings and typed nil pointers.
var None any = noneType{}

// IsNone reports whether v is the absence sentinel. A nil interface counts as
// absence too.
func IsNone(v any) bool {
	if v == nil {
		return true
	}
	_, ok := v.(noneType)
	return ok
}

// describeType renders the runtime type of v for error messages.
func describeType(v any) string {
	if IsNone(v) {
		return "None"
	}
	if inst, ok := v.(*Instance); ok && inst != nil {
		return inst.shape.name
	}
	return reflect.TypeOf(v).String()
}

// formatValue renders v the way String() on an Instance prints field values.
func formatValue(v any) string {
	if IsNone(v) {
		return "None"
	}
	switch t := v.(type) {
	case string:
		return strconv.Quote(t)
	case *Instance:
		if t == nil {
			return "<nil>"
		}
		return t.String()
	case reflect.Type:
		return "Type[" + t.String() + "]"
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprintf("%v", v)
}

func (noneType) MarshalJSON() ([]byte, error) { return []byte("null"), nil }
