package typedclass

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

var emptyStructType = reflect.TypeFor[struct{}]()

// Match reports whether v conforms to t. It returns nil on success and a
// *Mismatch describing the first failure otherwise. t must be well formed
// (see Type.Validate).
func Match(t *Type, v any) error {
	if m := match(t, v); m != nil {
		return m
	}
	return nil
}

// Conforms is the boolean form of Match.
func Conforms(t *Type, v any) bool { return match(t, v) == nil }

func match(t *Type, v any) *Mismatch {
	switch t.kind {
	case KindAny:
		return nil
	case KindPlain:
		if IsNone(v) || !reflect.TypeOf(v).AssignableTo(t.rtype) {
			return typeMismatch(t, v)
		}
		return nil
	case KindUnion:
		return matchUnion(t, v)
	case KindOptional:
		if IsNone(v) {
			return nil
		}
		if m := match(t.elem, v); m != nil {
			// An element failure inside the right container kind says more
			// than "expected Optional[...]".
			if m.Path != "/" {
				return m
			}
			if m.Code == CodeInvalidUnion {
				m.Alternatives = append(m.Alternatives, "None")
				m.Expected = strings.Join(m.Alternatives, ", ")
				return m
			}
			return typeMismatch(t, v)
		}
		return nil
	case KindLiteral:
		return matchLiteral(t, v)
	case KindSubtype:
		rt, ok := v.(reflect.Type)
		if !ok || rt == nil || !rt.AssignableTo(t.rtype) {
			m := typeMismatch(t, v)
			if ok && rt != nil {
				m.Actual = "Type[" + rt.String() + "]"
			}
			return m
		}
		return nil
	case KindSequence:
		return matchSequence(t, v)
	case KindSet:
		return matchSet(t, v)
	case KindMap:
		return matchMap(t, v)
	case KindTuple:
		return matchTuple(t, v)
	case KindRecord:
		inst, ok := v.(*Instance)
		if !ok || inst == nil || !inst.shape.Extends(t.shape) {
			return typeMismatch(t, v)
		}
		return nil
	}
	return typeMismatch(t, v)
}

func typeMismatch(t *Type, v any) *Mismatch {
	return &Mismatch{Path: "/", Code: CodeInvalidType, Expected: t.String(), Actual: describeType(v)}
}

func matchUnion(t *Type, v any) *Mismatch {
	for _, alt := range t.alts {
		if match(alt, v) == nil {
			return nil
		}
	}
	names := make([]string, len(t.alts))
	for i, alt := range t.alts {
		names[i] = alt.String()
	}
	return &Mismatch{Path: "/", Code: CodeInvalidUnion, Expected: strings.Join(names, ", "), Actual: describeType(v), Alternatives: names}
}

func matchLiteral(t *Type, v any) *Mismatch {
	cmpOK := v == nil || reflect.TypeOf(v).Comparable()
	for _, lit := range t.literals {
		if cmpOK && literalEqual(lit, v) {
			return nil
		}
	}
	names := make([]string, len(t.literals))
	for i, lit := range t.literals {
		names[i] = formatValue(lit)
	}
	return &Mismatch{Path: "/", Code: CodeInvalidLiteral, Expected: strings.Join(names, ", "), Actual: formatValue(v), Alternatives: names}
}

func literalEqual(lit, v any) bool {
	if IsNone(lit) || IsNone(v) {
		return IsNone(lit) && IsNone(v)
	}
	return safeEqual(lit, v)
}

// safeEqual is a == b, false when the comparison would panic on an
// uncomparable value held in an interface field.
func safeEqual(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

// dynamicallyComparable reports whether v == v can be evaluated. A struct of
// comparable type still panics when an interface field holds a slice.
func dynamicallyComparable(v any) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	_ = v == v
	return true
}

func matchSequence(t *Type, v any) *Mismatch {
	rv, ok := sequenceValue(v)
	if !ok {
		return typeMismatch(t, v)
	}
	for i := 0; i < rv.Len(); i++ {
		if m := match(t.elem, rv.Index(i).Interface()); m != nil {
			return elementMismatch(m, strconv.Itoa(i))
		}
	}
	return nil
}

func matchTuple(t *Type, v any) *Mismatch {
	rv, ok := sequenceValue(v)
	if !ok {
		return typeMismatch(t, v)
	}
	if rv.Len() != len(t.alts) {
		return &Mismatch{Path: "/", Code: CodeInvalidLength, Expected: strconv.Itoa(len(t.alts)), Actual: strconv.Itoa(rv.Len())}
	}
	for i, item := range t.alts {
		if m := match(item, rv.Index(i).Interface()); m != nil {
			return elementMismatch(m, strconv.Itoa(i))
		}
	}
	return nil
}

func matchSet(t *Type, v any) *Mismatch {
	rv := reflect.ValueOf(v)
	if IsNone(v) || rv.Kind() != reflect.Map {
		return typeMismatch(t, v)
	}
	if et := rv.Type().Elem(); et != emptyStructType && et.Kind() != reflect.Bool {
		return typeMismatch(t, v)
	}
	isBool := rv.Type().Elem().Kind() == reflect.Bool
	for _, e := range sortedEntries(rv) {
		if isBool && !e.val.Bool() {
			continue
		}
		if m := match(t.elem, e.key.Interface()); m != nil {
			return elementMismatch(m, keySegment(e.key))
		}
	}
	return nil
}

func matchMap(t *Type, v any) *Mismatch {
	rv := reflect.ValueOf(v)
	if IsNone(v) || rv.Kind() != reflect.Map {
		return typeMismatch(t, v)
	}
	for _, e := range sortedEntries(rv) {
		seg := keySegment(e.key)
		if m := match(t.key, e.key.Interface()); m != nil {
			return elementMismatch(m, seg)
		}
		if m := match(t.elem, e.val.Interface()); m != nil {
			return elementMismatch(m, seg)
		}
	}
	return nil
}

func sequenceValue(v any) (reflect.Value, bool) {
	if IsNone(v) {
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv, true
	}
	return reflect.Value{}, false
}

// elementMismatch rebases a child failure under the element's path segment.
func elementMismatch(m *Mismatch, segment string) *Mismatch {
	m.Path = joinPointer(Root().Field(segment).Pointer(), m.Path)
	return m
}

func keySegment(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	return fmt.Sprint(k.Interface())
}

type mapEntry struct {
	key, val reflect.Value
}

// sortedEntries collects the entries of a map ordered by key so that the
// first reported failure is deterministic: numbers numerically, strings
// lexically, everything else by its printed form. Entries are read with
// MapRange because a NaN key can never be looked up again.
func sortedEntries(rv reflect.Value) []mapEntry {
	out := make([]mapEntry, 0, rv.Len())
	it := rv.MapRange()
	for it.Next() {
		out = append(out, mapEntry{key: it.Key(), val: it.Value()})
	}
	slices.SortStableFunc(out, func(a, b mapEntry) int { return compareKeys(a.key, b.key) })
	return out
}

func compareKeys(a, b reflect.Value) int {
	if a.Kind() == reflect.Interface {
		a = a.Elem()
	}
	if b.Kind() == reflect.Interface {
		b = b.Elem()
	}
	if a.IsValid() && b.IsValid() && a.Kind() == b.Kind() {
		switch a.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return cmp.Compare(a.Int(), b.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return cmp.Compare(a.Uint(), b.Uint())
		case reflect.Float32, reflect.Float64:
			return cmp.Compare(a.Float(), b.Float())
		case reflect.String:
			return cmp.Compare(a.String(), b.String())
		case reflect.Bool:
			return cmp.Compare(boolRank(a.Bool()), boolRank(b.Bool()))
		}
	}
	return cmp.Compare(keyString(a), keyString(b))
}

func keyString(v reflect.Value) string {
	if !v.IsValid() {
		return "<nil>"
	}
	x := v.Interface()
	return fmt.Sprintf("%T:%v", x, x)
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

