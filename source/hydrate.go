package source

import (
	tc "github.com/reoring/typedclass"
)

// Hydrate returns a copy of values in which every object sitting where shape
// expects a record (directly, or inside Optional, Union, Sequence, Map and
// Tuple types) has been constructed into a *typedclass.Instance of the
// expected shape. Values in any other position are left as they are, so the
// result still has to pass shape.New. A nested record that fails to construct
// is reported as *NestedError wrapping the construction error.
func Hydrate(shape *tc.Shape, values map[string]any) (map[string]any, error) {
	return hydrateRecord(shape, values, tc.Root())
}

// Construct hydrates values and constructs an instance of shape from them.
func Construct(shape *tc.Shape, values map[string]any) (*tc.Instance, error) {
	h, err := Hydrate(shape, values)
	if err != nil {
		return nil, err
	}
	return shape.New(h)
}

func hydrateRecord(shape *tc.Shape, values map[string]any, p tc.PathRef) (map[string]any, error) {
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[k] = v
	}
	for _, f := range shape.Fields() {
		v, ok := values[f.Name]
		if !ok || !needsHydration(f.Type) {
			continue
		}
		h, err := hydrate(f.Type, v, p.Field(f.Name))
		if err != nil {
			return nil, err
		}
		out[f.Name] = h
	}
	return out, nil
}

func hydrate(t *tc.Type, v any, p tc.PathRef) (any, error) {
	switch t.Kind() {
	case tc.KindRecord:
		m, ok := v.(map[string]any)
		if !ok {
			return v, nil
		}
		inner, err := hydrateRecord(t.Shape(), m, p)
		if err != nil {
			return nil, err
		}
		in, err := t.Shape().New(inner)
		if err != nil {
			return nil, &NestedError{Path: p.Pointer(), Err: err}
		}
		return in, nil
	case tc.KindOptional:
		if tc.IsNone(v) {
			return v, nil
		}
		return hydrate(t.Elem(), v, p)
	case tc.KindUnion:
		return hydrateUnion(t, v, p)
	case tc.KindSequence:
		arr, ok := v.([]any)
		if !ok {
			return v, nil
		}
		out := make([]any, len(arr))
		for i, e := range arr {
			h, err := hydrate(t.Elem(), e, p.Index(i))
			if err != nil {
				return nil, err
			}
			out[i] = h
		}
		return out, nil
	case tc.KindTuple:
		arr, ok := v.([]any)
		items := t.Items()
		if !ok || len(arr) != len(items) {
			return v, nil
		}
		out := make([]any, len(arr))
		for i, e := range arr {
			h, err := hydrate(items[i], e, p.Index(i))
			if err != nil {
				return nil, err
			}
			out[i] = h
		}
		return out, nil
	case tc.KindMap:
		m, ok := v.(map[string]any)
		if !ok {
			return v, nil
		}
		out := make(map[string]any, len(m))
		for k, e := range m {
			h, err := hydrate(t.Elem(), e, p.Field(k))
			if err != nil {
				return nil, err
			}
			out[k] = h
		}
		return out, nil
	}
	return v, nil
}

// hydrateUnion keeps first-match order: an alternative that already accepts
// the raw value wins over a later record alternative.
func hydrateUnion(t *tc.Type, v any, p tc.PathRef) (any, error) {
	var firstErr error
	for _, alt := range t.Alternatives() {
		if tc.Conforms(alt, v) {
			return v, nil
		}
		if !needsHydration(alt) {
			continue
		}
		h, err := hydrate(alt, v, p)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if tc.Conforms(alt, h) {
			return h, nil
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return v, nil
}

func needsHydration(t *tc.Type) bool {
	switch t.Kind() {
	case tc.KindRecord:
		return true
	case tc.KindOptional, tc.KindSequence, tc.KindMap:
		return needsHydration(t.Elem())
	case tc.KindUnion, tc.KindTuple:
		for _, a := range t.Alternatives() {
			if needsHydration(a) {
				return true
			}
		}
	}
	return false
}
