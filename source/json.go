package source

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	tc "github.com/reoring/typedclass"
)

// DecodeJSON reads records from r. The stream may hold a single object, an
// array of objects, or several such values one after another (NDJSON).
// Numbers without a fraction or exponent become int (float64 when they do not
// fit), other numbers float64; null becomes typedclass.None. Duplicate keys
// are rejected with *DuplicateKeyError.
func DecodeJSON(r io.Reader) ([]map[string]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	jr := &jsonReader{dec: dec}
	var out []map[string]any
	for doc := 0; ; doc++ {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("source: document %d: %w", doc, err)
		}
		v, err := jr.fromToken(tok, tc.Root())
		if err != nil {
			return nil, err
		}
		recs, err := records(doc, v)
		if err != nil {
			return nil, err
		}
		out = append(out, recs...)
	}
}

// DecodeJSONValue reads exactly one JSON value with the same conversions as
// DecodeJSON.
func DecodeJSONValue(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	jr := &jsonReader{dec: dec}
	v, err := jr.value(tc.Root())
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("source: unexpected data after the first JSON value")
	}
	return v, nil
}

type jsonReader struct {
	dec *json.Decoder
}

func (r *jsonReader) value(p tc.PathRef) (any, error) {
	tok, err := r.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("source: at %s: %w", p.Pointer(), err)
	}
	return r.fromToken(tok, p)
}

func (r *jsonReader) fromToken(tok any, p tc.PathRef) (any, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return r.object(p)
		case '[':
			return r.array(p)
		}
		return nil, fmt.Errorf("source: at %s: unexpected %q", p.Pointer(), rune(v))
	case json.Number:
		return normalizeNumber(v), nil
	case string, bool, float64:
		return v, nil
	case nil:
		return tc.None, nil
	}
	return nil, fmt.Errorf("source: at %s: unexpected token %v", p.Pointer(), tok)
}

func (r *jsonReader) object(p tc.PathRef) (map[string]any, error) {
	out := map[string]any{}
	for r.dec.More() {
		kt, err := r.dec.Token()
		if err != nil {
			return nil, fmt.Errorf("source: at %s: %w", p.Pointer(), err)
		}
		key, ok := kt.(string)
		if !ok {
			return nil, fmt.Errorf("source: at %s: object key is %T", p.Pointer(), kt)
		}
		if _, dup := out[key]; dup {
			return nil, &DuplicateKeyError{Path: p.Pointer(), Key: key}
		}
		v, err := r.value(p.Field(key))
		if err != nil {
			return nil, err
		}
		out[key] = v
	}
	// closing '}'
	if _, err := r.dec.Token(); err != nil {
		return nil, fmt.Errorf("source: at %s: %w", p.Pointer(), err)
	}
	return out, nil
}

func (r *jsonReader) array(p tc.PathRef) ([]any, error) {
	out := []any{}
	for i := 0; r.dec.More(); i++ {
		v, err := r.value(p.Index(i))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if _, err := r.dec.Token(); err != nil {
		return nil, fmt.Errorf("source: at %s: %w", p.Pointer(), err)
	}
	return out, nil
}

func normalizeNumber(n json.Number) any {
	s := string(n)
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.Atoi(s); err == nil {
			return i
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	return f
}

// records splits one top-level value into records.
func records(doc int, v any) ([]map[string]any, error) {
	switch t := v.(type) {
	case map[string]any:
		return []map[string]any{t}, nil
	case []any:
		out := make([]map[string]any, 0, len(t))
		for i, e := range t {
			m, ok := e.(map[string]any)
			if !ok {
				return nil, &DocumentError{Document: doc, Element: i, Found: kindOf(e)}
			}
			out = append(out, m)
		}
		return out, nil
	}
	return nil, &DocumentError{Document: doc, Element: -1, Found: kindOf(v)}
}

func kindOf(v any) string {
	if tc.IsNone(v) {
		return "null"
	}
	switch v.(type) {
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case int, int64, float64:
		return "a number"
	case []any:
		return "a list"
	case map[string]any:
		return "an object"
	}
	return fmt.Sprintf("%T", v)
}
