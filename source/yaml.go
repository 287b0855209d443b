package source

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	tc "github.com/reoring/typedclass"
)

// DecodeYAML reads records from a multi-document YAML stream. Each document is
// a mapping (one record) or a sequence of mappings. Scalars keep their YAML
// type: !!int becomes int, !!float float64, !!bool bool, !!timestamp
// time.Time and !!null typedclass.None. Duplicate keys are rejected with
// *DuplicateKeyError carrying both positions.
func DecodeYAML(r io.Reader) ([]map[string]any, error) {
	dec := yaml.NewDecoder(r)
	var out []map[string]any
	for doc := 0; ; doc++ {
		var root yaml.Node
		if err := dec.Decode(&root); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, fmt.Errorf("source: document %d: %w", doc, err)
		}
		v, err := nodeValue(&root, tc.Root())
		if err != nil {
			return nil, err
		}
		if tc.IsNone(v) {
			// empty document
			continue
		}
		recs, err := records(doc, v)
		if err != nil {
			return nil, err
		}
		out = append(out, recs...)
	}
}

// DecodeYAMLValue converts a single YAML document with the same rules as
// DecodeYAML.
func DecodeYAMLValue(r io.Reader) (any, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	return nodeValue(&root, tc.Root())
}

func nodeValue(n *yaml.Node, p tc.PathRef) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return tc.None, nil
		}
		return nodeValue(n.Content[0], p)
	case yaml.AliasNode:
		return nodeValue(n.Alias, p)
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		first := make(map[string][2]int, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			key := k.Value
			if pos, dup := first[key]; dup {
				return nil, &DuplicateKeyError{Path: p.Pointer(), Key: key, FirstLine: pos[0], FirstCol: pos[1], Line: k.Line, Col: k.Column}
			}
			first[key] = [2]int{k.Line, k.Column}
			val, err := nodeValue(v, p.Field(key))
			if err != nil {
				return nil, err
			}
			m[key] = val
		}
		return m, nil
	case yaml.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for i, c := range n.Content {
			v, err := nodeValue(c, p.Index(i))
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.ScalarNode:
		return scalarValue(n, p)
	}
	return nil, fmt.Errorf("source: at %s: unsupported YAML node at line %d", p.Pointer(), n.Line)
}

func scalarValue(n *yaml.Node, p tc.PathRef) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return tc.None, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, fmt.Errorf("source: at %s: %w", p.Pointer(), err)
		}
		return b, nil
	case "!!int":
		var i int
		if err := n.Decode(&i); err == nil {
			return i, nil
		}
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("source: at %s: integer %s out of range", p.Pointer(), n.Value)
		}
		return f, nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, fmt.Errorf("source: at %s: %w", p.Pointer(), err)
		}
		return f, nil
	case "!!timestamp":
		var t time.Time
		if err := n.Decode(&t); err == nil {
			return t, nil
		}
		return n.Value, nil
	}
	return n.Value, nil
}
