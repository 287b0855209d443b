package shapefile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"

	tc "github.com/reoring/typedclass"
	"github.com/reoring/typedclass/source"
	"github.com/reoring/typedclass/typeexpr"
)

// Format selects the shape file syntax.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "yaml"
}

// ParseFormat accepts "yaml", "yml" and "json".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return 0, fmt.Errorf("shapefile: unknown format %q", s)
}

// FormatOf guesses the format from a file extension; anything but .json is YAML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Option configures Load.
type Option func(*config)

type config struct {
	reg *typeexpr.Registry
}

// WithRegistry resolves type names through reg instead of a fresh registry
// holding only the built-in names. Loaded records are registered into it.
func WithRegistry(reg *typeexpr.Registry) Option {
	return func(c *config) { c.reg = reg }
}

// Set is the result of loading a shape file: sealed shapes in file order.
type Set struct {
	shapes map[string]*tc.Shape
	order  []string
	reg    *typeexpr.Registry
}

// Shape returns the record shape declared under name.
func (s *Set) Shape(name string) (*tc.Shape, bool) {
	sh, ok := s.shapes[name]
	return sh, ok
}

// Names returns the record names in declaration order.
func (s *Set) Names() []string { return append([]string(nil), s.order...) }

// Registry returns the registry the shapes were resolved and registered in.
func (s *Set) Registry() *typeexpr.Registry { return s.reg }

// LoadFile reads a shape file, choosing the format from its extension.
func LoadFile(path string, opts ...Option) (*Set, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("shapefile: %w", err)
	}
	set, err := Load(bytes.NewReader(b), FormatOf(path), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// Load reads a shape document and declares its records in order. A record
// may extend or reference only records declared before it.
func Load(r io.Reader, format Format, opts ...Option) (*Set, error) {
	doc, err := Decode(r, format)
	if err != nil {
		return nil, err
	}
	return Build(doc, opts...)
}

// Decode reads a shape document without declaring anything.
func Decode(r io.Reader, format Format) (*Document, error) {
	var (
		raw any
		err error
	)
	switch format {
	case FormatJSON:
		raw, err = source.DecodeJSONValue(r)
	default:
		raw, err = source.DecodeYAMLValue(r)
	}
	if err != nil {
		return nil, fmt.Errorf("shapefile: %w", err)
	}
	var doc Document
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &doc,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, fmt.Errorf("shapefile: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("shapefile: %w", err)
	}
	return &doc, nil
}

// Build declares the records of doc.
func Build(doc *Document, opts ...Option) (*Set, error) {
	cfg := config{}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.reg == nil {
		cfg.reg = typeexpr.NewRegistry()
	}
	set := &Set{shapes: make(map[string]*tc.Shape, len(doc.Records)), reg: cfg.reg}
	for i, rd := range doc.Records {
		if rd.Name == "" {
			return nil, fmt.Errorf("shapefile: record %d has no name", i)
		}
		shape, err := declare(rd, set)
		if err != nil {
			return nil, fmt.Errorf("shapefile: record %q: %w", rd.Name, err)
		}
		if err := cfg.reg.RegisterShape(shape); err != nil {
			return nil, fmt.Errorf("shapefile: record %q: %w", rd.Name, err)
		}
		set.shapes[rd.Name] = shape
		set.order = append(set.order, rd.Name)
	}
	return set, nil
}

func declare(rd RecordDecl, set *Set) (*tc.Shape, error) {
	var opts []tc.DeclareOption
	if rd.Extends != "" {
		base, ok := set.shapes[rd.Extends]
		if !ok {
			return nil, fmt.Errorf("extends unknown record %q", rd.Extends)
		}
		opts = append(opts, tc.WithBase(base))
	}
	if rd.Unknown != "" {
		p, err := parsePolicy(rd.Unknown)
		if err != nil {
			return nil, err
		}
		opts = append(opts, tc.WithUnknown(p))
	}
	fields := make([]tc.Field, 0, len(rd.Fields))
	for _, fd := range rd.Fields {
		t, err := set.reg.Parse(fd.Type)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", fd.Name, err)
		}
		f := tc.Field{Name: fd.Name, Type: t}
		switch d := fd.Default.(type) {
		case nil:
		case []any, map[string]any:
			f.DefaultFunc = func() any { return cloneValue(d) }
		default:
			f.HasDefault, f.Default = true, d
		}
		fields = append(fields, f)
	}
	return tc.Declare(rd.Name, fields, opts...)
}

func parsePolicy(s string) (tc.UnknownPolicy, error) {
	switch strings.ToLower(s) {
	case "strict":
		return tc.UnknownStrict, nil
	case "strip", "ignore":
		return tc.UnknownStrip, nil
	case "passthrough":
		return tc.UnknownPassthrough, nil
	}
	return 0, fmt.Errorf("unknown policy %q (want strict, strip or passthrough)", s)
}

// cloneValue copies decoded containers so that each construction gets its
// own default.
func cloneValue(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = cloneValue(t[i])
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	}
	return v
}
