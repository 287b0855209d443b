package typeexpr

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	tc "github.com/reoring/typedclass"
)

// Registry resolves the plain names used in type expressions. It is safe for
// concurrent use.
type Registry struct {
	mu    sync.RWMutex
	names map[string]*tc.Type
}

func builtins() map[string]*tc.Type {
	return map[string]*tc.Type{
		"int":      tc.PlainOf[int](),
		"int64":    tc.PlainOf[int64](),
		"float":    tc.PlainOf[float64](),
		"float64":  tc.PlainOf[float64](),
		"str":      tc.PlainOf[string](),
		"string":   tc.PlainOf[string](),
		"bool":     tc.PlainOf[bool](),
		"bytes":    tc.PlainOf[[]byte](),
		"datetime": tc.PlainOf[time.Time](),
		"duration": tc.PlainOf[time.Duration](),
		"number":   tc.Union(tc.PlainOf[int](), tc.PlainOf[float64]()),
		"Any":      tc.Any(),
		"any":      tc.Any(),
		"None":     tc.Literal(tc.None),
	}
}

// NewRegistry returns a registry holding the built-in names.
func NewRegistry() *Registry { return &Registry{names: builtins()} }

// Register binds name to t. Built-in names and earlier registrations cannot
// be replaced.
func (r *Registry) Register(name string, t *tc.Type) error {
	if name == "" {
		return fmt.Errorf("typeexpr: register: empty name")
	}
	if _, generic := generics[strings.ToLower(name)]; generic {
		return fmt.Errorf("typeexpr: register %q: name is reserved", name)
	}
	if err := t.Validate(); err != nil {
		return fmt.Errorf("typeexpr: register %q: %w", name, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.names[name]; dup {
		return fmt.Errorf("typeexpr: register %q: name already defined", name)
	}
	r.names[name] = t
	return nil
}

// RegisterShape makes a record shape available under its name.
func (r *Registry) RegisterShape(s *tc.Shape) error { return r.Register(s.Name(), tc.RecordOf(s)) }

// RegisterGo makes Go type T available under name as a plain type.
func RegisterGo[T any](r *Registry, name string) error {
	return r.Register(name, tc.Plain(reflect.TypeFor[T]()))
}

// Lookup returns the type bound to name.
func (r *Registry) Lookup(name string) (*tc.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.names[name]
	return t, ok
}

var defaultRegistry = NewRegistry()

// Parse parses expr against the built-in names.
func Parse(expr string) (*tc.Type, error) { return defaultRegistry.Parse(expr) }

// MustParse is like Parse but panics on error.
func MustParse(expr string) *tc.Type {
	t, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return t
}
