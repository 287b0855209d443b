package dsl_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	tc "github.com/reoring/typedclass"
	g "github.com/reoring/typedclass/dsl"
)

type address struct {
	City string `json:"city"`
}

type account struct {
	ID       int               `json:"id"`
	Name     string            `typedclass:"display_name"`
	Email    *string           `json:"email,omitempty"`
	Tags     []string          `json:"tags" typedclass:"tags,optional"`
	Labels   map[string]string `json:"labels" typedclass:",optional"`
	Meta     any               `json:"meta" typedclass:",optional"`
	Internal string            `json:"-"`
	secret   string
}

func TestRecordFromStruct(t *testing.T) {
	s, err := g.RecordFromStruct[account]()
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if s.Name() != "account" {
		t.Fatalf("name = %q", s.Name())
	}
	got := map[string]string{}
	var order []string
	for _, f := range s.Fields() {
		got[f.Name] = f.Type.String()
		order = append(order, f.Name)
	}
	want := map[string]string{
		"id":           "int",
		"display_name": "string",
		"email":        "Optional[string]",
		"tags":         "Sequence[string]",
		"labels":       "Map[string, string]",
		"meta":         "Any",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("field types (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"id", "display_name", "email", "tags", "labels", "meta"}, order); diff != "" {
		t.Fatalf("field order (-want +got):\n%s", diff)
	}

	in, err := s.New(map[string]any{"id": 1, "display_name": "a"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := in.String(); got != `account(id=1, display_name="a", email=None, tags=[], labels=map[], meta=None)` {
		t.Fatalf("String() = %q", got)
	}
}

func TestRecordFromStruct_RejectsNonStruct(t *testing.T) {
	_, err := g.RecordFromStruct[int]()
	var de *tc.DeclarationError
	if !errors.As(err, &de) {
		t.Fatalf("expected DeclarationError, got %v", err)
	}
}

type person struct {
	Name  string    `json:"name"`
	Home  address   `json:"home"`
	Past  []address `json:"past"`
	Email *string   `json:"email"`
	Score float64   `typedclass:"score"`
}

func TestBind(t *testing.T) {
	addr := g.Record("Address").Field("city", g.String()).MustBuild()
	shape := g.Record("Person").
		Field("name", g.String()).
		Field("home", g.Instance(addr)).
		Field("past", g.List(g.Instance(addr))).DefaultFunc(func() any { return []any{} }).
		Field("email", g.Optional(g.String())).Default(tc.None).
		Field("score", g.Float64()).
		MustBuild()
	in := tc.MustNew(shape, map[string]any{
		"name":  "ann",
		"home":  tc.MustNew(addr, map[string]any{"city": "Kyoto"}),
		"past":  []any{tc.MustNew(addr, map[string]any{"city": "Nara"})},
		"score": 1.5,
	})
	p, err := g.Bind[person](in)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	want := person{Name: "ann", Home: address{City: "Kyoto"}, Past: []address{{City: "Nara"}}, Score: 1.5}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Fatalf("bound value (-want +got):\n%s", diff)
	}

	email := "ann@example.com"
	if err := in.Set("email", email); err != nil {
		t.Fatalf("set: %v", err)
	}
	p = g.MustBind[person](in)
	if p.Email == nil || *p.Email != email {
		t.Fatalf("email = %v", p.Email)
	}
}

func TestBind_RejectsNonStruct(t *testing.T) {
	in := tc.MustNew(g.Record("R").Field("a", g.Int()).MustBuild(), map[string]any{"a": 1})
	if _, err := g.Bind[map[string]any](in); err == nil {
		t.Fatalf("expected an error for a non-struct target")
	}
	if _, err := g.Bind[account](nil); err == nil {
		t.Fatalf("expected an error for a nil instance")
	}
}

type origin struct {
	Code string `json:"origin_code"`
}

type target struct {
	Code string `json:"target_code"`
}

type route struct {
	From origin `json:"from"`
	To   target `json:"to"`
}

func TestBind_KeysResolvePerStruct(t *testing.T) {
	from := g.Record("Origin").Field("origin_code", g.String()).Field("target_code", g.String()).Default("").MustBuild()
	to := g.Record("Target").Field("target_code", g.String()).Field("origin_code", g.String()).Default("").MustBuild()
	shape := g.Record("Route").Field("from", g.Instance(from)).Field("to", g.Instance(to)).MustBuild()

	in := tc.MustNew(shape, map[string]any{
		"from": tc.MustNew(from, map[string]any{"origin_code": "KIX", "target_code": "wrong"}),
		"to":   tc.MustNew(to, map[string]any{"target_code": "HND", "origin_code": "wrong"}),
	})
	r, err := g.Bind[route](in)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	want := route{From: origin{Code: "KIX"}, To: target{Code: "HND"}}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Fatalf("bound value (-want +got):\n%s", diff)
	}

	// The other struct's key alone must not fill the field.
	in = tc.MustNew(shape, map[string]any{
		"from": tc.MustNew(from, map[string]any{"origin_code": "", "target_code": "HND"}),
		"to":   tc.MustNew(to, map[string]any{"target_code": "", "origin_code": "KIX"}),
	})
	r = g.MustBind[route](in)
	if diff := cmp.Diff(route{}, r); diff != "" {
		t.Fatalf("foreign keys leaked (-want +got):\n%s", diff)
	}
}
