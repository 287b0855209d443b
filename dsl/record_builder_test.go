package dsl_test

import (
	"errors"
	"testing"

	tc "github.com/reoring/typedclass"
	g "github.com/reoring/typedclass/dsl"
)

func TestRecord_BuildAndConstruct(t *testing.T) {
	user := g.Record("User").
		Field("id", g.Int()).
		Field("name", g.String()).
		Field("email", g.Optional(g.String())).Default(tc.None).
		UnknownStrict().
		MustBuild()

	u, err := user.New(map[string]any{"id": 1, "name": "foobar"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := u.String(); got != `User(id=1, name="foobar", email=None)` {
		t.Fatalf("String() = %q", got)
	}
	if _, err := user.New(map[string]any{"id": 1, "name": "x", "extra": 1}); err == nil {
		t.Fatalf("strict record should reject extra")
	}
}

func TestRecord_DefaultFunc(t *testing.T) {
	bag := g.Record("Bag").
		Field("items", g.List(g.String())).DefaultFunc(func() any { return []string{} }).
		Field("owner", g.String()).Default("nobody").
		MustBuild()
	a := tc.MustNew(bag, nil)
	b := tc.MustNew(bag, nil)
	ia, _ := tc.Value[[]string](a, "items")
	ib, _ := tc.Value[[]string](b, "items")
	ia = append(ia, "x")
	if len(ib) != 0 || len(ia) != 1 {
		t.Fatalf("default factory must produce a fresh value per instance")
	}
	if got := a.String(); got != `Bag(items=[], owner="nobody")` {
		t.Fatalf("String() = %q", got)
	}
}

func TestRecord_DuplicateFieldFailsAtBuild(t *testing.T) {
	_, err := g.Record("Bag").
		Field("owner", g.String()).Default("x").
		Field("owner", g.String()).
		Build()
	var de *tc.DeclarationError
	if !errors.As(err, &de) || de.Field != "owner" || de.Record != "Bag" {
		t.Fatalf("expected DeclarationError for owner, got %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("MustBuild should panic on a declaration error")
		}
	}()
	g.Record("").MustBuild()
}

func TestRecord_RequiredField(t *testing.T) {
	s := g.Record("R").Field("a", g.Int()).Required().Field("b", g.Int()).Default(1).MustBuild()
	var me *tc.MissingFieldError
	if _, err := s.New(nil); !errors.As(err, &me) {
		t.Fatalf("expected MissingFieldError, got %v", err)
	}
}

func TestRecord_ExtendsInheritsPolicy(t *testing.T) {
	base := g.Record("Base").Field("a", g.Int()).UnknownPassthrough().MustBuild()
	child := g.Record("Child").Extends(base).Field("b", g.String()).Default("x").MustBuild()
	if child.Unknown() != tc.UnknownPassthrough {
		t.Fatalf("policy = %v", child.Unknown())
	}
	in, err := child.New(map[string]any{"a": 1, "zz": true})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if in.Extra()["zz"] != true {
		t.Fatalf("extra = %v", in.Extra())
	}
	strip := g.Record("Strip").Extends(base).UnknownStrip().MustBuild()
	if strip.Unknown() != tc.UnknownStrip {
		t.Fatalf("explicit policy should win over the inherited one")
	}
}

func TestShorthands(t *testing.T) {
	cases := []struct {
		typ  *tc.Type
		want string
	}{
		{g.Number(), "Union[int, float64]"},
		{g.StringMap(g.List(g.Int())), "Map[string, Sequence[int]]"},
		{g.Tuple(g.String(), g.Bool()), "Tuple[string, bool]"},
		{g.Set(g.Int64()), "Set[int64]"},
		{g.OptionalOf[float64](), "Optional[float64]"},
		{g.Bytes(), "[]uint8"},
		{g.Duration(), "time.Duration"},
	}
	for _, c := range cases {
		if got := c.typ.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
	if !tc.Conforms(g.Number(), 2.5) || tc.Conforms(g.Number(), "2") {
		t.Fatalf("Number should accept float64 and reject string")
	}
}
