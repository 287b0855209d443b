package typeexpr_test

import (
	"errors"
	"io"
	"testing"

	tc "github.com/reoring/typedclass"
	"github.com/reoring/typedclass/typeexpr"
)

func TestParse_Renders(t *testing.T) {
	cases := map[string]string{
		"int":                          "int",
		"str":                          "string",
		"Optional[str]":                "Optional[string]",
		"Union[str, int]":              "Union[string, int]",
		"union[ str ,int ]":            "Union[string, int]",
		"Dict[str, List[int]]":         "Map[string, Sequence[int]]",
		"map[Any, float]":              "Map[Any, float64]",
		"List":                         "Sequence[Any]",
		"Set[int]":                     "Set[int]",
		"Tuple[str, int, bool]":        "Tuple[string, int, bool]",
		`Literal["a", 'b', 1, 2.5]`:    `Literal["a", "b", 1, 2.5]`,
		"Literal[True, None]":          "Literal[true, None]",
		"number":                       "Union[int, float64]",
		"Optional[Union[bytes, None]]": "Optional[Union[[]uint8, Literal[None]]]",
		"Type[datetime]":               "Type[time.Time]",
	}
	for expr, want := range cases {
		got, err := typeexpr.Parse(expr)
		if err != nil {
			t.Errorf("%s: unexpected err: %v", expr, err)
			continue
		}
		if got.String() != want {
			t.Errorf("%s: String() = %q, want %q", expr, got.String(), want)
		}
	}
}

func TestParse_Semantics(t *testing.T) {
	strOrInt := typeexpr.MustParse("Union[str, int]")
	if !tc.Conforms(strOrInt, "a") || !tc.Conforms(strOrInt, 1) || tc.Conforms(strOrInt, true) {
		t.Fatalf("Union[str, int] semantics")
	}
	lit := typeexpr.MustParse(`Literal["red", "green"]`)
	if !tc.Conforms(lit, "red") || tc.Conforms(lit, "blue") {
		t.Fatalf("Literal semantics")
	}
	none := typeexpr.MustParse("None")
	if !tc.Conforms(none, tc.None) || tc.Conforms(none, 0) {
		t.Fatalf("None semantics")
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		expr   string
		offset int
	}{
		{"", 0},
		{"Strr", 0},
		{"int[str]", 3},
		{"Dict", 0},
		{"Dict[str]", 0},
		{"Optional[str, int]", 0},
		{"List[int", 8},
		{"List[int]]", 9},
		{"Union[]", 5},
		{"Literal[int]", 8},
		{`Literal["open]`, 8},
		{"List[int; str]", 8},
		{"Type[List[int]]", 0},
	}
	for _, c := range cases {
		_, err := typeexpr.Parse(c.expr)
		var se *typeexpr.SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("%q: expected SyntaxError, got %v", c.expr, err)
			continue
		}
		if se.Offset != c.offset {
			t.Errorf("%q: offset = %d, want %d (%v)", c.expr, se.Offset, c.offset, se)
		}
	}
}

func TestParse_IllFormedResult(t *testing.T) {
	_, err := typeexpr.Parse("Set[bytes]")
	var de *tc.DeclarationError
	if !errors.As(err, &de) {
		t.Fatalf("expected DeclarationError, got %v", err)
	}
}

func TestRegistry(t *testing.T) {
	r := typeexpr.NewRegistry()
	user := tc.MustDeclare("User", []tc.Field{{Name: "id", Type: tc.PlainOf[int]()}})
	if err := r.RegisterShape(user); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := typeexpr.RegisterGo[io.Reader](r, "Reader"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.RegisterShape(user); err == nil {
		t.Fatalf("duplicate registration should fail")
	}
	if err := r.Register("list", tc.Any()); err == nil {
		t.Fatalf("generic names are reserved")
	}
	if err := r.Register("int", tc.Any()); err == nil {
		t.Fatalf("built-in names cannot be replaced")
	}

	typ := r.MustParse("List[Optional[User]]")
	if typ.String() != "Sequence[Optional[User]]" {
		t.Fatalf("String() = %q", typ.String())
	}
	u := tc.MustNew(user, map[string]any{"id": 1})
	if !tc.Conforms(typ, []any{u, tc.None}) {
		t.Fatalf("records should resolve by name")
	}
	sub := r.MustParse("Type[Reader]")
	if sub.Kind() != tc.KindSubtype {
		t.Fatalf("kind = %v", sub.Kind())
	}
	if _, err := typeexpr.Parse("User"); err == nil {
		t.Fatalf("the default registry knows only the built-in names")
	}
}
