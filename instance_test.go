package typedclass_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	tc "github.com/reoring/typedclass"
)

func TestInstance_Accessors(t *testing.T) {
	u := tc.MustNew(userShape(t), map[string]any{"id": 1, "name": "foobar"})

	if diff := cmp.Diff([]string{"id", "name", "email"}, u.Fields()); diff != "" {
		t.Fatalf("fields (-want +got):\n%s", diff)
	}
	name, err := tc.Value[string](u, "name")
	if err != nil || name != "foobar" {
		t.Fatalf("Value[string] = %q, %v", name, err)
	}
	if _, err := tc.Value[int](u, "name"); err == nil {
		t.Fatalf("Value[int] on a string field should fail")
	}
	var ue *tc.UnexpectedFieldError
	if _, err := tc.Value[int](u, "nope"); !errors.As(err, &ue) {
		t.Fatalf("Value on an undeclared name should report UnexpectedFieldError, got %v", err)
	}
	if _, ok := u.Get("nope"); ok {
		t.Fatalf("Get on an undeclared name should report false")
	}
	if tc.MustGet(u, "id") != 1 {
		t.Fatalf("MustGet id")
	}
}

func TestInstance_SetDoesNotValidate(t *testing.T) {
	u := tc.MustNew(userShape(t), map[string]any{"id": 1, "name": "foobar"})
	if err := u.Set("id", "not an int"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, _ := u.Get("id"); v != "not an int" {
		t.Fatalf("id = %#v", v)
	}
	if err := u.Set("email", nil); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if p := u.Presence("email"); p != tc.PresenceSupplied|tc.PresenceWasNone {
		t.Fatalf("presence = %v", p)
	}
	var ue *tc.UnexpectedFieldError
	if err := u.Set("age", 3); !errors.As(err, &ue) {
		t.Fatalf("Set on an undeclared name should fail, got %v", err)
	}
}

func TestInstance_MapAndPresenceMap(t *testing.T) {
	addr := tc.MustDeclare("Address", []tc.Field{{Name: "city", Type: tc.PlainOf[string]()}})
	person := tc.MustDeclare("Person", []tc.Field{
		{Name: "name", Type: tc.PlainOf[string]()},
		{Name: "home", Type: tc.Optional(tc.RecordOf(addr)), HasDefault: true, Default: nil},
		{Name: "past", Type: tc.SequenceOf(tc.RecordOf(addr)), HasDefault: true, Default: []any{}},
	})
	p := tc.MustNew(person, map[string]any{
		"name": "n",
		"past": []any{tc.MustNew(addr, map[string]any{"city": "Osaka"})},
	})
	want := map[string]any{
		"name": "n",
		"home": nil,
		"past": []any{map[string]any{"city": "Osaka"}},
	}
	if diff := cmp.Diff(want, p.Map()); diff != "" {
		t.Fatalf("Map (-want +got):\n%s", diff)
	}
	wantPresence := tc.PresenceMap{
		"/name": tc.PresenceSupplied,
		"/home": tc.PresenceDefaultApplied,
		"/past": tc.PresenceSupplied,
	}
	if diff := cmp.Diff(wantPresence, p.PresenceMap()); diff != "" {
		t.Fatalf("PresenceMap (-want +got):\n%s", diff)
	}
}

func TestInstance_MarshalJSONKeepsDeclarationOrder(t *testing.T) {
	s := tc.MustDeclare("Event", []tc.Field{
		{Name: "zeta", Type: tc.PlainOf[int]()},
		{Name: "alpha", Type: tc.Optional(tc.PlainOf[string]()), HasDefault: true, Default: tc.None},
		{Name: "tags", Type: tc.SequenceOf(tc.PlainOf[string]())},
	}, tc.WithUnknown(tc.UnknownPassthrough))
	in := tc.MustNew(s, map[string]any{"zeta": 1, "tags": []string{"a"}, "b": 2, "a": true})
	b, err := in.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got, want := string(b), `{"zeta":1,"alpha":null,"tags":["a"],"a":true,"b":2}`; got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestInstance_EncodePreservingRoundTrip(t *testing.T) {
	s := userShape(t)
	in := tc.MustNew(s, map[string]any{"id": 3, "name": "n"})
	enc := in.EncodePreserving()
	if diff := cmp.Diff(map[string]any{"id": 3, "name": "n"}, enc); diff != "" {
		t.Fatalf("defaults must be left out (-want +got):\n%s", diff)
	}
	again := tc.MustNew(s, enc)
	if again.String() != in.String() {
		t.Fatalf("round trip changed the instance: %s vs %s", again, in)
	}

	in = tc.MustNew(s, map[string]any{"id": 3, "name": "n", "email": tc.None})
	if diff := cmp.Diff(map[string]any{"id": 3, "name": "n", "email": nil}, in.EncodePreserving()); diff != "" {
		t.Fatalf("explicit None must be kept (-want +got):\n%s", diff)
	}
}

func TestSafeNew(t *testing.T) {
	s := userShape(t)
	if _, ok := tc.SafeNew(s, map[string]any{"id": 1}); ok {
		t.Fatalf("missing name should fail")
	}
	if in, ok := tc.SafeNew(s, map[string]any{"id": 1, "name": "x"}); !ok || in == nil {
		t.Fatalf("valid input should succeed")
	}
}

func TestMustNew_Panics(t *testing.T) {
	defer func() {
		r := recover()
		if _, ok := r.(*tc.MissingFieldError); !ok {
			t.Fatalf("expected MissingFieldError panic, got %v", r)
		}
	}()
	tc.MustNew(userShape(t), nil)
}
