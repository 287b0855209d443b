package source_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tc "github.com/reoring/typedclass"
	"github.com/reoring/typedclass/source"
)

func TestDecodeJSON_ShapesOfInput(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []map[string]any
	}{
		{"object", `{"id": 1, "name": "a"}`, []map[string]any{{"id": 1, "name": "a"}}},
		{"array", `[{"id": 1}, {"id": 2}]`, []map[string]any{{"id": 1}, {"id": 2}}},
		{"ndjson", "{\"id\": 1}\n{\"id\": 2}\n", []map[string]any{{"id": 1}, {"id": 2}}},
		{"empty", "", nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := source.DecodeJSON(strings.NewReader(c.in))
			require.NoError(t, err)
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Fatalf("records (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeJSON_ValueConversions(t *testing.T) {
	got, err := source.DecodeJSON(strings.NewReader(`{
		"i": 42, "neg": -3, "f": 1.5, "e": 1e3, "whole": 2.0,
		"big": 123456789012345678901234567890,
		"s": "x", "b": true, "n": null,
		"list": [1, "two", null], "obj": {"k": [ ]}
	}`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	rec := got[0]

	assert.Equal(t, 42, rec["i"])
	assert.Equal(t, -3, rec["neg"])
	assert.Equal(t, 1.5, rec["f"])
	assert.Equal(t, 1000.0, rec["e"])
	assert.Equal(t, 2.0, rec["whole"])
	assert.IsType(t, float64(0), rec["big"])
	assert.Equal(t, "x", rec["s"])
	assert.Equal(t, true, rec["b"])
	assert.Equal(t, tc.None, rec["n"])
	assert.Equal(t, []any{1, "two", tc.None}, rec["list"])
	assert.Equal(t, map[string]any{"k": []any{}}, rec["obj"])
}

func TestDecodeJSON_Errors(t *testing.T) {
	_, err := source.DecodeJSON(strings.NewReader(`{"a": {"b": 1, "b": 2}}`))
	var dup *source.DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "b", dup.Key)
	assert.Equal(t, "/a", dup.Path)

	_, err = source.DecodeJSON(strings.NewReader(`[{"a": 1}, 3]`))
	var de *source.DocumentError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 1, de.Element)
	assert.Equal(t, "a number", de.Found)

	_, err = source.DecodeJSON(strings.NewReader(`{"a": 1}` + "\n" + `"str"`))
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 1, de.Document)
	assert.Equal(t, -1, de.Element)

	_, err = source.DecodeJSON(strings.NewReader(`{"a": `))
	require.Error(t, err)
}

func TestDecodeJSONValue(t *testing.T) {
	v, err := source.DecodeJSONValue(strings.NewReader(`[1, 2.5]`))
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2.5}, v)

	_, err = source.DecodeJSONValue(strings.NewReader(`1 2`))
	require.Error(t, err)
}

func TestDecodeYAML(t *testing.T) {
	in := `
id: 1
name: a
ratio: 0.5
active: yes_is_a_string
flag: true
missing: null
when: 2024-05-01T10:00:00Z
tags: [x, y]
---
- id: 2
- id: 3
`
	got, err := source.DecodeYAML(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 3)

	first := got[0]
	assert.Equal(t, 1, first["id"])
	assert.Equal(t, 0.5, first["ratio"])
	assert.Equal(t, "yes_is_a_string", first["active"])
	assert.Equal(t, true, first["flag"])
	assert.Equal(t, tc.None, first["missing"])
	when, ok := first["when"].(time.Time)
	require.True(t, ok, "timestamp should decode as time.Time, got %T", first["when"])
	assert.True(t, when.Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, []any{"x", "y"}, first["tags"])
	assert.Equal(t, map[string]any{"id": 3}, got[2])
}

func TestDecodeYAML_DuplicateKey(t *testing.T) {
	_, err := source.DecodeYAML(strings.NewReader("meta:\n  name: a\n  name: b\n"))
	var dup *source.DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "name", dup.Key)
	assert.Equal(t, "/meta", dup.Path)
	assert.Equal(t, 2, dup.FirstLine)
	assert.Equal(t, 3, dup.Line)
}

func TestDecodeYAML_Anchors(t *testing.T) {
	v, err := source.DecodeYAMLValue(strings.NewReader("base: &b {x: 1}\ncopy: *b\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"base": map[string]any{"x": 1}, "copy": map[string]any{"x": 1}}, v)
}
