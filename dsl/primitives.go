package dsl

import (
	"time"

	tc "github.com/reoring/typedclass"
)

// Shorthands for the common plain types.
func Int() *tc.Type           { return tc.PlainOf[int]() }
func Int64() *tc.Type         { return tc.PlainOf[int64]() }
func Float64() *tc.Type       { return tc.PlainOf[float64]() }
func String() *tc.Type        { return tc.PlainOf[string]() }
func Bool() *tc.Type          { return tc.PlainOf[bool]() }
func Bytes() *tc.Type         { return tc.PlainOf[[]byte]() }
func Time() *tc.Type          { return tc.PlainOf[time.Time]() }
func Duration() *tc.Type      { return tc.PlainOf[time.Duration]() }
func Any() *tc.Type           { return tc.Any() }
func Of[T any]() *tc.Type     { return tc.PlainOf[T]() }
func TypeOf[T any]() *tc.Type { return tc.SubtypeOf[T]() }

// Number accepts int or float64, the two shapes a decoded JSON number takes.
func Number() *tc.Type { return tc.Union(Int(), Float64()) }

func Optional(t *tc.Type) *tc.Type      { return tc.Optional(t) }
func Union(alts ...*tc.Type) *tc.Type   { return tc.Union(alts...) }
func List(elem *tc.Type) *tc.Type       { return tc.SequenceOf(elem) }
func Set(elem *tc.Type) *tc.Type        { return tc.SetOf(elem) }
func Map(key, value *tc.Type) *tc.Type  { return tc.MapOf(key, value) }
func Tuple(items ...*tc.Type) *tc.Type  { return tc.TupleOf(items...) }
func Literal(values ...any) *tc.Type    { return tc.Literal(values...) }
func Instance(shape *tc.Shape) *tc.Type { return tc.RecordOf(shape) }
func StringMap(value *tc.Type) *tc.Type { return tc.MapOf(String(), value) }
func OptionalOf[T any]() *tc.Type       { return tc.Optional(tc.PlainOf[T]()) }
