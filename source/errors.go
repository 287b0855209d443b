package source

import "fmt"

// DuplicateKeyError reports an object key that appears twice in one JSON
// object or YAML mapping. Line and column are 1-based and only set for YAML.
type DuplicateKeyError struct {
	Path      string // JSON Pointer of the enclosing object
	Key       string
	Line      int
	Col       int
	FirstLine int
	FirstCol  int
}

func (e *DuplicateKeyError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("source: duplicate key %q at %d:%d (first at %d:%d)", e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
	}
	return fmt.Sprintf("source: duplicate key %q in object at %s", e.Key, e.Path)
}

// DocumentError reports an input document that is not a record: a top-level
// scalar, or a list element that is not an object.
type DocumentError struct {
	Document int // 0-based index of the document in the stream
	Element  int // index inside a top-level list, or -1
	Found    string
}

func (e *DocumentError) Error() string {
	if e.Element >= 0 {
		return fmt.Sprintf("source: document %d: element %d is %s, not an object", e.Document, e.Element, e.Found)
	}
	return fmt.Sprintf("source: document %d is %s, not an object or a list of objects", e.Document, e.Found)
}

// NestedError reports a nested record that could not be constructed during
// hydration. Err is the construction error of the nested shape.
type NestedError struct {
	Path string
	Err  error
}

func (e *NestedError) Error() string { return "source: record at " + e.Path + ": " + e.Err.Error() }
func (e *NestedError) Unwrap() error { return e.Err }
