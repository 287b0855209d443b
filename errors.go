package typedclass

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/typedclass/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType        = "invalid_type"
	CodeInvalidUnion       = "invalid_union"
	CodeInvalidLiteral     = "invalid_literal"
	CodeInvalidLength      = "invalid_length"
	CodeRequired           = "required"
	CodeUnknownKey         = "unknown_key"
	CodeInvalidDeclaration = "invalid_declaration"
)

// Mismatch is the matcher's failure verdict.
type Mismatch struct {
	Path     string // JSON Pointer into the checked value ("/" for the value itself).
	Code     string // CodeInvalidType, CodeInvalidUnion, CodeInvalidLiteral or CodeInvalidLength.
	Expected string
	Actual   string
	// Alternatives lists every union alternative (or literal value) in
	// declaration order when Code is CodeInvalidUnion or CodeInvalidLiteral.
	Alternatives []string
}

func (m *Mismatch) message() string {
	return i18n.T(m.Code, map[string]string{"expected": m.Expected, "actual": m.Actual})
}

func (m *Mismatch) Error() string {
	if m.Path == "" || m.Path == "/" {
		return m.message()
	}
	return "at " + m.Path + ": " + m.message()
}

// DeclarationError reports a malformed record shape. It is returned by Declare
// and never deferred to construction time.
type DeclarationError struct {
	Record string
	Field  string
	Reason string
}

func (e *DeclarationError) Error() string {
	b := &strings.Builder{}
	b.WriteString("typedclass: ")
	if e.Record != "" {
		b.WriteString(e.Record + ": ")
	}
	if e.Field != "" {
		fmt.Fprintf(b, "field %q: ", e.Field)
	}
	b.WriteString(i18n.T(CodeInvalidDeclaration, map[string]string{"reason": e.Reason}))
	return b.String()
}

// Issue converts the error into the collect-mode representation.
func (e *DeclarationError) Issue() Issue {
	p := Root()
	if e.Field != "" {
		p = p.Field(e.Field)
	}
	return Issue{Path: p.Pointer(), Code: CodeInvalidDeclaration, Message: i18n.T(CodeInvalidDeclaration, map[string]string{"reason": e.Reason})}
}

// ValidationError reports a supplied value that does not conform to its field.
type ValidationError struct {
	Record   string
	Field    string
	Expected string // The field's declared type.
	Actual   string // The supplied value's runtime type.
	Mismatch *Mismatch
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("typedclass: %s: field %q: %s", e.Record, e.Field, e.Mismatch.Error())
}

func (e *ValidationError) Unwrap() error { return e.Mismatch }

func (e *ValidationError) Issue() Issue {
	return Issue{
		Path:    joinPointer(Root().Field(e.Field).Pointer(), e.Mismatch.Path),
		Code:    e.Mismatch.Code,
		Message: e.Mismatch.message(),
		Params:  map[string]any{"expected": e.Mismatch.Expected, "actual": e.Mismatch.Actual, "declared": e.Expected},
	}
}

// MissingFieldError reports a required field that was not supplied.
type MissingFieldError struct {
	Record string
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("typedclass: %s: %s", e.Record, i18n.T(CodeRequired, map[string]string{"field": fmt.Sprintf("%q", e.Field)}))
}

func (e *MissingFieldError) Issue() Issue {
	return Issue{Path: Root().Field(e.Field).Pointer(), Code: CodeRequired, Message: i18n.T(CodeRequired, map[string]string{"field": fmt.Sprintf("%q", e.Field)})}
}

// UnexpectedFieldError reports supplied names that match no declared field.
// Fields is sorted.
type UnexpectedFieldError struct {
	Record string
	Fields []string
}

func (e *UnexpectedFieldError) Error() string {
	quoted := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		quoted[i] = fmt.Sprintf("%q", f)
	}
	return fmt.Sprintf("typedclass: %s: %s", e.Record, i18n.T(CodeUnknownKey, map[string]string{"field": strings.Join(quoted, ", ")}))
}

// Issues returns one issue per unexpected name.
func (e *UnexpectedFieldError) Issues() Issues {
	out := make(Issues, 0, len(e.Fields))
	for _, f := range e.Fields {
		out = append(out, Issue{Path: Root().Field(f).Pointer(), Code: CodeUnknownKey, Message: i18n.T(CodeUnknownKey, map[string]string{"field": fmt.Sprintf("%q", f)})})
	}
	return out
}

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /items/2).
	Code    string // One of the codes listed above.
	Message string
	// Params carries structured parameters (e.g., {"expected":"int", "actual":"string"})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally. The
// typed construction errors are converted as well.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return Issues{ve.Issue()}, true
	}
	var me *MissingFieldError
	if errors.As(err, &me) {
		return Issues{me.Issue()}, true
	}
	var ue *UnexpectedFieldError
	if errors.As(err, &ue) {
		return ue.Issues(), true
	}
	var de *DeclarationError
	if errors.As(err, &de) {
		return Issues{de.Issue()}, true
	}
	return nil, false
}
