package typeexpr

import (
	"reflect"
	"strconv"
	"strings"

	tc "github.com/reoring/typedclass"
)

// generic describes a parameterized name such as List[...] or Dict[...].
type generic struct {
	name     string
	min, max int  // parameter count; max < 0 means unbounded
	literal  bool // parameters are literal values, not types
	bare     func() *tc.Type
	build    func(ts []*tc.Type, lits []any) (*tc.Type, string)
}

var generics = map[string]generic{
	"optional": {name: "Optional", min: 1, max: 1, build: func(ts []*tc.Type, _ []any) (*tc.Type, string) {
		return tc.Optional(ts[0]), ""
	}},
	"union": {name: "Union", min: 1, max: -1, build: func(ts []*tc.Type, _ []any) (*tc.Type, string) {
		return tc.Union(ts...), ""
	}},
	"list":     sequenceGeneric("List"),
	"sequence": sequenceGeneric("Sequence"),
	"set": {name: "Set", min: 1, max: 1, bare: func() *tc.Type { return tc.SetOf(tc.Any()) }, build: func(ts []*tc.Type, _ []any) (*tc.Type, string) {
		return tc.SetOf(ts[0]), ""
	}},
	"dict": mapGeneric("Dict"),
	"map":  mapGeneric("Map"),
	"tuple": {name: "Tuple", min: 1, max: -1, build: func(ts []*tc.Type, _ []any) (*tc.Type, string) {
		return tc.TupleOf(ts...), ""
	}},
	"literal": {name: "Literal", min: 1, max: -1, literal: true, build: func(_ []*tc.Type, lits []any) (*tc.Type, string) {
		return tc.Literal(lits...), ""
	}},
	"type": {name: "Type", min: 1, max: 1, build: func(ts []*tc.Type, _ []any) (*tc.Type, string) {
		switch ts[0].Kind() {
		case tc.KindPlain:
			return tc.Subtype(ts[0].ReflectType()), ""
		case tc.KindAny:
			return tc.Subtype(reflect.TypeFor[any]()), ""
		}
		return nil, "Type[...] needs a plain type, got " + ts[0].String()
	}},
}

func sequenceGeneric(name string) generic {
	return generic{name: name, min: 1, max: 1, bare: func() *tc.Type { return tc.SequenceOf(tc.Any()) }, build: func(ts []*tc.Type, _ []any) (*tc.Type, string) {
		return tc.SequenceOf(ts[0]), ""
	}}
}

func mapGeneric(name string) generic {
	return generic{name: name, min: 2, max: 2, build: func(ts []*tc.Type, _ []any) (*tc.Type, string) {
		return tc.MapOf(ts[0], ts[1]), ""
	}}
}

type parser struct {
	expr string
	toks []token
	pos  int
	reg  *Registry
}

// Parse parses expr. Plain names resolve through the registry; generic names
// (Optional, Union, List/Sequence, Set, Dict/Map, Tuple, Literal, Type) match
// case-insensitively. Syntax problems are reported as *SyntaxError and
// ill-formed results (an unhashable set element, say) as
// *typedclass.DeclarationError.
func (r *Registry) Parse(expr string) (*tc.Type, error) {
	toks, err := scan(expr)
	if err != nil {
		return nil, err
	}
	p := &parser{expr: expr, toks: toks, reg: r}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, p.errAt(tok, "unexpected %s after type", tok.kind)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// MustParse is like Parse but panics on error.
func (r *Registry) MustParse(expr string) *tc.Type {
	t, err := r.Parse(expr)
	if err != nil {
		panic(err)
	}
	return t
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	tok := p.toks[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) errAt(tok token, format string, args ...any) error {
	l := &lexer{src: p.expr}
	return l.err(tok.offset, format, args...)
}

func (p *parser) parseType() (*tc.Type, error) {
	tok := p.next()
	if tok.kind != tokIdent {
		return nil, p.errAt(tok, "expected a type name, found %s", tok.kind)
	}
	g, isGeneric := generics[strings.ToLower(tok.text)]
	if !isGeneric {
		t, ok := p.reg.Lookup(tok.text)
		if !ok {
			return nil, p.errAt(tok, "unknown type name %q", tok.text)
		}
		if p.peek().kind == tokLSquare {
			return nil, p.errAt(p.peek(), "%s takes no parameters", tok.text)
		}
		return t, nil
	}
	if p.peek().kind != tokLSquare {
		if g.bare != nil {
			return g.bare(), nil
		}
		if g.min == 2 {
			return nil, p.errAt(tok, "%s needs a key and a value type; use %s[Any, V] to accept every key", g.name, g.name)
		}
		return nil, p.errAt(tok, "%s needs parameters", g.name)
	}
	open := p.next()
	if p.peek().kind == tokRSquare {
		return nil, p.errAt(open, "%s[] needs at least one parameter", g.name)
	}
	var (
		ts   []*tc.Type
		lits []any
	)
	for {
		if g.literal {
			v, err := p.parseLiteral()
			if err != nil {
				return nil, err
			}
			lits = append(lits, v)
		} else {
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			ts = append(ts, t)
		}
		sep := p.next()
		if sep.kind == tokRSquare {
			break
		}
		if sep.kind != tokComma {
			return nil, p.errAt(sep, `expected "," or "]", found %s`, sep.kind)
		}
	}
	n := len(ts) + len(lits)
	if n < g.min || (g.max >= 0 && n > g.max) {
		return nil, p.errAt(tok, "%s takes %s, got %d", g.name, arity(g), n)
	}
	t, reason := g.build(ts, lits)
	if reason != "" {
		return nil, p.errAt(tok, "%s", reason)
	}
	return t, nil
}

func arity(g generic) string {
	switch {
	case g.max < 0:
		return "at least " + strconv.Itoa(g.min) + " parameters"
	case g.min == g.max && g.min == 1:
		return "1 parameter"
	case g.min == g.max:
		return strconv.Itoa(g.min) + " parameters"
	}
	return strconv.Itoa(g.min) + " to " + strconv.Itoa(g.max) + " parameters"
}

// parseLiteral reads one Literal[...] value: a string, a number, a boolean
// (true/True/false/False) or None.
func (p *parser) parseLiteral() (any, error) {
	tok := p.next()
	switch tok.kind {
	case tokString, tokInt, tokFloat:
		return tok.literal, nil
	case tokIdent:
		switch tok.text {
		case "true", "True":
			return true, nil
		case "false", "False":
			return false, nil
		case "None", "null":
			return tc.None, nil
		}
		return nil, p.errAt(tok, "literal values must be strings, numbers, booleans or None, found %s", tok.text)
	}
	return nil, p.errAt(tok, "expected a literal value, found %s", tok.kind)
}
