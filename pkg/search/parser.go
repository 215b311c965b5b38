package search

import (
	"fmt"
	"strings"
)

// ParseQuery turns a structured query string into a validated predicate
// tree. Grammar, with NOT binding tighter than AND tighter than OR:
//
//	Expr    := OrExpr
//	OrExpr  := AndExpr ( OR AndExpr )*
//	AndExpr := NotExpr ( AND NotExpr )*
//	NotExpr := NOT NotExpr | Atom
//	Atom    := "(" Expr ")" | Comparison | InClause
//	Comparison := Field Operator Value
//	InClause   := Field "IN" "(" Value ("," Value)* ")"
//
// Errors are *LexError, *ParseError or *SemanticError; a returned
// predicate is always safe to hand to the evaluator.
func ParseQuery(text string) (Predicate, error) {
	toks, err := lex(text)
	if err != nil {
		return nil, err
	}

	p := &parser{toks: toks}
	if p.peek().kind == tokenEOF {
		return nil, &ParseError{Offset: 0, Msg: "empty query"}
	}

	pred, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokenEOF {
		return nil, &ParseError{Offset: tok.offset, Msg: fmt.Sprintf("unexpected %q after expression", tok.text)}
	}

	if err := validate(pred); err != nil {
		return nil, err
	}
	return pred, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) advance() token {
	tok := p.toks[p.pos]
	if tok.kind != tokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) keyword(kw string) bool {
	tok := p.peek()
	return tok.kind == tokenIdent && strings.EqualFold(tok.text, kw)
}

func isKeyword(text string) bool {
	for _, kw := range []string{"AND", "OR", "NOT", "IN"} {
		if strings.EqualFold(text, kw) {
			return true
		}
	}
	return false
}

func (p *parser) parseOr() (Predicate, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	operands := []Predicate{left}
	for p.keyword("OR") {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		operands = append(operands, right)
	}

	if len(operands) == 1 {
		return left, nil
	}
	return &Logical{Op: LogicOr, Operands: operands}, nil
}

func (p *parser) parseAnd() (Predicate, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}

	operands := []Predicate{left}
	for p.keyword("AND") {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		operands = append(operands, right)
	}

	if len(operands) == 1 {
		return left, nil
	}
	return &Logical{Op: LogicAnd, Operands: operands}, nil
}

func (p *parser) parseNot() (Predicate, error) {
	if p.keyword("NOT") {
		p.advance()
		inner, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &Logical{Op: LogicNot, Operands: []Predicate{inner}}, nil
	}
	return p.parseAtom()
}

func (p *parser) parseAtom() (Predicate, error) {
	tok := p.peek()
	switch {
	case tok.kind == tokenLParen:
		p.advance()
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if closing := p.peek(); closing.kind != tokenRParen {
			return nil, &ParseError{Offset: closing.offset, Msg: "missing closing parenthesis"}
		}
		p.advance()
		return expr, nil

	case tok.kind == tokenIdent && !isKeyword(tok.text):
		return p.parseComparison()

	case tok.kind == tokenEOF:
		return nil, &ParseError{Offset: tok.offset, Msg: "unexpected end of query"}

	default:
		return nil, &ParseError{Offset: tok.offset, Msg: fmt.Sprintf("expected field or '(', found %q", tok.text)}
	}
}

func (p *parser) parseComparison() (Predicate, error) {
	field := p.advance()
	name := Field(strings.ToLower(field.text))

	if p.keyword("IN") {
		p.advance()
		return p.parseInClause(name)
	}

	op := p.peek()
	if op.kind != tokenOperator {
		return nil, &ParseError{Offset: op.offset, Msg: fmt.Sprintf("expected operator after field %q", field.text)}
	}
	p.advance()

	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	return &Comparison{Field: name, Op: Operator(op.text), Value: value}, nil
}

// parseInClause desugars `field IN (a, b)` into an OR of equality
// comparisons at parse time; the evaluator never sees IN.
func (p *parser) parseInClause(field Field) (Predicate, error) {
	if open := p.peek(); open.kind != tokenLParen {
		return nil, &ParseError{Offset: open.offset, Msg: "expected '(' after IN"}
	}
	p.advance()

	var operands []Predicate
	for {
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		operands = append(operands, &Comparison{Field: field, Op: OpEq, Value: value})

		sep := p.peek()
		if sep.kind == tokenComma {
			p.advance()
			continue
		}
		if sep.kind == tokenRParen {
			p.advance()
			break
		}
		return nil, &ParseError{Offset: sep.offset, Msg: "expected ',' or ')' in IN list"}
	}

	return &Logical{Op: LogicOr, Operands: operands}, nil
}

func (p *parser) parseValue() (string, error) {
	tok := p.peek()
	switch tok.kind {
	case tokenString, tokenNumber:
		p.advance()
		return tok.text, nil
	case tokenIdent:
		if isKeyword(tok.text) {
			return "", &ParseError{Offset: tok.offset, Msg: fmt.Sprintf("missing value, found keyword %q", tok.text)}
		}
		p.advance()
		return tok.text, nil
	default:
		return "", &ParseError{Offset: tok.offset, Msg: "missing value"}
	}
}

// Semantic pass

var validFields = map[Field]bool{
	FieldTag:      true,
	FieldName:     true,
	FieldSize:     true,
	FieldModified: true,
	FieldType:     true,
}

// validate walks a parsed tree, rejects clauses the evaluator cannot
// handle and decodes size and date literals in place.
func validate(pred Predicate) error {
	switch node := pred.(type) {
	case *Logical:
		for _, operand := range node.Operands {
			if err := validate(operand); err != nil {
				return err
			}
		}
		return nil
	case *Comparison:
		return validateComparison(node)
	}
	return nil
}

func validateComparison(c *Comparison) error {
	if !validFields[c.Field] {
		return &SemanticError{Clause: c.String(), Reason: fmt.Sprintf("unknown field %q", c.Field)}
	}

	switch c.Field {
	case FieldTag, FieldType:
		if c.Op != OpEq && c.Op != OpNe {
			return &SemanticError{Clause: c.String(), Reason: fmt.Sprintf("operator %q not supported for field %q", c.Op, c.Field)}
		}
	case FieldName:
		if c.Op != OpMatch {
			return &SemanticError{Clause: c.String(), Reason: fmt.Sprintf("field \"name\" only supports the %q operator", OpMatch)}
		}
	case FieldSize, FieldModified:
		if c.Op != OpGt && c.Op != OpLt && c.Op != OpGe && c.Op != OpLe {
			return &SemanticError{Clause: c.String(), Reason: fmt.Sprintf("field %q only supports ordering operators", c.Field)}
		}
	}

	switch c.Field {
	case FieldSize:
		bytes, err := parseSizeLiteral(c.Value)
		if err != nil {
			return &SemanticError{Clause: c.String(), Reason: err.Error()}
		}
		c.Bytes = bytes
	case FieldModified:
		when, err := parseDateLiteral(c.Value)
		if err != nil {
			return &SemanticError{Clause: c.String(), Reason: err.Error()}
		}
		c.Time = when
	case FieldType:
		if !validCategories[strings.ToLower(c.Value)] {
			return &SemanticError{Clause: c.String(), Reason: fmt.Sprintf("unknown type category %q", c.Value)}
		}
	}

	return nil
}
