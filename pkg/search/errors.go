package search

import "fmt"

// LexError reports an unrecognized character or unterminated literal.
// Offset is the byte position of the offending input.
type LexError struct {
	Offset int
	Msg    string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at offset %d: %s", e.Offset, e.Msg)
}

// ParseError reports a structural problem with an otherwise lexable
// query: unbalanced parentheses, missing operator or value, trailing
// tokens, empty query.
type ParseError struct {
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Offset, e.Msg)
}

// SemanticError reports a structurally valid clause the engine cannot
// evaluate: unknown field, operator/field mismatch, malformed literal,
// unknown type category. Clause is the rendered offending comparison.
type SemanticError struct {
	Clause string
	Reason string
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("invalid clause %s: %s", e.Clause, e.Reason)
}
