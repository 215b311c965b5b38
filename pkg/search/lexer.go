package search

import (
	"fmt"
	"strings"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenIdent
	tokenString
	tokenNumber
	tokenOperator
	tokenLParen
	tokenRParen
	tokenComma
)

// token carries its byte offset into the source so parse and lex errors
// can point at the offending input.
type token struct {
	kind   tokenKind
	text   string
	offset int
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isAlpha(c) || isDigit(c) || c == '_' || c == '-'
}

// lex tokenizes a query string. The returned slice always ends with an
// EOF token whose offset is len(input).
func lex(input string) ([]token, error) {
	var toks []token

	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++

		case c == '(':
			toks = append(toks, token{tokenLParen, "(", i})
			i++

		case c == ')':
			toks = append(toks, token{tokenRParen, ")", i})
			i++

		case c == ',':
			toks = append(toks, token{tokenComma, ",", i})
			i++

		case c == '"':
			tok, next, err := lexString(input, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i = next

		case c == '=':
			toks = append(toks, token{tokenOperator, "=", i})
			i++

		case c == '~':
			toks = append(toks, token{tokenOperator, "~", i})
			i++

		case c == '!':
			if i+1 < len(input) && input[i+1] == '=' {
				toks = append(toks, token{tokenOperator, "!=", i})
				i += 2
			} else {
				return nil, &LexError{Offset: i, Msg: "expected '=' after '!'"}
			}

		case c == '>' || c == '<':
			if i+1 < len(input) && input[i+1] == '=' {
				toks = append(toks, token{tokenOperator, input[i : i+2], i})
				i += 2
			} else {
				toks = append(toks, token{tokenOperator, string(c), i})
				i++
			}

		case isDigit(c):
			start := i
			for i < len(input) && isDigit(input[i]) {
				i++
			}
			if i+1 < len(input) && input[i] == '.' && isDigit(input[i+1]) {
				i++
				for i < len(input) && isDigit(input[i]) {
					i++
				}
			}
			// trailing letters are a unit suffix, validated semantically
			for i < len(input) && isAlpha(input[i]) {
				i++
			}
			toks = append(toks, token{tokenNumber, input[start:i], start})

		case isAlpha(c) || c == '_':
			start := i
			for i < len(input) && isIdentPart(input[i]) {
				i++
			}
			toks = append(toks, token{tokenIdent, input[start:i], start})

		default:
			return nil, &LexError{Offset: i, Msg: fmt.Sprintf("unrecognized character %q", rune(c))}
		}
	}

	toks = append(toks, token{tokenEOF, "", len(input)})
	return toks, nil
}

// lexString reads a double-quoted literal starting at the opening quote.
// Embedded quotes and backslashes are escaped with a backslash.
func lexString(input string, start int) (token, int, error) {
	var sb strings.Builder

	i := start + 1
	for i < len(input) {
		switch {
		case input[i] == '\\' && i+1 < len(input) && (input[i+1] == '"' || input[i+1] == '\\'):
			sb.WriteByte(input[i+1])
			i += 2
		case input[i] == '"':
			return token{tokenString, sb.String(), start}, i + 1, nil
		default:
			sb.WriteByte(input[i])
			i++
		}
	}

	return token{}, 0, &LexError{Offset: start, Msg: "unterminated string literal"}
}
