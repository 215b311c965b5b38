package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLex_Comparison(t *testing.T) {
	toks, err := lex(`tag = "vacation"`)
	require.NoError(t, err)

	require.Len(t, toks, 4) // ident, op, string, EOF
	assert.Equal(t, tokenIdent, toks[0].kind)
	assert.Equal(t, "tag", toks[0].text)
	assert.Equal(t, tokenOperator, toks[1].kind)
	assert.Equal(t, "=", toks[1].text)
	assert.Equal(t, tokenString, toks[2].kind)
	assert.Equal(t, "vacation", toks[2].text)
	assert.Equal(t, tokenEOF, toks[3].kind)
}

func TestLex_Operators(t *testing.T) {
	toks, err := lex(`= != ~ > < >= <=`)
	require.NoError(t, err)

	var texts []string
	for _, tok := range toks[:len(toks)-1] {
		assert.Equal(t, tokenOperator, tok.kind)
		texts = append(texts, tok.text)
	}
	assert.Equal(t, []string{"=", "!=", "~", ">", "<", ">=", "<="}, texts)
}

func TestLex_NumberWithUnit(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1024", "1024"},
		{"10MB", "10MB"},
		{"1.5GB", "1.5GB"},
		{"100kb", "100kb"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks, err := lex(tt.input)
			require.NoError(t, err)
			require.Len(t, toks, 2)
			assert.Equal(t, tokenNumber, toks[0].kind)
			assert.Equal(t, tt.want, toks[0].text)
		})
	}
}

func TestLex_EscapedQuote(t *testing.T) {
	toks, err := lex(`name ~ "say \"hi\".txt"`)
	require.NoError(t, err)
	assert.Equal(t, `say "hi".txt`, toks[2].text)
}

func TestLex_UnterminatedString(t *testing.T) {
	_, err := lex(`tag = "oops`)
	require.Error(t, err)

	var lexErr *LexError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, 6, lexErr.Offset)
	assert.Contains(t, lexErr.Msg, "unterminated")
}

func TestLex_UnrecognizedCharacter(t *testing.T) {
	_, err := lex(`tag = #`)
	require.Error(t, err)

	var lexErr *LexError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, 6, lexErr.Offset)
}

func TestLex_Offsets(t *testing.T) {
	toks, err := lex(`(tag = "a")`)
	require.NoError(t, err)

	assert.Equal(t, 0, toks[0].offset)  // (
	assert.Equal(t, 1, toks[1].offset)  // tag
	assert.Equal(t, 5, toks[2].offset)  // =
	assert.Equal(t, 7, toks[3].offset)  // "a"
	assert.Equal(t, 10, toks[4].offset) // )
	assert.Equal(t, 11, toks[5].offset) // EOF
}
