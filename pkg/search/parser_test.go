package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuery_SingleComparison(t *testing.T) {
	pred, err := ParseQuery(`tag = "vacation"`)
	require.NoError(t, err)

	cmp, ok := pred.(*Comparison)
	require.True(t, ok)
	assert.Equal(t, FieldTag, cmp.Field)
	assert.Equal(t, OpEq, cmp.Op)
	assert.Equal(t, "vacation", cmp.Value)
}

func TestParseQuery_Precedence(t *testing.T) {
	// NOT binds tighter than AND, AND tighter than OR
	pred, err := ParseQuery(`tag = "a" OR tag = "b" AND NOT tag = "c"`)
	require.NoError(t, err)

	or, ok := pred.(*Logical)
	require.True(t, ok)
	require.Equal(t, LogicOr, or.Op)
	require.Len(t, or.Operands, 2)

	and, ok := or.Operands[1].(*Logical)
	require.True(t, ok)
	require.Equal(t, LogicAnd, and.Op)

	not, ok := and.Operands[1].(*Logical)
	require.True(t, ok)
	assert.Equal(t, LogicNot, not.Op)
}

func TestParseQuery_ParenthesesOverride(t *testing.T) {
	pred, err := ParseQuery(`(tag = "a" OR tag = "b") AND tag = "c"`)
	require.NoError(t, err)

	and, ok := pred.(*Logical)
	require.True(t, ok)
	require.Equal(t, LogicAnd, and.Op)

	or, ok := and.Operands[0].(*Logical)
	require.True(t, ok)
	assert.Equal(t, LogicOr, or.Op)
}

func TestParseQuery_CaseInsensitiveKeywords(t *testing.T) {
	pred, err := ParseQuery(`tag = "a" and not tag = "b"`)
	require.NoError(t, err)

	and, ok := pred.(*Logical)
	require.True(t, ok)
	assert.Equal(t, LogicAnd, and.Op)
}

func TestParseQuery_InClauseDesugars(t *testing.T) {
	inPred, err := ParseQuery(`tag IN ("a", "b")`)
	require.NoError(t, err)

	orPred, err := ParseQuery(`tag = "a" OR tag = "b"`)
	require.NoError(t, err)

	assert.Equal(t, orPred, inPred)
}

func TestParseQuery_SizeLiteralDecoded(t *testing.T) {
	pred, err := ParseQuery(`size >= 10MB`)
	require.NoError(t, err)

	cmp := pred.(*Comparison)
	assert.Equal(t, int64(10485760), cmp.Bytes)
}

func TestParseQuery_DateLiteralDecoded(t *testing.T) {
	pred, err := ParseQuery(`modified > "2024-03-01"`)
	require.NoError(t, err)

	cmp := pred.(*Comparison)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), cmp.Time)
}

func TestParseQuery_ParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		offset int
	}{
		{"empty query", "", 0},
		{"blank query", "   ", 0},
		{"missing value", `tag =`, 5},
		{"missing operator", `tag "a"`, 4},
		{"unbalanced parens", `(tag = "a"`, 10},
		{"trailing tokens", `tag = "a" tag`, 10},
		{"keyword as value", `tag = AND`, 6},
		{"dangling AND", `tag = "a" AND`, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQuery(tt.input)
			require.Error(t, err)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.offset, parseErr.Offset)
		})
	}
}

func TestParseQuery_SemanticErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason string
	}{
		{"unknown field", `foo = "x"`, `unknown field "foo"`},
		{"ordering on tag", `tag > "x"`, "not supported"},
		{"equality on size", `size = 100`, "ordering"},
		{"match on tag", `tag ~ "x"`, "not supported"},
		{"equality on modified", `modified = "2024-01-01"`, "ordering"},
		{"match on type", `type ~ "image"`, "not supported"},
		{"unknown size unit", `size > 10TB`, "unknown size unit"},
		{"non-numeric size", `size > "big"`, "non-numeric"},
		{"malformed date", `modified > "yesterday"`, "malformed date"},
		{"unknown category", `type = "spreadsheet"`, "unknown type category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQuery(tt.input)
			require.Error(t, err)

			var semErr *SemanticError
			require.ErrorAs(t, err, &semErr)
			assert.Contains(t, semErr.Reason, tt.reason)
			assert.NotEmpty(t, semErr.Clause)
		})
	}
}

func TestParseQuery_SemanticErrorNamesField(t *testing.T) {
	_, err := ParseQuery(`foo = "x"`)
	require.Error(t, err)

	var semErr *SemanticError
	require.ErrorAs(t, err, &semErr)
	assert.Contains(t, semErr.Reason, `"foo"`)
	assert.Contains(t, semErr.Clause, "foo")
}

func TestParseQuery_InWithSizeRejected(t *testing.T) {
	_, err := ParseQuery(`size IN (1, 2)`)
	require.Error(t, err)

	var semErr *SemanticError
	require.ErrorAs(t, err, &semErr)
}

func TestParseSizeLiteral(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"0", 0},
		{"1024", 1024},
		{"1KB", 1024},
		{"10MB", 10485760},
		{"1GB", 1073741824},
		{"1.5KB", 1536},
		{"2gb", 2147483648},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseSizeLiteral(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDateLiteral(t *testing.T) {
	got, err := parseDateLiteral("2024-06-15 13:30:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 15, 13, 30, 0, 0, time.UTC), got)

	got, err = parseDateLiteral("2024/06/15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), got)

	_, err = parseDateLiteral("15.06.2024")
	require.Error(t, err)
}
