package search

import (
	"testing"

	"github.com/mwantia/gotags/pkg/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func builderTags() []models.Tag {
	return []models.Tag{
		{ID: 1, GroupID: 1, Value: "t1"},
		{ID: 2, GroupID: 1, Value: "t2"},
		{ID: 3, GroupID: 2, Value: "t3"},
	}
}

func TestBuildBooleanFilter_AndMatchesParsedQuery(t *testing.T) {
	criteria := SearchCriteria{
		TagIDs:     []uint{1, 2},
		Combinator: CombinatorAnd,
	}
	built := BuildBooleanFilter(criteria, builderTags())

	parsed, err := ParseQuery(`tag = "t1" AND tag = "t2"`)
	require.NoError(t, err)

	assert.Equal(t, parsed, built)
}

func TestBuildBooleanFilter_Or(t *testing.T) {
	criteria := SearchCriteria{
		TagIDs:     []uint{1, 3},
		Combinator: CombinatorOr,
	}
	built := BuildBooleanFilter(criteria, builderTags())

	logical, ok := built.(*Logical)
	require.True(t, ok)
	assert.Equal(t, LogicOr, logical.Op)
	require.Len(t, logical.Operands, 2)
}

func TestBuildBooleanFilter_NameSubstringAlwaysAnded(t *testing.T) {
	criteria := SearchCriteria{
		TagIDs:        []uint{1, 2},
		Combinator:    CombinatorOr,
		NameSubstring: "report",
	}
	built := BuildBooleanFilter(criteria, builderTags())

	// outermost node is AND even though the tag combinator is OR
	and, ok := built.(*Logical)
	require.True(t, ok)
	require.Equal(t, LogicAnd, and.Op)
	require.Len(t, and.Operands, 2)

	tags, ok := and.Operands[0].(*Logical)
	require.True(t, ok)
	assert.Equal(t, LogicOr, tags.Op)

	name, ok := and.Operands[1].(*Comparison)
	require.True(t, ok)
	assert.Equal(t, FieldName, name.Field)
	assert.Equal(t, OpMatch, name.Op)
	assert.Equal(t, "*report*", name.Value)
}

func TestBuildBooleanFilter_SkipsUnknownIDs(t *testing.T) {
	criteria := SearchCriteria{
		TagIDs:     []uint{1, 99},
		Combinator: CombinatorAnd,
	}
	built := BuildBooleanFilter(criteria, builderTags())

	logical := built.(*Logical)
	assert.Len(t, logical.Operands, 1)
}
