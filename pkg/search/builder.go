package search

import "github.com/mwantia/gotags/pkg/db/models"

// Combinator governs how a multi-tag selection relates to an item's
// tag set: AND requires every selected tag, OR at least one.
type Combinator string

const (
	CombinatorAnd Combinator = "AND"
	CombinatorOr  Combinator = "OR"
)

// SearchCriteria is the checkbox-driven simple search form: a tag-id
// selection, a combinator and an optional filename substring. It
// compiles losslessly into a predicate tree, so both front ends share
// one evaluator.
type SearchCriteria struct {
	TagIDs        []uint
	Combinator    Combinator
	NameSubstring string
}

// BuildBooleanFilter compiles a tag selection into a predicate tree:
// one equality leaf per selected tag under the chosen combinator, with
// the optional filename substring AND-combined on top regardless of the
// combinator. A non-empty selection is the caller's precondition;
// unknown tag ids are skipped.
func BuildBooleanFilter(criteria SearchCriteria, tags []models.Tag) Predicate {
	values := make(map[uint]string, len(tags))
	for _, tag := range tags {
		values[tag.ID] = tag.Value
	}

	var leaves []Predicate
	for _, id := range criteria.TagIDs {
		if value, ok := values[id]; ok {
			leaves = append(leaves, &Comparison{Field: FieldTag, Op: OpEq, Value: value})
		}
	}

	op := LogicAnd
	if criteria.Combinator == CombinatorOr {
		op = LogicOr
	}
	var pred Predicate = &Logical{Op: op, Operands: leaves}

	if criteria.NameSubstring != "" {
		name := &Comparison{
			Field: FieldName,
			Op:    OpMatch,
			Value: "*" + criteria.NameSubstring + "*",
		}
		pred = &Logical{Op: LogicAnd, Operands: []Predicate{pred, name}}
	}

	return pred
}
