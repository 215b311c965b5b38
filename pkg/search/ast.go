// Package search implements the tag search and query engine: one
// predicate AST shared by the boolean tag filter and the structured
// query language, a single evaluator over the metadata repository, and
// a staleness-aware session controller.
package search

import (
	"fmt"
	"strings"
	"time"
)

// Field names a queryable item attribute.
type Field string

const (
	FieldTag      Field = "tag"
	FieldName     Field = "name"
	FieldSize     Field = "size"
	FieldModified Field = "modified"
	FieldType     Field = "type"
)

// Operator is a comparison operator in a predicate leaf.
type Operator string

const (
	OpEq    Operator = "="
	OpNe    Operator = "!="
	OpMatch Operator = "~"
	OpGt    Operator = ">"
	OpLt    Operator = "<"
	OpGe    Operator = ">="
	OpLe    Operator = "<="
)

// LogicOp combines predicate subtrees.
type LogicOp string

const (
	LogicAnd LogicOp = "AND"
	LogicOr  LogicOp = "OR"
	LogicNot LogicOp = "NOT"
)

// Predicate is a node of the expression tree produced by either search
// front end. Trees are immutable once built and owned by the evaluation
// call that produced them; they are never persisted or shared.
type Predicate interface {
	String() string

	isPredicate()
}

// Comparison is a single field-operator-value leaf. For size leaves the
// semantic pass decodes the literal into Bytes; for modified leaves
// into Time.
type Comparison struct {
	Field Field
	Op    Operator
	Value string

	Bytes int64
	Time  time.Time
}

func (c *Comparison) isPredicate() {}

func (c *Comparison) String() string {
	return fmt.Sprintf("%s %s %q", c.Field, c.Op, c.Value)
}

// Logical composes child predicates with AND, OR or NOT. NOT carries
// exactly one operand.
type Logical struct {
	Op       LogicOp
	Operands []Predicate
}

func (l *Logical) isPredicate() {}

func (l *Logical) String() string {
	if l.Op == LogicNot {
		return fmt.Sprintf("NOT (%s)", l.Operands[0])
	}

	parts := make([]string, len(l.Operands))
	for i, op := range l.Operands {
		parts[i] = op.String()
	}
	return "(" + strings.Join(parts, fmt.Sprintf(" %s ", l.Op)) + ")"
}
