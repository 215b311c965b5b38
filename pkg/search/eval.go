package search

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mwantia/gotags/pkg/db/models"
	"github.com/mwantia/gotags/pkg/log"
)

// SortKey selects the result ordering attribute.
type SortKey string

const (
	SortByName SortKey = "name"
	SortByDate SortKey = "date"
	SortBySize SortKey = "size"
)

// SortOrder selects ascending or descending results.
type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// Evaluator runs a predicate tree against the repository. Engine is the
// production implementation; the session controller depends only on
// this interface.
type Evaluator interface {
	Evaluate(ctx context.Context, pred Predicate, key SortKey, order SortOrder) ([]models.Item, error)
}

// Engine evaluates predicate trees against a repository snapshot. It
// holds no mutable state, so one Engine may serve any number of
// concurrent evaluations.
type Engine struct {
	repo Repository
	log  log.LoggerService
}

func NewEngine(repo Repository, logger log.LoggerService) *Engine {
	return &Engine{
		repo: repo,
		log:  logger,
	}
}

// Evaluate returns the items matching pred, stably sorted by the given
// key with ties broken by item id. The repository excludes soft-deleted
// items before any leaf runs. Evaluation is total over any validated
// predicate; the only error path is repository access.
func (e *Engine) Evaluate(ctx context.Context, pred Predicate, key SortKey, order SortOrder) ([]models.Item, error) {
	started := time.Now()

	items, err := e.repo.ListCandidateItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate items: %w", err)
	}

	ids := make([]uint, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	tagValues, err := e.repo.ResolveTagValues(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tag values: %w", err)
	}

	// Any size leaf excludes sizeless items (directories) from the
	// whole tree, not only from the leaf itself, so an OR with an
	// otherwise-matching leaf cannot readmit them.
	sizeLeaf := containsSizeLeaf(pred)

	var matched []models.Item
	for i := range items {
		if sizeLeaf && items[i].Size == nil {
			continue
		}
		if matchPredicate(pred, &items[i], toTagSet(tagValues[items[i].ID])) {
			matched = append(matched, items[i])
		}
	}

	sortItems(matched, key, order)

	if e.log != nil {
		e.log.Debug("Evaluated %d candidates, %d matches in %s", len(items), len(matched), time.Since(started))
	}
	return matched, nil
}

func containsSizeLeaf(pred Predicate) bool {
	switch node := pred.(type) {
	case *Comparison:
		return node.Field == FieldSize
	case *Logical:
		for _, operand := range node.Operands {
			if containsSizeLeaf(operand) {
				return true
			}
		}
	}
	return false
}

func toTagSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		set[strings.ToLower(value)] = struct{}{}
	}
	return set
}

// matchPredicate reduces a predicate to a boolean for one candidate
// item and its resolved tag-value set. Leaves have no side effects, so
// evaluation order is unconstrained.
func matchPredicate(pred Predicate, item *models.Item, tagSet map[string]struct{}) bool {
	switch node := pred.(type) {
	case *Comparison:
		return matchComparison(node, item, tagSet)

	case *Logical:
		switch node.Op {
		case LogicAnd:
			for _, operand := range node.Operands {
				if !matchPredicate(operand, item, tagSet) {
					return false
				}
			}
			return true
		case LogicOr:
			for _, operand := range node.Operands {
				if matchPredicate(operand, item, tagSet) {
					return true
				}
			}
			return false
		case LogicNot:
			return !matchPredicate(node.Operands[0], item, tagSet)
		}
	}
	return false
}

func matchComparison(c *Comparison, item *models.Item, tagSet map[string]struct{}) bool {
	switch c.Field {
	case FieldTag:
		_, ok := tagSet[strings.ToLower(c.Value)]
		if c.Op == OpNe {
			return !ok
		}
		return ok

	case FieldName:
		return globMatch(c.Value, filepath.Base(item.Path))

	case FieldSize:
		// directories carry no size and fail every size comparison
		if item.Size == nil {
			return false
		}
		return matchOrdering(c.Op, compareInt64(*item.Size, c.Bytes))

	case FieldModified:
		if item.ModifiedAt == nil {
			return false
		}
		return matchOrdering(c.Op, item.ModifiedAt.Compare(c.Time))

	case FieldType:
		category := classifyItem(item)
		equal := category == strings.ToLower(c.Value)
		if c.Op == OpNe {
			return !equal
		}
		return equal
	}
	return false
}

func matchOrdering(op Operator, cmp int) bool {
	switch op {
	case OpGt:
		return cmp > 0
	case OpLt:
		return cmp < 0
	case OpGe:
		return cmp >= 0
	case OpLe:
		return cmp <= 0
	}
	return false
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func sortItems(items []models.Item, key SortKey, order SortOrder) {
	desc := order == SortDescending

	sort.SliceStable(items, func(i, j int) bool {
		c := compareItems(&items[i], &items[j], key)
		if c == 0 {
			return items[i].ID < items[j].ID
		}
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func compareItems(a, b *models.Item, key SortKey) int {
	switch key {
	case SortBySize:
		return compareInt64Ptr(a.Size, b.Size)
	case SortByDate:
		return compareTimePtr(a.ModifiedAt, b.ModifiedAt)
	default:
		an := strings.ToLower(filepath.Base(a.Path))
		bn := strings.ToLower(filepath.Base(b.Path))
		return strings.Compare(an, bn)
	}
}

// nil attributes sort before any value
func compareInt64Ptr(a, b *int64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	}
	return 0
}

func compareTimePtr(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return a.Compare(*b)
}
