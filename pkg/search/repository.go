package search

import (
	"context"

	"github.com/mwantia/gotags/pkg/db/models"
)

// Repository is the read-only view of the metadata store the engine
// evaluates against. Implementations must exclude soft-deleted rows
// from ListCandidateItems and provide a consistent snapshot per
// evaluation; concurrent reads from multiple in-flight searches are
// expected.
type Repository interface {
	ListTagGroups(ctx context.Context) ([]models.TagGroup, error)
	ListTags(ctx context.Context) ([]models.Tag, error)
	ListCandidateItems(ctx context.Context) ([]models.Item, error)
	ResolveTagValues(ctx context.Context, itemIDs []uint) (map[uint][]string, error)
}

// HistoryRecorder persists search history snapshots. The session
// controller appends one entry per dispatched search.
type HistoryRecorder interface {
	AppendSearchHistory(ctx context.Context, entry *models.SearchHistoryEntry) error
}
