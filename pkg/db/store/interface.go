package store

import (
	"context"
	"time"

	"github.com/mwantia/gotags/pkg/db/models"
)

// MetadataStore defines the interface for database operations
type MetadataStore interface {
	// Lifecycle
	Connect(ctx context.Context) error
	Close() error
	Migrate(ctx context.Context) error
	Health(ctx context.Context) error

	// Tag group operations
	CreateTagGroup(ctx context.Context, group *models.TagGroup) error
	GetTagGroup(ctx context.Context, name string) (*models.TagGroup, error)
	ListTagGroups(ctx context.Context) ([]models.TagGroup, error)
	UpdateTagGroup(ctx context.Context, group *models.TagGroup) error
	DeleteTagGroup(ctx context.Context, id uint) error

	// Tag operations
	CreateTag(ctx context.Context, tag *models.Tag) error
	ListTags(ctx context.Context) ([]models.Tag, error)
	ListGroupTags(ctx context.Context, groupID uint) ([]models.Tag, error)
	DeleteTag(ctx context.Context, id uint) error

	// Item operations
	EnsureItem(ctx context.Context, path string, isDir bool, size *int64, modified *time.Time) (*models.Item, error)
	GetItem(ctx context.Context, path string) (*models.Item, error)
	ListCandidateItems(ctx context.Context) ([]models.Item, error)
	SoftDeleteItem(ctx context.Context, id uint) error
	RestoreItem(ctx context.Context, id uint) error

	// Association operations
	TagItem(ctx context.Context, itemID, tagID uint) error
	UntagItem(ctx context.Context, itemID, tagID uint) error
	ResolveTagValues(ctx context.Context, itemIDs []uint) (map[uint][]string, error)

	// Search history operations
	AppendSearchHistory(ctx context.Context, entry *models.SearchHistoryEntry) error
	ListSearchHistory(ctx context.Context, limit int) ([]models.SearchHistoryEntry, error)
	DeleteSearchHistory(ctx context.Context, id uint) error
	ClearSearchHistory(ctx context.Context) error
}
