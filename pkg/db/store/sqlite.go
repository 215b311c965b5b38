package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/mwantia/gotags/pkg/db/migrations"
	"github.com/mwantia/gotags/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteStore implements MetadataStore using SQLite
type SQLiteStore struct {
	db   *gorm.DB
	path string
}

// DB returns the underlying GORM database instance
func (s *SQLiteStore) DB() *gorm.DB {
	return s.db
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	Path         string
	MaxOpenConns int
	LogLevel     logger.LogLevel
}

// NewSQLiteStore creates a new SQLite-backed metadata store
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	// Default to silent logging
	if cfg.LogLevel == 0 {
		cfg.LogLevel = logger.Silent
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(cfg.LogLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	return &SQLiteStore{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Connect initializes the database connection
func (s *SQLiteStore) Connect(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(1) // SQLite only supports 1 writer
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}

// Migrate runs all pending versioned migrations
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	return migrations.NewMigrator(s.db).Migrate(ctx)
}

// Health checks database connectivity
func (s *SQLiteStore) Health(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Tag group operations

func (s *SQLiteStore) CreateTagGroup(ctx context.Context, group *models.TagGroup) error {
	group.Name = strings.TrimSpace(group.Name)
	if group.Name == "" {
		return fmt.Errorf("tag group name is required")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.TagGroup{}).
		Where("LOWER(name) = LOWER(?)", group.Name).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("tag group %q already exists", group.Name)
	}

	return s.db.WithContext(ctx).Create(group).Error
}

func (s *SQLiteStore) GetTagGroup(ctx context.Context, name string) (*models.TagGroup, error) {
	var group models.TagGroup
	err := s.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", strings.TrimSpace(name)).
		First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (s *SQLiteStore) ListTagGroups(ctx context.Context) ([]models.TagGroup, error) {
	var groups []models.TagGroup
	err := s.db.WithContext(ctx).Order("display_order ASC, id ASC").Find(&groups).Error
	return groups, err
}

func (s *SQLiteStore) UpdateTagGroup(ctx context.Context, group *models.TagGroup) error {
	return s.db.WithContext(ctx).Save(group).Error
}

func (s *SQLiteStore) DeleteTagGroup(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&models.Tag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.TagGroup{}, id).Error
	})
}

// Tag operations

func (s *SQLiteStore) CreateTag(ctx context.Context, tag *models.Tag) error {
	tag.Value = strings.TrimSpace(tag.Value)
	if tag.Value == "" {
		return fmt.Errorf("tag value is required")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Tag{}).
		Where("group_id = ? AND LOWER(value) = LOWER(?)", tag.GroupID, tag.Value).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("tag %q already exists in group %d", tag.Value, tag.GroupID)
	}

	return s.db.WithContext(ctx).Create(tag).Error
}

func (s *SQLiteStore) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := s.db.WithContext(ctx).Order("group_id ASC, value ASC").Find(&tags).Error
	return tags, err
}

func (s *SQLiteStore) ListGroupTags(ctx context.Context, groupID uint) ([]models.Tag, error) {
	var tags []models.Tag
	err := s.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("value ASC").
		Find(&tags).Error
	return tags, err
}

func (s *SQLiteStore) DeleteTag(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.Tag{}, id).Error
}

// Item operations

// EnsureItem returns the item for the given path, creating it on first
// tagging. A soft-deleted item at the same path is restored and its
// metadata refreshed.
func (s *SQLiteStore) EnsureItem(ctx context.Context, path string, isDir bool, size *int64, modified *time.Time) (*models.Item, error) {
	var item models.Item
	err := s.db.WithContext(ctx).Unscoped().Where("path = ?", path).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		item = models.Item{
			Path:       path,
			IsDir:      isDir,
			Size:       size,
			ModifiedAt: modified,
		}
		if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
			return nil, err
		}
		return &item, nil
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]any{
		"is_dir":      isDir,
		"size":        size,
		"modified_at": modified,
		"deleted_at":  nil,
	}
	if err := s.db.WithContext(ctx).Unscoped().Model(&item).Updates(updates).Error; err != nil {
		return nil, err
	}
	item.IsDir = isDir
	item.Size = size
	item.ModifiedAt = modified
	item.DeletedAt = gorm.DeletedAt{}
	return &item, nil
}

func (s *SQLiteStore) GetItem(ctx context.Context, path string) (*models.Item, error) {
	var item models.Item
	err := s.db.WithContext(ctx).Where("path = ?", path).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListCandidateItems returns all non-deleted items. GORM's soft-delete
// convention already excludes rows with a deleted_at timestamp.
func (s *SQLiteStore) ListCandidateItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	err := s.db.WithContext(ctx).Order("id ASC").Find(&items).Error
	return items, err
}

func (s *SQLiteStore) SoftDeleteItem(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.Item{}, id).Error
}

func (s *SQLiteStore) RestoreItem(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Unscoped().Model(&models.Item{}).
		Where("id = ?", id).
		Update("deleted_at", nil).Error
}

// Association operations

func (s *SQLiteStore) TagItem(ctx context.Context, itemID, tagID uint) error {
	item := models.Item{ID: itemID}
	return s.db.WithContext(ctx).Model(&item).
		Association("Tags").
		Append(&models.Tag{ID: tagID})
}

func (s *SQLiteStore) UntagItem(ctx context.Context, itemID, tagID uint) error {
	item := models.Item{ID: itemID}
	return s.db.WithContext(ctx).Model(&item).
		Association("Tags").
		Delete(&models.Tag{ID: tagID})
}

// ResolveTagValues returns the tag values associated with each of the
// given items in one bulk query, keyed by item id.
func (s *SQLiteStore) ResolveTagValues(ctx context.Context, itemIDs []uint) (map[uint][]string, error) {
	values := make(map[uint][]string, len(itemIDs))
	if len(itemIDs) == 0 {
		return values, nil
	}

	type row struct {
		ItemID uint
		Value  string
	}

	var rows []row
	err := s.db.WithContext(ctx).Table("item_tags").
		Select("item_tags.item_id AS item_id, tags.value AS value").
		Joins("JOIN tags ON tags.id = item_tags.tag_id").
		Where("item_tags.item_id IN ?", itemIDs).
		Where("tags.deleted_at IS NULL").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		values[r.ItemID] = append(values[r.ItemID], r.Value)
	}
	return values, nil
}

// Search history operations

func (s *SQLiteStore) AppendSearchHistory(ctx context.Context, entry *models.SearchHistoryEntry) error {
	if entry.ExecutedAt.IsZero() {
		entry.ExecutedAt = time.Now().UTC()
	}
	return s.db.WithContext(ctx).Create(entry).Error
}

func (s *SQLiteStore) ListSearchHistory(ctx context.Context, limit int) ([]models.SearchHistoryEntry, error) {
	var entries []models.SearchHistoryEntry
	query := s.db.WithContext(ctx).Order("executed_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&entries).Error
	return entries, err
}

func (s *SQLiteStore) DeleteSearchHistory(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.SearchHistoryEntry{}, id).Error
}

func (s *SQLiteStore) ClearSearchHistory(ctx context.Context) error {
	return s.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&models.SearchHistoryEntry{}).Error
}
