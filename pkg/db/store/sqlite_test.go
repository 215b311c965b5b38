package store

import (
	"context"
	"testing"
	"time"

	"github.com/mwantia/gotags/pkg/db/migrations"
	"github.com/mwantia/gotags/pkg/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := NewSQLiteStore(SQLiteConfig{Path: ":memory:"})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Connect(ctx))
	require.NoError(t, s.Migrate(ctx))

	t.Cleanup(func() { s.Close() })
	return s
}

func createTag(t *testing.T, s *SQLiteStore, group *models.TagGroup, value string) *models.Tag {
	t.Helper()

	tag := &models.Tag{GroupID: group.ID, Value: value}
	require.NoError(t, s.CreateTag(context.Background(), tag))
	return tag
}

func createGroup(t *testing.T, s *SQLiteStore, name string) *models.TagGroup {
	t.Helper()

	group := &models.TagGroup{Name: name}
	require.NoError(t, s.CreateTagGroup(context.Background(), group))
	return group
}

func ensureFile(t *testing.T, s *SQLiteStore, path string, size int64) *models.Item {
	t.Helper()

	modified := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	item, err := s.EnsureItem(context.Background(), path, false, &size, &modified)
	require.NoError(t, err)
	return item
}

func TestMigrate_RunsVersionedMigrations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	statuses, err := migrations.NewMigrator(s.DB()).Status(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, statuses)
	for _, status := range statuses {
		assert.True(t, status.Applied, "migration %d not applied", status.Version)
	}

	// applied migrations are skipped on a second run
	require.NoError(t, s.Migrate(ctx))
}

func TestCreateTagGroup_DuplicateNameCaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateTagGroup(ctx, &models.TagGroup{Name: "Colors"}))

	err := s.CreateTagGroup(ctx, &models.TagGroup{Name: "  colors "})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestCreateTag_UniquePerGroupOnly(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	colors := createGroup(t, s, "colors")
	events := createGroup(t, s, "events")

	createTag(t, s, colors, "red")

	// duplicate value in the same group is rejected case-insensitively
	err := s.CreateTag(ctx, &models.Tag{GroupID: colors.ID, Value: "RED"})
	require.Error(t, err)

	// the same value in another group is fine
	require.NoError(t, s.CreateTag(ctx, &models.Tag{GroupID: events.ID, Value: "red"}))
}

func TestEnsureItem_CreatesOnce(t *testing.T) {
	s := newTestStore(t)

	first := ensureFile(t, s, "/data/a.txt", 100)
	second := ensureFile(t, s, "/data/a.txt", 200)

	assert.Equal(t, first.ID, second.ID)
	require.NotNil(t, second.Size)
	assert.Equal(t, int64(200), *second.Size)
}

func TestEnsureItem_RestoresSoftDeleted(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	item := ensureFile(t, s, "/data/a.txt", 100)
	require.NoError(t, s.SoftDeleteItem(ctx, item.ID))

	items, err := s.ListCandidateItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	restored := ensureFile(t, s, "/data/a.txt", 100)
	assert.Equal(t, item.ID, restored.ID)

	items, err = s.ListCandidateItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestListCandidateItems_ExcludesSoftDeleted(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	kept := ensureFile(t, s, "/keep.txt", 1)
	gone := ensureFile(t, s, "/gone.txt", 2)
	require.NoError(t, s.SoftDeleteItem(ctx, gone.ID))

	items, err := s.ListCandidateItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, kept.ID, items[0].ID)
}

func TestTagItemAndResolveTagValues(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	colors := createGroup(t, s, "colors")
	red := createTag(t, s, colors, "red")
	blue := createTag(t, s, colors, "blue")

	a := ensureFile(t, s, "/a.txt", 1)
	b := ensureFile(t, s, "/b.txt", 2)

	require.NoError(t, s.TagItem(ctx, a.ID, red.ID))
	require.NoError(t, s.TagItem(ctx, a.ID, blue.ID))
	require.NoError(t, s.TagItem(ctx, b.ID, red.ID))

	values, err := s.ResolveTagValues(ctx, []uint{a.ID, b.ID})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"red", "blue"}, values[a.ID])
	assert.Equal(t, []string{"red"}, values[b.ID])

	require.NoError(t, s.UntagItem(ctx, a.ID, red.ID))
	values, err = s.ResolveTagValues(ctx, []uint{a.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"blue"}, values[a.ID])
}

func TestResolveTagValues_SkipsDeletedTags(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	colors := createGroup(t, s, "colors")
	red := createTag(t, s, colors, "red")

	a := ensureFile(t, s, "/a.txt", 1)
	require.NoError(t, s.TagItem(ctx, a.ID, red.ID))
	require.NoError(t, s.DeleteTag(ctx, red.ID))

	values, err := s.ResolveTagValues(ctx, []uint{a.ID})
	require.NoError(t, err)
	assert.Empty(t, values[a.ID])
}

func TestSearchHistory_Lifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := &models.SearchHistoryEntry{RawQuery: `tag = "a"`,
		ExecutedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	second := &models.SearchHistoryEntry{TagIDs: "1,2", Combinator: "AND",
		ExecutedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, s.AppendSearchHistory(ctx, first))
	require.NoError(t, s.AppendSearchHistory(ctx, second))

	entries, err := s.ListSearchHistory(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// most recent first
	assert.Equal(t, second.ID, entries[0].ID)

	entries, err = s.ListSearchHistory(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	require.NoError(t, s.DeleteSearchHistory(ctx, first.ID))
	entries, err = s.ListSearchHistory(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	require.NoError(t, s.ClearSearchHistory(ctx))
	entries, err = s.ListSearchHistory(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAppendSearchHistory_DefaultsTimestamp(t *testing.T) {
	s := newTestStore(t)

	entry := &models.SearchHistoryEntry{RawQuery: `tag = "a"`}
	require.NoError(t, s.AppendSearchHistory(context.Background(), entry))
	assert.False(t, entry.ExecutedAt.IsZero())
}
