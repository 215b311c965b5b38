package cli

import (
	"context"
	"fmt"

	"github.com/mwantia/gotags/internal/config"
	"github.com/mwantia/gotags/internal/runtime"
	"github.com/mwantia/gotags/pkg/db/models"
	"github.com/mwantia/gotags/pkg/search"
)

func loadRuntime(ctx context.Context) (*runtime.Runtime, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return runtime.New(ctx, cfg)
}

// sortParams resolves the effective sort key and order from flags,
// falling back to the configured defaults.
func sortParams(cfg *config.BaseConfig, sortFlag string, desc bool) (search.SortKey, search.SortOrder) {
	key := search.SortKey(sortFlag)
	if sortFlag == "" {
		key = search.SortKey(cfg.Search.DefaultSort)
	}
	switch key {
	case search.SortByName, search.SortByDate, search.SortBySize:
	default:
		key = search.SortByName
	}

	order := search.SortAscending
	if desc || (!desc && cfg.Search.DefaultOrder == "desc" && sortFlag == "") {
		order = search.SortDescending
	}
	return key, order
}

func printItems(items []models.Item) {
	for _, item := range items {
		kind := "file"
		if item.IsDir {
			kind = "dir"
		}

		size := "-"
		if item.Size != nil {
			size = humanSize(*item.Size)
		}

		modified := "-"
		if item.ModifiedAt != nil {
			modified = item.ModifiedAt.Format("2006-01-02 15:04")
		}

		fmt.Printf("%-4s  %10s  %16s  %s\n", kind, size, modified, item.Path)
	}
}

func humanSize(n int64) string {
	switch {
	case n >= 1024*1024*1024:
		return fmt.Sprintf("%.1fGB", float64(n)/(1024*1024*1024))
	case n >= 1024*1024:
		return fmt.Sprintf("%.1fMB", float64(n)/(1024*1024))
	case n >= 1024:
		return fmt.Sprintf("%.1fKB", float64(n)/1024)
	}
	return fmt.Sprintf("%dB", n)
}
