package cli

import (
	"fmt"
	"strings"

	"github.com/mwantia/gotags/pkg/db/models"
	"github.com/mwantia/gotags/pkg/search"
	"github.com/spf13/cobra"
)

func NewSearchCommand() *cobra.Command {
	var tagValues []string
	var anyTag bool
	var nameSub string
	var sortBy string
	var desc bool

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search items by tag selection",
		Long: `Search items carrying the selected tags.

By default an item must carry every selected tag; with --any one
matching tag is enough. An optional --name substring narrows results
by filename regardless of the tag combinator.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(tagValues) == 0 {
				return fmt.Errorf("at least one --tag is required")
			}

			ctx := cmd.Context()
			rt, err := loadRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			tags, err := rt.Store().ListTags(ctx)
			if err != nil {
				return fmt.Errorf("failed to list tags: %w", err)
			}

			ids, err := resolveTagIDs(tagValues, tags)
			if err != nil {
				return err
			}

			combinator := search.CombinatorAnd
			if anyTag {
				combinator = search.CombinatorOr
			}
			criteria := search.SearchCriteria{
				TagIDs:        ids,
				Combinator:    combinator,
				NameSubstring: nameSub,
			}

			pred := search.BuildBooleanFilter(criteria, tags)
			key, order := sortParams(rt.Config(), sortBy, desc)

			items, err := rt.Engine().Evaluate(ctx, pred, key, order)
			if err != nil {
				return err
			}

			idStrings := make([]string, len(ids))
			for i, id := range ids {
				idStrings[i] = fmt.Sprintf("%d", id)
			}
			entry := &models.SearchHistoryEntry{
				TagIDs:     strings.Join(idStrings, ","),
				Combinator: string(combinator),
			}
			if err := rt.Store().AppendSearchHistory(ctx, entry); err != nil {
				rt.Logger().Warn("Failed to record search history: %v", err)
			}

			printItems(items)
			fmt.Printf("%d items\n", len(items))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&tagValues, "tag", nil, "tag value to select (repeatable)")
	cmd.Flags().BoolVar(&anyTag, "any", false, "match items carrying any selected tag instead of all")
	cmd.Flags().StringVar(&nameSub, "name", "", "filename substring filter")
	cmd.Flags().StringVar(&sortBy, "sort", "", "sort key (name, date or size)")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")

	return cmd
}

// resolveTagIDs maps selected tag values to ids, case-insensitively.
// Identical values in different groups are one match target, so the
// first id found per value suffices.
func resolveTagIDs(values []string, tags []models.Tag) ([]uint, error) {
	ids := make([]uint, 0, len(values))
	for _, value := range values {
		found := false
		for _, tag := range tags {
			if strings.EqualFold(tag.Value, strings.TrimSpace(value)) {
				ids = append(ids, tag.ID)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown tag %q", value)
		}
	}
	return ids, nil
}
