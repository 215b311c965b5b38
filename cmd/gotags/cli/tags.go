package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/mwantia/gotags/pkg/db/models"
	"github.com/spf13/cobra"
)

func NewTagsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Manage tag groups and tags",
	}

	cmd.AddCommand(newTagsListCommand())
	cmd.AddCommand(newTagsGroupsCommand())
	cmd.AddCommand(newTagsAddCommand())
	cmd.AddCommand(newTagsApplyCommand())

	return cmd
}

func newTagsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := loadRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			groups, err := rt.Store().ListTagGroups(ctx)
			if err != nil {
				return err
			}
			groupNames := make(map[uint]string, len(groups))
			for _, group := range groups {
				groupNames[group.ID] = group.Name
			}

			tags, err := rt.Store().ListTags(ctx)
			if err != nil {
				return err
			}
			for _, tag := range tags {
				fmt.Printf("%4d  %s/%s\n", tag.ID, groupNames[tag.GroupID], tag.Value)
			}
			return nil
		},
	}
}

func newTagsGroupsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List tag groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := loadRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			groups, err := rt.Store().ListTagGroups(ctx)
			if err != nil {
				return err
			}
			for _, group := range groups {
				fmt.Printf("%4d  %-20s %s\n", group.ID, group.Name, group.Color)
			}
			return nil
		},
	}
}

func newTagsAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <group> <value>",
		Short: "Create a tag, creating its group if needed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := loadRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			group, err := rt.Store().GetTagGroup(ctx, args[0])
			if err != nil {
				group = &models.TagGroup{Name: strings.TrimSpace(args[0])}
				if err := rt.Store().CreateTagGroup(ctx, group); err != nil {
					return err
				}
			}

			tag := &models.Tag{GroupID: group.ID, Value: args[1]}
			if err := rt.Store().CreateTag(ctx, tag); err != nil {
				return err
			}

			fmt.Printf("Created tag %s/%s (%d)\n", group.Name, tag.Value, tag.ID)
			return nil
		},
	}
}

func newTagsApplyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "apply <path> <tag>...",
		Short: "Tag a file or directory",
		Long:  "Attach one or more existing tags to a path. The item is created on first tagging.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := loadRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			tags, err := rt.Store().ListTags(ctx)
			if err != nil {
				return err
			}
			ids, err := resolveTagIDs(args[1:], tags)
			if err != nil {
				return err
			}

			path := args[0]
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("failed to stat %q: %w", path, err)
			}

			var size *int64
			if !info.IsDir() {
				n := info.Size()
				size = &n
			}
			modified := info.ModTime().UTC()

			item, err := rt.Store().EnsureItem(ctx, path, info.IsDir(), size, &modified)
			if err != nil {
				return err
			}

			for _, id := range ids {
				if err := rt.Store().TagItem(ctx, item.ID, id); err != nil {
					return err
				}
			}

			fmt.Printf("Tagged %s with %d tag(s)\n", path, len(ids))
			return nil
		},
	}
}
