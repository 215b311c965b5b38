package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage search history",
	}

	cmd.AddCommand(newHistoryListCommand())
	cmd.AddCommand(newHistoryDeleteCommand())
	cmd.AddCommand(newHistoryClearCommand())

	return cmd
}

func newHistoryListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent searches",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := loadRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			if limit <= 0 {
				limit = rt.Config().Search.HistoryLimit
			}

			entries, err := rt.Store().ListSearchHistory(ctx, limit)
			if err != nil {
				return err
			}

			for _, entry := range entries {
				desc := entry.RawQuery
				if desc == "" {
					desc = fmt.Sprintf("tags [%s] %s", entry.TagIDs, entry.Combinator)
				}
				fmt.Printf("%4d  %s  %s\n", entry.ID, entry.ExecutedAt.Format("2006-01-02 15:04:05"), desc)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum entries to list (default from config)")

	return cmd
}

func newHistoryDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one history entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid history id %q", args[0])
			}

			ctx := cmd.Context()
			rt, err := loadRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			return rt.Store().DeleteSearchHistory(ctx, uint(id))
		},
	}
}

func newHistoryClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all search history",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := loadRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			return rt.Store().ClearSearchHistory(ctx)
		},
	}
}
