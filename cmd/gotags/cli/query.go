package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mwantia/gotags/internal/runtime"
	"github.com/mwantia/gotags/pkg/db/models"
	"github.com/mwantia/gotags/pkg/search"
	"github.com/spf13/cobra"
)

func NewQueryCommand() *cobra.Command {
	var sortBy string
	var desc bool

	cmd := &cobra.Command{
		Use:   "query [expression]",
		Short: "Run a structured search query",
		Long: `Run a structured search query against the tag database.

Fields:    tag, name, size, modified, type
Operators: = != ~ > < >= <= IN
Logic:     AND, OR, NOT, parentheses

Examples:
  gotags query 'tag = "vacation" AND type = image'
  gotags query 'size > 10MB OR name ~ "*.mkv"'
  gotags query 'tag IN ("red", "blue") AND NOT tag = "archived"'

Without an expression an interactive prompt is started; each line is
dispatched as its own search and stale results are discarded.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			rt, err := loadRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			key, order := sortParams(rt.Config(), sortBy, desc)

			if len(args) == 1 {
				return runQuery(ctx, rt, args[0], key, order)
			}
			return runInteractive(ctx, rt, key, order)
		},
	}

	cmd.Flags().StringVar(&sortBy, "sort", "", "sort key (name, date or size)")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")

	return cmd
}

func runQuery(ctx context.Context, rt *runtime.Runtime, text string, key search.SortKey, order search.SortOrder) error {
	pred, err := search.ParseQuery(text)
	if err != nil {
		return err
	}

	items, err := rt.Engine().Evaluate(ctx, pred, key, order)
	if err != nil {
		return err
	}

	entry := &models.SearchHistoryEntry{RawQuery: text}
	if err := rt.Store().AppendSearchHistory(ctx, entry); err != nil {
		rt.Logger().Warn("Failed to record search history: %v", err)
	}

	printItems(items)
	fmt.Printf("%d items\n", len(items))
	return nil
}

func runInteractive(ctx context.Context, rt *runtime.Runtime, key search.SortKey, order search.SortOrder) error {
	session := rt.NewSession(func(result search.SearchResult) {
		if result.Err != nil {
			fmt.Printf("search #%d failed: %v\n> ", result.Seq, result.Err)
			return
		}
		printItems(result.Items)
		fmt.Printf("%d items\n> ", len(result.Items))
	})
	session.SetSort(key, order)

	fmt.Println("Enter one query per line; empty line or Ctrl-D exits.")
	fmt.Print("> ")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}
		if _, err := session.SubmitQuery(ctx, line); err != nil {
			fmt.Printf("%v\n> ", err)
		}
	}

	session.Wait()
	return scanner.Err()
}
