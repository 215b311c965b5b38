package main

import (
	"fmt"
	"os"

	"github.com/mwantia/gotags/cmd/gotags/cli"
)

var (
	version = "0.0.1-dev"
	commit  = "main"
)

func main() {
	root := cli.NewRootCommand(cli.VersionInfo{
		Version: version,
		Commit:  commit,
	})

	root.AddCommand(cli.NewVersionCommand())

	root.AddCommand(cli.NewQueryCommand())
	root.AddCommand(cli.NewSearchCommand())
	root.AddCommand(cli.NewTagsCommand())
	root.AddCommand(cli.NewHistoryCommand())
	root.AddCommand(cli.NewConfigCommand())

	if err := root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
