package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"booklog/internal/book"
)

// OpenFunc returns the data client the commands operate on.
type OpenFunc func(ctx context.Context) (book.Client, func(), error)

// RootCommand creates the booklog CLI with its subcommands.
func RootCommand(open OpenFunc, out io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "booklog",
		Short:        "Reading log from the command line",
		SilenceUsage: true,
	}
	rootCmd.SetOut(out)

	rootCmd.AddCommand(
		listCommand(open),
		addCommand(open),
	)
	return rootCmd
}
