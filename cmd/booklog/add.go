package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"booklog/internal/book"
	"booklog/internal/readinglog"
)

func addCommand(open OpenFunc) *cobra.Command {
	values := make(map[string]*string, len(book.Fields))

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cleanup, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			view := readinglog.NewView(client)
			defer view.Close()

			for _, field := range book.Fields {
				if err := view.EditField(field, *values[field]); err != nil {
					return err
				}
			}

			res, err := view.Submit(cmd.Context())
			if err != nil {
				return err
			}
			if res.Book != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "stored book %d: %s\n", res.Book.ID, res.Book.Title)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "stored (backend did not return the row)")
			return nil
		},
	}

	today := time.Now().Format(book.DateLayout)
	for _, field := range book.Fields {
		def := ""
		if field == book.FieldReadDate {
			def = today
		}
		values[field] = cmd.Flags().String(flagName(field), def, strings.ReplaceAll(field, "_", " "))
	}
	_ = cmd.MarkFlagRequired(flagName(book.FieldTitle))
	return cmd
}

// flagName turns a column name into a flag name: read_date becomes read-date.
func flagName(field string) string {
	return strings.ReplaceAll(field, "_", "-")
}
