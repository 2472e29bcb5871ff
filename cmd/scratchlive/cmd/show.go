/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/ssargent/scratchlivedb/pkg/fields"
	"github.com/ssargent/scratchlivedb/pkg/scratchdb"
	"github.com/ssargent/scratchlivedb/pkg/unknown"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show [file] <index>",
	Short: "Show every field of one entry",
	Long: `Show every field of the entry at the given zero-based index, in file
order. Keys outside the known field list are marked with "?" and decoded by
their prefix where possible. Without a file the configured database is read.

Examples:
  scratchlive show 12
  scratchlive show House.crate 3`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		last := args[len(args)-1]
		index, err := strconv.Atoi(last)
		if err != nil {
			return fmt.Errorf("invalid index %q: %w", last, err)
		}

		path, err := pathArg(args[:len(args)-1])
		if err != nil {
			return err
		}
		f, err := loadFile(cmd, path)
		if err != nil {
			return err
		}
		e, err := f.Entry(index)
		if err != nil {
			return err
		}

		cmd.Printf("entry %d of %d (%s, %d bytes)\n", index, f.Len(), e.Tag(), e.Size())
		cmd.Println(renderTable(
			[]string{"Key", "Name", "Kind", "Value"},
			entryRows(e),
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
		))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func entryRows(e *scratchdb.Entry) [][]string {
	rows := make([][]string, 0, e.Len())
	for _, key := range e.Keys() {
		raw, _ := e.Raw(key)
		field, err := fields.Lookup(key)
		if err != nil {
			kind := "?"
			if k, err := fields.GuessKind(key); err == nil {
				kind = k.String() + "?"
			}
			rows = append(rows, []string{key, "", kind, unknown.FormatValue(key, raw)})
			continue
		}
		v, _, err := e.Get(key)
		value := v.String()
		if err != nil {
			value = fmt.Sprintf("%q (%v)", raw, err)
		}
		rows = append(rows, []string{key, field.Name, field.Kind.String(), value})
	}
	return rows
}
