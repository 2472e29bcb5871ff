/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/ssargent/scratchlivedb/pkg/scratchdb"
)

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:   "remove <file> <index>",
	Short: "Remove one entry",
	Long: `Remove the entry at the given zero-based index. Use dump to find the
index. The previous version of the file is kept as a backup snapshot.

Example:
  scratchlive remove House.crate 3`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid index %q: %w", args[1], err)
		}

		var removed *scratchdb.Entry
		f, err := editFile(cmd, args[0], false, "remove "+args[1], func(f *scratchdb.File) error {
			e, err := f.Remove(index)
			removed = e
			return err
		})
		if err != nil {
			return err
		}

		cmd.Printf("removed entry %d (%s), %d left\n", index, removed.ID(), f.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
