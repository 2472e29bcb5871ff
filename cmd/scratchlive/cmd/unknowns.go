/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/ssargent/scratchlivedb/pkg/fields"
	"github.com/ssargent/scratchlivedb/pkg/scratchdb"
	"github.com/ssargent/scratchlivedb/pkg/unknown"
)

// unknownsCmd represents the unknowns command
var unknownsCmd = &cobra.Command{
	Use:   "unknowns [file]...",
	Short: "List field keys this tool does not know",
	Long: `Parse one or more files and list every field key outside the known
field list, with how often it occurred and how many distinct values it had.
With --verbose the values are printed next to the entries carrying them.
Without arguments the configured database and every crate in the crate
directory are scanned.

Examples:
  scratchlive unknowns --verbose
  scratchlive unknowns "database V2" Subcrates/*.crate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		maxValues, _ := cmd.Flags().GetInt("max-values")

		format, err := fileKind(cmd)
		if err != nil {
			return err
		}
		if len(args) == 0 {
			if args, err = libraryFiles(); err != nil {
				return err
			}
		}

		tracker := unknown.New()
		opts := append(container.FileOptions(), scratchdb.WithTracker(tracker))
		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			f := scratchdb.FormatForPath(path)
			if format != nil {
				f = *format
			}
			if _, err := scratchdb.Parse(data, f, opts...); err != nil {
				return fmt.Errorf("parse %s: %w", path, err)
			}
		}

		if tracker.Len() == 0 {
			cmd.Println("No unknown fields.")
			return nil
		}

		rows := make([][]string, 0, tracker.Len())
		for _, key := range tracker.Keys() {
			o, _ := tracker.Observation(key)
			kind := "?"
			if k, err := fields.GuessKind(key); err == nil {
				kind = k.String()
			}
			rows = append(rows, []string{
				key,
				kind,
				strconv.Itoa(o.Count()),
				strconv.Itoa(len(o.Samples())),
			})
		}
		cmd.Println(renderTable(
			[]string{"Key", "Kind", "Entries", "Values"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
		))

		if verbose {
			cmd.Println()
			return tracker.Report(cmd.OutOrStdout(), unknown.ReportOptions{MaxValues: maxValues})
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(unknownsCmd)
	unknownsCmd.Flags().BoolP("verbose", "v", false, "Print the values seen for each key")
	unknownsCmd.Flags().Int("max-values", 20, "Distinct values shown per key with --verbose")
}
