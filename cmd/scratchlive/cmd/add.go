/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/ssargent/scratchlivedb/pkg/scratchdb"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <file> <track>...",
	Short: "Append stub entries for new tracks",
	Long: `Append a minimal entry for each track path: file type, time added and
the path itself. Scratch Live fills in the remaining tags on its next rescan.

The file is locked while it is rewritten and the previous version is kept as
a backup snapshot. A missing file is created with --create.

Examples:
  scratchlive add "database V2" /music/new/one.mp3 /music/new/two.mp3
  scratchlive add "database V2" /music/new/one.mp3 --title "One"`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		create, _ := cmd.Flags().GetBool("create")
		skipExisting, _ := cmd.Flags().GetBool("skip-existing")

		if title != "" && len(args) != 2 {
			return errors.New("--title needs exactly one track")
		}

		var added int
		f, err := editFile(cmd, args[0], create, "add", func(f *scratchdb.File) error {
			for _, track := range args[1:] {
				if skipExisting {
					if i, _ := f.Find(track); i >= 0 {
						cmd.Printf("skipped %s (entry %d)\n", track, i)
						continue
					}
				}
				e := f.MakeEntry(track)
				if title != "" {
					if err := e.SetTrackTitle(title); err != nil {
						return err
					}
				}
				f.Append(e)
				added++
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, d := range f.Diagnostics() {
			if d.Kind == scratchdb.DiagUnsupportedExtension {
				cmd.Printf("warning: %s (%s)\n", d, d.EntryID)
			}
		}
		cmd.Printf("added %d entries, %d total\n", added, f.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().String("title", "", "Track title for the new entry")
	addCmd.Flags().Bool("create", false, "Create the file if it does not exist")
	addCmd.Flags().Bool("skip-existing", false, "Skip tracks that already have an entry")
}
