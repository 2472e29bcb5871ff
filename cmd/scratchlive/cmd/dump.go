/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/ssargent/scratchlivedb/pkg/fields"
)

// dumpCmd represents the dump command
var dumpCmd = &cobra.Command{
	Use:   "dump [file]",
	Short: "Print one field of every entry",
	Long: `Print one line per entry with the value of the named field. The field
is given by accessor name (filebase, tracktitle, ...) or wire key (pfil,
tsng, ...). Entries without the field print an empty line.

Without --field, database entries print their file name and crate entries
their track name. Without a file the configured database is read.

Examples:
  scratchlive dump
  scratchlive dump "database V2"
  scratchlive dump House.crate --field filetrack`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("field")

		path, err := pathArg(args)
		if err != nil {
			return err
		}
		f, err := loadFile(cmd, path)
		if err != nil {
			return err
		}

		if name == "" {
			for _, e := range f.Entries() {
				cmd.Println(e.ID())
			}
			return nil
		}

		field, err := fields.Resolve(name)
		if err != nil {
			return err
		}
		for _, e := range f.Entries() {
			v, ok, err := e.Get(field.Key)
			if err != nil {
				return err
			}
			if !ok {
				cmd.Println()
				continue
			}
			cmd.Println(v.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().StringP("field", "f", "", "Field to print, by accessor name or key")
}
