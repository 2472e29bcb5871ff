/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ssargent/scratchlivedb/pkg/scratchdb"
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify [file]...",
	Short: "Check that files survive a parse and rewrite unchanged",
	Long: `Parse each file and serialize it again. The command fails if any file
cannot be parsed or if the rewritten bytes differ from the original. Files
are never modified. Without arguments the configured database and every
crate in the crate directory are checked.

Examples:
  scratchlive verify
  scratchlive verify "database V2" Subcrates/*.crate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := fileKind(cmd)
		if err != nil {
			return err
		}
		if len(args) == 0 {
			if args, err = libraryFiles(); err != nil {
				return err
			}
		}

		var failed int
		for _, path := range args {
			if err := verifyFile(path, format); err != nil {
				cmd.Printf("FAIL %s: %v\n", path, err)
				failed++
				continue
			}
			cmd.Printf("ok   %s\n", path)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed verification", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func verifyFile(path string, format *scratchdb.Format) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	kind := scratchdb.FormatForPath(path)
	if format != nil {
		kind = *format
	}
	f, err := scratchdb.Parse(data, kind, container.FileOptions()...)
	if err != nil {
		return err
	}
	out := f.Bytes()
	if !bytes.Equal(data, out) {
		return fmt.Errorf("rewrite differs at byte %d (%d entries, %d bytes in, %d out)",
			firstDiff(data, out), f.Len(), len(data), len(out))
	}
	return nil
}

func firstDiff(a, b []byte) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
