/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"
	"github.com/ssargent/scratchlivedb/pkg/backup"
)

var errBackupsDisabled = errors.New("backups are disabled in the config file")

// backupCmd represents the backup command
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage snapshots of library files",
	Long: `Every add, remove or restore keeps the previous version of the file as
a snapshot in the backup store (backup.dir in the config file). These
commands list, restore and prune those snapshots.`,
}

// listBackupCmd represents the backup list command
var listBackupCmd = &cobra.Command{
	Use:   "list [file]",
	Short: "List snapshots, oldest first",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openBackups()
		if err != nil {
			return err
		}
		source, err := backupSource(args)
		if err != nil {
			return err
		}

		snaps, err := store.List(cmd.Context(), source)
		if err != nil {
			return err
		}
		if len(snaps) == 0 {
			cmd.Println("No snapshots.")
			return nil
		}

		rows := make([][]string, 0, len(snaps))
		for _, s := range snaps {
			rows = append(rows, []string{
				s.ID.String(),
				s.Created.Local().Format(time.DateTime),
				s.Source,
				s.Format,
				strconv.Itoa(s.Entries),
				strconv.Itoa(s.Size),
				s.Reason,
			})
		}
		cmd.Println(renderTable(
			[]string{"ID", "Created", "Source", "Kind", "Entries", "Bytes", "Reason"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
		))
		return nil
	},
}

// restoreBackupCmd represents the backup restore command
var restoreBackupCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Write a snapshot back over its file",
	Long: `Write a snapshot back to the file it was taken from. The current file
is snapshotted first, so a restore can itself be undone.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := ksuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid snapshot id %q: %w", args[0], err)
		}
		if _, err := openBackups(); err != nil {
			return err
		}
		lib, err := container.Library()
		if err != nil {
			return err
		}

		snap, err := lib.Restore(cmd.Context(), id)
		if err != nil {
			return err
		}
		cmd.Printf("restored %s to %s (%d entries)\n", snap.ID, snap.Source, snap.Entries)
		return nil
	},
}

// pruneBackupCmd represents the backup prune command
var pruneBackupCmd = &cobra.Command{
	Use:   "prune [file]",
	Short: "Delete all but the newest snapshots of each file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keep := container.Config().Backup.Keep
		if cmd.Flags().Changed("keep") {
			keep, _ = cmd.Flags().GetInt("keep")
		}

		store, err := openBackups()
		if err != nil {
			return err
		}
		source, err := backupSource(args)
		if err != nil {
			return err
		}

		removed, err := store.Prune(cmd.Context(), source, keep)
		if err != nil {
			return err
		}
		for _, s := range removed {
			cmd.Printf("deleted %s (%s)\n", s.ID, s.Source)
		}
		cmd.Printf("pruned %d snapshots, keeping %d per file\n", len(removed), keep)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(listBackupCmd)
	backupCmd.AddCommand(restoreBackupCmd)
	backupCmd.AddCommand(pruneBackupCmd)

	pruneBackupCmd.Flags().Int("keep", 20, "Snapshots to keep per file (default from config)")
}

func openBackups() (*backup.Store, error) {
	store, err := container.Backups()
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, errBackupsDisabled
	}
	return store, nil
}

// backupSource maps an optional file argument to the absolute path
// snapshots are recorded under.
func backupSource(args []string) (string, error) {
	if len(args) == 0 {
		return "", nil
	}
	return filepath.Abs(args[0])
}
