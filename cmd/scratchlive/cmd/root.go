/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/ssargent/scratchlivedb/pkg/config"
	"github.com/ssargent/scratchlivedb/pkg/di"
	"github.com/ssargent/scratchlivedb/pkg/logging"
	"github.com/ssargent/scratchlivedb/pkg/scratchdb"
)

var container *di.Container

// SetContainer sets the dependency injection container
func SetContainer(c *di.Container) {
	container = c
}

var errNoContainer = errors.New("dependency container not initialized")

var errNoDatabase = errors.New("no file given and library.database_path is not set")

// skipConfigLoad marks commands that run on the default configuration
// instead of reading the config file.
const skipConfigLoad = "skip-config-load"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scratchlive",
	Short: "Inspect and edit Scratch Live library files",
	Long: `scratchlive reads and writes the Scratch Live "database V2" file and
its *.crate files. Files are rewritten byte for byte: fields this tool does
not understand are kept as they were.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if container == nil {
			return errNoContainer
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		level, _ := cmd.Flags().GetString("log-level")
		if level == "" {
			level = cfg.Logging.Level
		}
		format, _ := cmd.Flags().GetString("log-format")
		if format == "" {
			format = cfg.Logging.Format
		}
		logger, err := logging.New(logging.Options{
			Level:  level,
			Format: format,
			Writer: cmd.ErrOrStderr(),
		})
		if err != nil {
			return err
		}

		container.SetConfig(cfg)
		container.SetLogger(logger)
		slog.SetDefault(logger)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if container == nil {
			return nil
		}
		return container.Close()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.config/scratchlive/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides config)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: auto, console or json (overrides config)")
	rootCmd.PersistentFlags().String("kind", "auto", "File kind: auto, crate or database")
}

// loadConfig reads the config file when there is one. An explicitly named
// file must exist.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if _, skip := cmd.Annotations[skipConfigLoad]; skip {
		return config.DefaultConfig(), nil
	}
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return config.LoadConfig(path)
	}
	path = config.GetDefaultConfigPath()
	if !config.ConfigExists(path) {
		return config.DefaultConfig(), nil
	}
	return config.LoadConfig(path)
}

// fileKind returns the format forced by --kind, or nil to pick the format
// from the file name.
func fileKind(cmd *cobra.Command) (*scratchdb.Format, error) {
	kind, _ := cmd.Flags().GetString("kind")
	if kind == "" || kind == "auto" {
		return nil, nil
	}
	f, err := scratchdb.FormatByName(kind)
	if err != nil {
		return nil, fmt.Errorf("--kind: %w", err)
	}
	return &f, nil
}

// loadFile parses path with the container's library
func loadFile(cmd *cobra.Command, path string) (*scratchdb.File, error) {
	format, err := fileKind(cmd)
	if err != nil {
		return nil, err
	}
	lib, err := container.Library()
	if err != nil {
		return nil, err
	}
	return lib.Load(cmd.Context(), path, format)
}

// editFile runs fn on path under the library lock and saves the result
func editFile(cmd *cobra.Command, path string, create bool, reason string, fn func(*scratchdb.File) error) (*scratchdb.File, error) {
	format, err := fileKind(cmd)
	if err != nil {
		return nil, err
	}
	lib, err := container.Library()
	if err != nil {
		return nil, err
	}
	return lib.Edit(cmd.Context(), path, format, create, reason, fn)
}

// databasePath returns the configured database for commands run without a
// file argument.
func databasePath() (string, error) {
	path := container.Config().Library.Database()
	if path == "" {
		return "", errNoDatabase
	}
	return path, nil
}

// pathArg returns args[0], or the configured database when args is empty
func pathArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return databasePath()
}

// libraryFiles returns the configured database followed by every crate in
// the crate directory.
func libraryFiles() ([]string, error) {
	lib := container.Config().Library
	var paths []string
	if db := lib.Database(); db != "" {
		paths = append(paths, db)
	}
	crates, err := lib.Crates()
	if err != nil {
		return nil, err
	}
	paths = append(paths, crates...)
	if len(paths) == 0 {
		return nil, errNoDatabase
	}
	return paths, nil
}
