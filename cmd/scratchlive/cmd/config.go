/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ssargent/scratchlivedb/pkg/config"
	"gopkg.in/yaml.v3"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

// initConfigCmd represents the config init command
var initConfigCmd = &cobra.Command{
	Use:         "init",
	Short:       "Write a default configuration file",
	Annotations: map[string]string{skipConfigLoad: "true"},
	Long: `Write a configuration file with default values to the --config path or
~/.config/scratchlive/config.yaml. An existing file is left alone unless
--force is given.

Examples:
  scratchlive config init
  scratchlive config init --with-api-key`,
	RunE: func(cmd *cobra.Command, args []string) error {
		withAPIKey, _ := cmd.Flags().GetBool("with-api-key")
		force, _ := cmd.Flags().GetBool("force")

		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			path = config.GetDefaultConfigPath()
		}
		if config.ConfigExists(path) && !force {
			return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
		}

		cfg, err := config.BootstrapConfig(path, withAPIKey)
		if err != nil {
			return err
		}

		cmd.Printf("wrote %s\n", path)
		if cfg.Server.APIKey != "" {
			cmd.Printf("API key: %s\n", cfg.Server.APIKey)
		}
		return nil
	},
}

// showConfigCmd represents the config show command
var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(container.Config())
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		cmd.Print(string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(initConfigCmd)
	configCmd.AddCommand(showConfigCmd)

	initConfigCmd.Flags().Bool("with-api-key", false, "Generate an API key for the inspection server")
	initConfigCmd.Flags().Bool("force", false, "Overwrite an existing config file")
}
