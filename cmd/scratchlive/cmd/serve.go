/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ssargent/scratchlivedb/pkg/api"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve [file]",
	Short: "Start the read-only inspection API",
	Long: `Start an HTTP server that exposes one library file as JSON: the header,
a paged entry list, decoded entries and the unknown fields report. The file
is read at startup and again on POST /api/v1/reload.

Address and API key default to the server section of the config file, and
the file to the configured database.

Examples:
  scratchlive serve
  scratchlive serve House.crate --port 9000 --api-key mysecretkey`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := container.Config()
		path, err := pathArg(args)
		if err != nil {
			return err
		}

		config := api.ServerConfig{
			Bind:   cfg.Server.Bind,
			Port:   cfg.Server.Port,
			APIKey: cfg.Server.APIKey,
			Path:   path,
		}
		if cmd.Flags().Changed("port") {
			config.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("bind") {
			config.Bind, _ = cmd.Flags().GetString("bind")
		}
		if cmd.Flags().Changed("api-key") {
			config.APIKey, _ = cmd.Flags().GetString("api-key")
		}

		format, err := fileKind(cmd)
		if err != nil {
			return err
		}
		config.Format = format

		lib, err := container.Library()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		starter := container.GetServerFactory().CreateServerStarter()
		return starter.StartServer(ctx, lib, config, container.Logger())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind to")
	serveCmd.Flags().String("api-key", "", "Require this key in the X-API-Key header")
}
