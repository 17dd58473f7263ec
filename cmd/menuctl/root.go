package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/menushare/internal/client"
	"github.com/dgallion1/menushare/internal/logging"
)

const defaultServer = "http://localhost:8787"

type rootOptions struct {
	server  string
	verbose bool
	log     *slog.Logger
}

func (o *rootOptions) client() *client.Client {
	o.log.Debug("using server", "url", o.server)
	return client.New(o.server)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{log: slog.New(slog.NewTextHandler(io.Discard, nil))}

	cmd := &cobra.Command{
		Use:   "menuctl",
		Short: "Publish and edit menus on a menushare server",
		Long: `menuctl talks to a menushare server. Menus are JSON or YAML documents with a
name, a currency code and a list of items; each created menu comes with an edit
token that is needed for every later update.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.log = logging.NewText(cmd.ErrOrStderr(), opts.verbose)
		},
	}

	server := os.Getenv("MENUSHARE_URL")
	if server == "" {
		server = defaultServer
	}
	cmd.PersistentFlags().StringVarP(&opts.server, "server", "s", server, "menushare server URL (env MENUSHARE_URL)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(
		newCreateCmd(opts),
		newGetCmd(opts),
		newUpdateCmd(opts),
		newImportCmd(opts),
		newPreviewCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "menuctl", version)
		},
	}
}
