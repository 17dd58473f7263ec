package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dgallion1/menushare/internal/client"
	"github.com/dgallion1/menushare/internal/page"
)

func newCreateCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "create [file]",
		Short: "Create a menu from a JSON or YAML file",
		Long:  `Create a menu and print its id, edit token and page URL. Keep the token: it is shown only once.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readPayload(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			c := opts.client()
			created, err := c.Create(cmd.Context(), payload)
			if err != nil {
				return fmt.Errorf("create menu: %w", err)
			}
			opts.log.Debug("menu created", "id", created.ID)

			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{
					"id":        created.ID,
					"editToken": created.EditToken,
					"url":       c.PageURL(created.ID),
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "id:    %s\n", created.ID)
			fmt.Fprintf(out, "token: %s\n", created.EditToken)
			fmt.Fprintf(out, "url:   %s\n", c.PageURL(created.ID))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}

func newGetCmd(opts *rootOptions) *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Print a menu's data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := opts.client().Read(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("read menu %s: %w", args[0], err)
			}
			return writeData(cmd.OutOrStdout(), data, asYAML)
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Output in YAML format")
	return cmd
}

func newUpdateCmd(opts *rootOptions) *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "update [id] [file]",
		Short: "Replace a menu's data",
		Long:  `Replace a menu's data with the contents of a JSON or YAML file. Needs the edit token from create.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				token = os.Getenv("MENUSHARE_EDIT_TOKEN")
			}
			if token == "" {
				return errors.New("an edit token is required (--token or MENUSHARE_EDIT_TOKEN)")
			}
			payload, err := readPayload(args[1], cmd.InOrStdin())
			if err != nil {
				return err
			}
			if err := opts.client().Update(cmd.Context(), args[0], token, payload); err != nil {
				return fmt.Errorf("update menu %s: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "updated", args[0])
			return nil
		},
	}
	cmd.Flags().StringVarP(&token, "token", "t", "", "edit token (env MENUSHARE_EDIT_TOKEN)")
	return cmd
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	var (
		importOpts client.ImportOptions
		asYAML     bool
	)
	cmd := &cobra.Command{
		Use:   "import [document]",
		Short: "Create a menu from a Markdown, HTML, text, CSV, PDF or DOCX document",
		Long: `Upload a document and turn it into a menu. Headings become sections and
subsections; lines ending in a price become items. With --dry-run the converted
menu is printed instead of created.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			out, err := opts.client().Import(cmd.Context(), filepath.Base(args[0]), f, importOpts)
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			return writeData(cmd.OutOrStdout(), out, asYAML)
		},
	}
	cmd.Flags().StringVar(&importOpts.Name, "name", "", "menu name (defaults to the document title)")
	cmd.Flags().StringVar(&importOpts.Currency, "currency", "", "currency code, e.g. EUR")
	cmd.Flags().BoolVar(&importOpts.DryRun, "dry-run", false, "print the converted menu without creating it")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Output in YAML format")
	return cmd
}

func newPreviewCmd(opts *rootOptions) *cobra.Command {
	var output, assets string
	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Render the published page for a menu file without a server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readPayload(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			opts.log.Debug("rendering preview", "output", output)
			return page.Render(w, payload, page.Options{AssetsPrefix: assets})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the page to a file instead of stdout")
	cmd.Flags().StringVar(&assets, "assets", "", "URL prefix of wasm_exec.js and viewer.wasm; empty renders a static page")
	return cmd
}
