package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tsawler/docxhtml"
	"github.com/tsawler/docxhtml/internal/server"
)

func newTextCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "text <file>",
		Short: "Print the plain text of a document body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args[0], (*docxhtml.Converter).Text, false)
		},
	}
}

func newMarkdownCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "markdown <file>",
		Short: "Convert a document body to Markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args[0], (*docxhtml.Converter).Markdown, false)
		},
	}
}

func newServeCommand(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP conversion service",
		Long: `Run an HTTP service converting uploaded documents.

  POST /convert   body: DOCX bytes, or multipart form field "file"
                  query: format=html|text|markdown, full, sanitize, spacing
  GET  /healthz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return server.New(a.cfg, a.logger).ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}
