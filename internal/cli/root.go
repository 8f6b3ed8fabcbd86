// Package cli implements the docxhtml command line interface.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tsawler/docxhtml"
	"github.com/tsawler/docxhtml/internal/config"
	"github.com/tsawler/docxhtml/internal/logger"
	"go.uber.org/zap"
)

// configFlags maps config keys to the persistent flags that override them.
var configFlags = map[string]string{
	"full_document":  "full",
	"sanitize":       "sanitize",
	"ignore_spacing": "ignore-spacing",
	"debug":          "debug",
}

// bindFlags binds each config key to the persistent flag of cmd named in
// bind.
func bindFlags(v *viper.Viper, cmd *cobra.Command, bind map[string]string) error {
	for key, name := range bind {
		if err := v.BindPFlag(key, cmd.PersistentFlags().Lookup(name)); err != nil {
			return fmt.Errorf("binding --%s to %s: %w", name, key, err)
		}
	}
	return nil
}

// app carries the state shared by the commands of one invocation.
type app struct {
	v      *viper.Viper
	cfg    *config.Config
	logger *zap.Logger

	cfgFile string
	output  string
	noColor bool
}

// NewRootCommand creates the root command. Running it with a file argument
// converts the file to HTML.
func NewRootCommand(version string) *cobra.Command {
	a := &app{v: config.New(), logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:   "docxhtml [file]",
		Short: "Convert DOCX documents to HTML",
		Long: `docxhtml converts the body of a DOCX document to HTML.

Paragraph styles, lists, hyperlinks and tables are rendered; headers,
footers, images and footnotes are not. Conversion defaults can be set in
.docxhtml.yaml or with DOCXHTML_* environment variables.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args[0], (*docxhtml.Converter).HTML, true)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: .docxhtml.yaml in $HOME or the current directory)")
	flags.StringVarP(&a.output, "output", "o", "", "write output to file instead of stdout")
	flags.Bool("full", false, "wrap the HTML in a standalone document")
	flags.Bool("sanitize", false, "filter the HTML through the output sanitization policy")
	flags.Bool("ignore-spacing", false, "do not render paragraph spacing")
	flags.Bool("debug", false, "log conversion diagnostics at debug level")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	if err := bindFlags(a.v, cmd, configFlags); err != nil {
		panic(err)
	}

	cmd.AddCommand(newTextCommand(a))
	cmd.AddCommand(newMarkdownCommand(a))
	cmd.AddCommand(newServeCommand(a))

	return cmd
}

// setup loads configuration and builds the logger.
func (a *app) setup() error {
	if a.noColor {
		color.NoColor = true
	}

	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	log, err := logger.New(cfg.Debug)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	a.logger = log
	return nil
}

// converter builds a Converter for path from the loaded configuration.
func (a *app) converter(path string, html bool) *docxhtml.Converter {
	c := docxhtml.Open(path).WithLogger(a.logger)
	if a.cfg.IgnoreSpacing {
		c = c.IgnoreSpacing()
	}
	if html && a.cfg.FullDocument {
		c = c.FullDocument()
	}
	if html && a.cfg.Sanitize {
		c = c.Sanitize()
	}
	return c
}

// run converts path with op, prints warnings to stderr and writes the
// result to stdout or the --output file.
func (a *app) run(cmd *cobra.Command, path string, op func(*docxhtml.Converter) (string, []docxhtml.Warning, error), html bool) error {
	defer a.logger.Sync()

	out, warnings, err := op(a.converter(path, html))
	if err != nil {
		return err
	}

	yellow := color.New(color.FgYellow)
	for _, w := range warnings {
		yellow.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}

	return a.write(cmd.OutOrStdout(), out)
}

func (a *app) write(stdout io.Writer, out string) error {
	if a.output == "" {
		_, err := io.WriteString(stdout, out)
		return err
	}
	if err := os.WriteFile(a.output, []byte(out), 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// PrintError writes err to w in red.
func PrintError(w io.Writer, err error) {
	color.New(color.FgRed).Fprintf(w, "error: %v\n", err)
}
