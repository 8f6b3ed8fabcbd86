package docxhtml

import (
	"fmt"
	"io"

	"github.com/tsawler/docxhtml/docx"
	"github.com/tsawler/docxhtml/format"
	"go.uber.org/zap"
)

// Converter provides a fluent interface for converting DOCX documents.
// Each configuration method returns a new Converter instance, making it
// safe to branch a base configuration.
type Converter struct {
	// Source
	filename string
	pkg      docx.Package

	// Lifecycle
	closer io.Closer // set when the Converter opened the package itself
	opened bool

	options ConvertOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Converter with a copy of options.
func (c *Converter) clone() *Converter {
	return &Converter{
		filename: c.filename,
		pkg:      c.pkg,
		closer:   c.closer,
		opened:   c.opened,
		options:  c.options.clone(),
		err:      c.err,
	}
}

// ensurePackage opens the package if not already open.
func (c *Converter) ensurePackage() error {
	if c.opened {
		return nil
	}
	if c.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	if f := format.Detect(c.filename); f != format.DOCX && f != format.Unknown {
		return fmt.Errorf("%s: %w: detected %s", c.filename, format.ErrNotDOCX, f)
	}

	a, err := docx.Open(c.filename)
	if err != nil {
		return fmt.Errorf("failed to open DOCX: %w", err)
	}
	c.pkg = a
	c.closer = a
	c.opened = true
	return nil
}

// openReaderAt checks and opens an in-memory package.
func (c *Converter) openReaderAt(r io.ReaderAt, size int64) error {
	if err := format.Require(r, size); err != nil {
		return err
	}
	a, err := docx.NewArchive(r, size)
	if err != nil {
		return fmt.Errorf("failed to open DOCX: %w", err)
	}
	c.pkg = a
	c.opened = true
	return nil
}

// Close releases resources associated with the Converter.
// It is safe to call Close multiple times.
func (c *Converter) Close() error {
	if c.closer != nil {
		err := c.closer.Close()
		c.closer = nil
		c.pkg = nil
		c.opened = false
		return err
	}
	return nil
}

// FullDocument wraps the HTML output in a minimal standalone document.
func (c *Converter) FullDocument() *Converter {
	newC := c.clone()
	newC.options.fullDocument = true
	return newC
}

// Sanitize passes the HTML output through Policy.
func (c *Converter) Sanitize() *Converter {
	newC := c.clone()
	newC.options.sanitize = true
	return newC
}

// IgnoreSpacing drops paragraph spacing from the output.
func (c *Converter) IgnoreSpacing() *Converter {
	newC := c.clone()
	newC.options.ignoreSpacing = true
	return newC
}

// WithLogger sets the logger that receives conversion diagnostics.
func (c *Converter) WithLogger(logger *zap.Logger) *Converter {
	newC := c.clone()
	if logger == nil {
		logger = zap.NewNop()
	}
	newC.options.logger = logger
	return newC
}

// HTML converts the document body to HTML. It returns the HTML, any
// warnings about parts that were absent or unreadable, and an error if the
// conversion failed.
//
// Example:
//
//	html, warnings, err := docxhtml.Open("report.docx").HTML()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", docxhtml.FormatWarnings(warnings))
//	}
func (c *Converter) HTML() (string, []Warning, error) {
	if c.err != nil {
		return "", nil, c.err
	}
	if err := c.ensurePackage(); err != nil {
		return "", nil, err
	}
	defer c.Close()

	// Sanitizing a standalone document would strip its head, so the
	// fragment is sanitized first and wrapped afterwards.
	wrap := c.options.fullDocument && c.options.sanitize

	out, warnings, err := c.render(c.options.fullDocument && !wrap)
	if err != nil {
		return "", warnings, err
	}

	if c.options.sanitize {
		out = Policy().Sanitize(out)
	}
	if wrap {
		out, err = docx.Document(out)
		if err != nil {
			return "", warnings, err
		}
	}

	return out, warnings, nil
}

// Text returns the plain text of the document body: the raw body markup
// with every tag removed. Character entities are left as they appear in
// the source.
func (c *Converter) Text() (string, []Warning, error) {
	if c.err != nil {
		return "", nil, c.err
	}
	if err := c.ensurePackage(); err != nil {
		return "", nil, err
	}
	defer c.Close()

	src, err := docx.LoadSources(c.pkg)
	if err != nil {
		return "", nil, err
	}
	return docx.PlainText(src.Body), nil, nil
}

// Markdown converts the document body to Markdown by way of the HTML
// rendering. Tables become pipe tables; inline CSS is dropped.
func (c *Converter) Markdown() (string, []Warning, error) {
	if c.err != nil {
		return "", nil, c.err
	}
	if err := c.ensurePackage(); err != nil {
		return "", nil, err
	}
	defer c.Close()

	fragment, warnings, err := c.render(false)
	if err != nil {
		return "", warnings, err
	}

	md, err := toMarkdown(fragment)
	if err != nil {
		return "", warnings, fmt.Errorf("converting to Markdown: %w", err)
	}
	return md, warnings, nil
}

// render runs the docx conversion and collects warnings.
func (c *Converter) render(fullDocument bool) (string, []Warning, error) {
	var warnings []Warning
	opts := docx.Options{
		FullDocument:  fullDocument,
		IgnoreSpacing: c.options.ignoreSpacing,
		Logger:        c.options.logger,
		OnDegraded: func(d docx.Degraded) {
			warnings = append(warnings, warningFor(d))
		},
	}

	out, err := docx.Convert(c.pkg, opts)
	if err != nil {
		return "", warnings, err
	}
	return out, warnings, nil
}
