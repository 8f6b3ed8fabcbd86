// Package docxhtml provides a fluent API for converting the body of a DOCX
// document into HTML, plain text or Markdown.
//
// Basic usage:
//
//	html, warnings, err := docxhtml.Open("report.docx").HTML()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", docxhtml.FormatWarnings(warnings))
//	}
//
// With options:
//
//	page, _, err := docxhtml.Open("report.docx").
//	    FullDocument().
//	    Sanitize().
//	    HTML()
//
// For lower-level control the docx package is also available.
package docxhtml

import (
	"bytes"

	"github.com/tsawler/docxhtml/docx"
)

// Open returns a Converter for the DOCX file at filename. The file is
// opened by the first terminal operation and closed when it returns.
//
// Example:
//
//	html, warnings, err := docxhtml.Open("report.docx").HTML()
func Open(filename string) *Converter {
	return &Converter{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromPackage creates a Converter from an already-opened package.
// The caller is responsible for closing it.
//
// Example:
//
//	a, err := docx.Open("report.docx")
//	if err != nil {
//	    // handle error
//	}
//	defer a.Close()
//	html, warnings, err := docxhtml.FromPackage(a).HTML()
func FromPackage(pkg docx.Package) *Converter {
	return &Converter{
		pkg:     pkg,
		opened:  true,
		options: defaultOptions(),
	}
}

// FromBytes creates a Converter from the contents of a DOCX file held in
// memory. The content is checked to be a word-processing package before
// conversion.
func FromBytes(data []byte) *Converter {
	c := &Converter{options: defaultOptions()}
	c.err = c.openReaderAt(bytes.NewReader(data), int64(len(data)))
	return c
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	html := docxhtml.Must(docx.Convert(pkg, docx.Options{}))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustText is a helper that wraps a call to HTML(), Text() or Markdown()
// and panics if the error is non-nil. It discards warnings and returns just
// the value.
//
// Example:
//
//	html := docxhtml.MustText(docxhtml.Open("report.docx").HTML())
func MustText[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
