// Package format identifies word-processing packages before conversion.
package format

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrNotDOCX is returned by Require when the input is not a word-processing
// package.
var ErrNotDOCX = errors.New("not a DOCX document")

// Format represents a detected input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// DOCX indicates a word-processing package (.docx, .docm, .dotx).
	DOCX
	// XLSX indicates a spreadsheet package.
	XLSX
	// PPTX indicates a presentation package.
	PPTX
	// ODT indicates an OpenDocument Text file.
	ODT
	// ZIP indicates a ZIP archive that is none of the above.
	ZIP
	// PDF indicates a PDF document.
	PDF
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case DOCX:
		return "DOCX"
	case XLSX:
		return "XLSX"
	case PPTX:
		return "PPTX"
	case ODT:
		return "ODT"
	case ZIP:
		return "ZIP"
	case PDF:
		return "PDF"
	default:
		return "Unknown"
	}
}

// Detect determines the format from a filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".docx", ".docm", ".dotx", ".dotm":
		return DOCX
	case ".xlsx", ".xlsm":
		return XLSX
	case ".pptx", ".pptm":
		return PPTX
	case ".odt":
		return ODT
	case ".zip":
		return ZIP
	case ".pdf":
		return PDF
	default:
		return Unknown
	}
}

var (
	zipMagic = []byte("PK\x03\x04")
	pdfMagic = []byte("%PDF")
)

// DetectFromReader inspects content to determine the format. ZIP archives
// are opened to tell the package kinds apart.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 4)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	switch {
	case bytes.Equal(magic, pdfMagic):
		return PDF, nil
	case bytes.Equal(magic, zipMagic):
		return detectZIPFormat(r, size)
	}
	return Unknown, nil
}

// Require returns nil when r holds a word-processing package and an error
// wrapping ErrNotDOCX naming the detected format otherwise.
func Require(r io.ReaderAt, size int64) error {
	f, err := DetectFromReader(r, size)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotDOCX, err)
	}
	if f != DOCX {
		return fmt.Errorf("%w: detected %s", ErrNotDOCX, f)
	}
	return nil
}

// Main part content types of the package kinds.
const (
	wordMainType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	wordMacroType  = "application/vnd.ms-word.document.macroEnabled.main+xml"
	wordTmplType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.template.main+xml"
	sheetMainType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"
	slideMainType  = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
	odtMimeType    = "application/vnd.oasis.opendocument.text"
	contentTypesFn = "[Content_Types].xml"
)

// contentTypesXML is the package-level [Content_Types].xml.
type contentTypesXML struct {
	Overrides []struct {
		PartName    string `xml:"PartName,attr"`
		ContentType string `xml:"ContentType,attr"`
	} `xml:"Override"`
}

// detectZIPFormat inspects a ZIP archive. The declared content types decide
// when present; otherwise the top-level folder names are used.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	for _, f := range zr.File {
		switch f.Name {
		case "mimetype":
			data, err := readEntry(f, 256)
			if err == nil && strings.HasPrefix(strings.TrimSpace(string(data)), odtMimeType) {
				return ODT, nil
			}
		case contentTypesFn:
			data, err := readEntry(f, 1<<20)
			if err != nil {
				continue
			}
			if format := fromContentTypes(data); format != Unknown {
				return format, nil
			}
		}
	}

	for _, f := range zr.File {
		switch {
		case strings.HasPrefix(f.Name, "word/"):
			return DOCX, nil
		case strings.HasPrefix(f.Name, "xl/"):
			return XLSX, nil
		case strings.HasPrefix(f.Name, "ppt/"):
			return PPTX, nil
		}
	}

	return ZIP, nil
}

// fromContentTypes maps the declared main part content type to a format.
func fromContentTypes(data []byte) Format {
	var ct contentTypesXML
	if err := xml.Unmarshal(data, &ct); err != nil {
		return Unknown
	}
	for _, o := range ct.Overrides {
		switch o.ContentType {
		case wordMainType, wordMacroType, wordTmplType:
			return DOCX
		case sheetMainType:
			return XLSX
		case slideMainType:
			return PPTX
		}
	}
	return Unknown
}

// readEntry reads at most limit bytes of a ZIP entry.
func readEntry(f *zip.File, limit int64) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(io.LimitReader(rc, limit))
}
