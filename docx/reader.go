package docx

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
)

// Part names consulted by the converter.
const (
	DocumentPart  = "word/document.xml"
	StylesPart    = "word/styles.xml"
	NumberingPart = "word/numbering.xml"
)

// ErrPartNotFound is returned by Package.ReadPart when the named part does not exist.
var ErrPartNotFound = errors.New("part not found")

// Package gives read-only access to the named parts of a document package.
type Package interface {
	// HasPart reports whether the named part exists.
	HasPart(name string) bool
	// ReadPart returns the raw markup of the named part, or an error
	// wrapping ErrPartNotFound when the part is absent.
	ReadPart(name string) ([]byte, error)
}

// RelationshipsPart returns the name of the relationships part that belongs
// to the given part, following the OPC folder convention
// ("word/document.xml" -> "word/_rels/document.xml.rels").
func RelationshipsPart(part string) string {
	dir, file := path.Split(part)
	return dir + "_rels/" + file + ".rels"
}

// Archive is a Package backed by a zip archive.
type Archive struct {
	closer io.Closer
	files  map[string]*zip.File
}

// Open opens a DOCX file for reading.
func Open(filename string) (*Archive, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	a := newArchive(&zr.Reader)
	a.closer = zr
	return a, nil
}

// NewArchive reads a DOCX package from r, which must hold size bytes.
// The returned Archive does not need to be closed.
func NewArchive(r io.ReaderAt, size int64) (*Archive, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("reading ZIP archive: %w", err)
	}
	return newArchive(zr), nil
}

func newArchive(zr *zip.Reader) *Archive {
	a := &Archive{files: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		// First entry wins when an archive carries duplicate names.
		if _, ok := a.files[f.Name]; !ok {
			a.files[f.Name] = f
		}
	}
	return a
}

// Close releases resources associated with the Archive.
func (a *Archive) Close() error {
	if a.closer != nil {
		err := a.closer.Close()
		a.closer = nil
		return err
	}
	return nil
}

// HasPart reports whether the archive contains the named part.
func (a *Archive) HasPart(name string) bool {
	_, ok := a.files[name]
	return ok
}

// ReadPart reads the content of the named part from the archive.
func (a *Archive) ReadPart(name string) ([]byte, error) {
	f, ok := a.files[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrPartNotFound)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

// PartNames returns the names of all parts in the archive, sorted.
func (a *Archive) PartNames() []string {
	names := make([]string, 0, len(a.files))
	for name := range a.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parts is an in-memory Package keyed by part name.
type Parts map[string][]byte

// HasPart reports whether the named part is present.
func (p Parts) HasPart(name string) bool {
	_, ok := p[name]
	return ok
}

// ReadPart returns the named part.
func (p Parts) ReadPart(name string) ([]byte, error) {
	data, ok := p[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrPartNotFound)
	}
	return data, nil
}
