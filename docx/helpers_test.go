package docx

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	wNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`
	rNS = `xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`
)

// documentXMLFor wraps body content in a minimal word/document.xml.
func documentXMLFor(body string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document ` + wNS + ` ` + rNS + `><w:body>` + body + `</w:body></w:document>`
}

// stylesXMLFor wraps style definitions in a minimal word/styles.xml.
func stylesXMLFor(styles string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles ` + wNS + `>` + styles + `</w:styles>`
}

// numberingXMLFor wraps numbering definitions in a minimal word/numbering.xml.
func numberingXMLFor(defs string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:numbering ` + wNS + `>` + defs + `</w:numbering>`
}

// relsXMLFor wraps relationships in a minimal relationships part.
func relsXMLFor(rels string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` + rels + `</Relationships>`
}

// bulletNumbering defines numId 1 as a bullet list and numId 2 as a
// decimal list.
var bulletNumbering = numberingXMLFor(`
<w:abstractNum w:abstractNumId="0"><w:lvl w:ilvl="0"><w:numFmt w:val="bullet"/></w:lvl></w:abstractNum>
<w:abstractNum w:abstractNumId="1"><w:lvl w:ilvl="0"><w:numFmt w:val="decimal"/></w:lvl></w:abstractNum>
<w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>
<w:num w:numId="2"><w:abstractNumId w:val="1"/></w:num>`)

// createTestDOCX writes a DOCX archive holding the given parts and returns
// its path. The content types and package relationships are always added.
func createTestDOCX(t *testing.T, parts map[string]string) string {
	t.Helper()

	tmpDir := t.TempDir()
	docxPath := filepath.Join(tmpDir, "test.docx")

	f, err := os.Create(docxPath)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	contentTypes := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`
	writeZipEntry(t, zw, "[Content_Types].xml", contentTypes)
	writeZipEntry(t, zw, "_rels/.rels", relsXMLFor(
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>`))

	for name, content := range parts {
		writeZipEntry(t, zw, name, content)
	}

	if err := zw.Close(); err != nil {
		t.Fatalf("failed to finish archive: %v", err)
	}
	return docxPath
}

func writeZipEntry(t *testing.T, zw *zip.Writer, name, content string) {
	t.Helper()
	w, err := zw.Create(name)
	if err != nil {
		t.Fatalf("failed to create %s: %v", name, err)
	}
	if _, err := w.Write([]byte(content)); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

// renderBody converts body content with the optional parts given.
func renderBody(t *testing.T, body string, src Sources, opts Options) string {
	t.Helper()
	src.Body = []byte(documentXMLFor(body))
	out, err := Render(src, opts)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return out
}

// para builds a paragraph with the given pPr content and runs.
func para(pPr string, runs ...string) string {
	var sb strings.Builder
	sb.WriteString("<w:p>")
	if pPr != "" {
		sb.WriteString("<w:pPr>" + pPr + "</w:pPr>")
	}
	for _, r := range runs {
		sb.WriteString(r)
	}
	sb.WriteString("</w:p>")
	return sb.String()
}

// run builds a run with the given rPr content and text.
func run(rPr, text string) string {
	if rPr != "" {
		rPr = "<w:rPr>" + rPr + "</w:rPr>"
	}
	return `<w:r>` + rPr + `<w:t xml:space="preserve">` + text + `</w:t></w:r>`
}

// listPr builds numbering properties for a list paragraph.
func listPr(numID, level string) string {
	return `<w:numPr><w:ilvl w:val="` + level + `"/><w:numId w:val="` + numID + `"/></w:numPr>`
}
