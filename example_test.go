package docxhtml_test

import (
	"fmt"
	"log"

	"github.com/tsawler/docxhtml"
	"github.com/tsawler/docxhtml/docx"
)

// These examples show the package API. They are compiled but not run,
// since they need a DOCX file on disk.

func Example_convertHTML() {
	html, warnings, err := docxhtml.Open("report.docx").HTML()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(html)

	for _, w := range warnings {
		fmt.Println("Warning:", w.Message)
	}
}

func Example_fullDocument() {
	page, _, err := docxhtml.Open("report.docx").
		FullDocument().
		Sanitize().
		IgnoreSpacing().
		HTML()
	_ = page
	_ = err
}

func Example_textAndMarkdown() {
	text := docxhtml.MustText(docxhtml.Open("report.docx").Text())
	md := docxhtml.MustText(docxhtml.Open("report.docx").Markdown())
	_ = text
	_ = md
}

func Example_lowLevel() {
	a, err := docx.Open("report.docx")
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	html := docxhtml.Must(docx.Convert(a, docx.Options{FullDocument: true}))
	fmt.Println(html)
}
