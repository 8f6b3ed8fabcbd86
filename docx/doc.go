// Package docx converts the body of a DOCX (Office Open XML word-processing)
// package into HTML.
//
// # Parts
//
// A document is read through the [Package] interface, which hands out raw
// part markup by name. [Open] and [NewArchive] provide a zip-backed
// implementation; [Parts] is an in-memory one. Only four parts are consulted:
//
//   - word/document.xml - the body (required)
//   - word/styles.xml - named style definitions (optional)
//   - word/numbering.xml - list numbering definitions (optional)
//   - word/_rels/document.xml.rels - relationships used by hyperlinks (optional)
//
// Missing optional parts never fail a conversion: styles fall back to
// unstyled text, lists to <ul class="list-unstyled">, hyperlinks to bare text.
//
// # Conversion
//
//	pkg, err := docx.Open("report.docx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pkg.Close()
//
//	html, err := docx.Convert(pkg, docx.Options{})
//
// [Render] is the pure form of the same operation: it takes the raw part
// bytes in a [Sources] value and keeps no state between calls, so it may be
// used concurrently for independent documents.
//
// # Output
//
// Paragraphs become <p>, list paragraphs become <li> items inside <ul> or
// <ol>, tables become <table class="table" border="1">. Character formatting
// is rendered as a <span style="..."> wrapping <strong>, <em> and <u>
// elements. With [Options.FullDocument] the fragment is wrapped in a minimal
// standalone HTML document.
//
// [PlainText] strips every tag from the raw body markup and returns the
// remaining text untouched.
package docx
