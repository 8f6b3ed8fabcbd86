package docx

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// PlainText strips every tag, comment and processing instruction from raw
// body markup and returns the remaining text exactly as it appears in the
// source: entities are not decoded and nothing is re-escaped.
func PlainText(body []byte) string {
	var sb strings.Builder
	z := html.NewTokenizer(bytes.NewReader(body))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF, or a read error from the in-memory reader which cannot happen.
			return sb.String()
		case html.TextToken:
			sb.Write(z.Raw())
		}
	}
}
