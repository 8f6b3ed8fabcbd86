package docxhtml

import (
	"errors"
	"strings"

	"github.com/tsawler/docxhtml/docx"
)

// Warning describes a non-fatal problem: the conversion succeeded but the
// output may be missing formatting, list styles or links.
type Warning struct {
	// Part is the package part the warning refers to.
	Part string
	// Message is a human-readable description.
	Message string
}

// String returns the warning as "part: message".
func (w Warning) String() string {
	if w.Part == "" {
		return w.Message
	}
	return w.Part + ": " + w.Message
}

// FormatWarnings joins warnings into a single line.
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}

// warningFor describes the effect of going on without an optional part.
func warningFor(d docx.Degraded) Warning {
	effect := "ignored"
	switch d.Part {
	case docx.StylesPart:
		effect = "paragraph styles are not applied"
	case docx.NumberingPart:
		effect = "lists are rendered unstyled"
	case docx.RelationshipsPart(docx.DocumentPart):
		effect = "hyperlinks are rendered as text"
	}

	if errors.Is(d.Err, docx.ErrPartNotFound) {
		return Warning{Part: d.Part, Message: "part not found, " + effect}
	}
	return Warning{Part: d.Part, Message: "part is malformed (" + d.Err.Error() + "), " + effect}
}
