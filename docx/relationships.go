package docx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// HyperlinkResolver maps relationship ids to their targets. A nil resolver
// resolves nothing.
type HyperlinkResolver struct {
	targets map[string]string
}

// ParseRelationships streams a relationships part and records the Target of
// every Relationship element by Id. When an id repeats, the first occurrence
// wins. On malformed input the relationships read before the error are kept
// and returned alongside it.
func ParseRelationships(data []byte) (*HyperlinkResolver, error) {
	hr := &HyperlinkResolver{targets: make(map[string]string)}
	if len(data) == 0 {
		return hr, nil
	}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return hr, nil
		}
		if err != nil {
			return hr, fmt.Errorf("reading relationships: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "Relationship" {
			continue
		}

		var id, target string
		for _, a := range start.Attr {
			switch a.Name.Local {
			case "Id":
				id = a.Value
			case "Target":
				target = a.Value
			}
		}
		if id == "" {
			continue
		}
		if _, seen := hr.targets[id]; !seen {
			hr.targets[id] = target
		}
	}
}

// ResolveTarget returns the target recorded for id.
func (hr *HyperlinkResolver) ResolveTarget(id string) (string, bool) {
	if hr == nil || id == "" {
		return "", false
	}
	target, ok := hr.targets[id]
	return target, ok
}

// Len returns the number of distinct relationship ids.
func (hr *HyperlinkResolver) Len() int {
	if hr == nil {
		return 0
	}
	return len(hr.targets)
}
