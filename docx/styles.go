package docx

import (
	"encoding/xml"
	"fmt"
)

// stylesXML represents the structure of word/styles.xml
type stylesXML struct {
	XMLName xml.Name      `xml:"styles"`
	Styles  []styleDefXML `xml:"style"`
}

// styleDefXML represents a style definition.
type styleDefXML struct {
	Type    string      `xml:"type,attr"` // paragraph, character, table, numbering
	StyleID string      `xml:"styleId,attr"`
	Name    valXML      `xml:"name"`
	BasedOn valXML      `xml:"basedOn"`
	RPr     runPropsXML `xml:"rPr"`
}

// StyleDefinition is a named style reduced to the formatting the converter
// renders: tags drawn from {strong, em, u} and "property:value" CSS
// declarations.
type StyleDefinition struct {
	ID    string
	Name  string
	Tags  []string
	Attrs []string
}

// Formatting returns a copy of the definition's formatting.
func (sd StyleDefinition) Formatting() Formatting {
	return Formatting{Tags: sd.Tags, Attrs: sd.Attrs}.Clone()
}

// StyleSheet maps style ids to resolved definitions. It is immutable once
// built and safe for concurrent reads.
type StyleSheet struct {
	defs map[string]StyleDefinition
}

// ParseStyleSheet builds a StyleSheet from the raw styles part. Empty input
// yields an empty StyleSheet.
func ParseStyleSheet(data []byte) (*StyleSheet, error) {
	if len(data) == 0 {
		return NewStyleSheet(nil), nil
	}

	styles := &stylesXML{}
	if err := xml.Unmarshal(data, styles); err != nil {
		return NewStyleSheet(nil), fmt.Errorf("unmarshaling styles.xml: %w", err)
	}
	return NewStyleSheet(styles), nil
}

// NewStyleSheet resolves every style that declares a styleId. A basedOn
// chain is applied from the base down, so derived styles override the
// properties they redeclare.
func NewStyleSheet(styles *stylesXML) *StyleSheet {
	ss := &StyleSheet{defs: make(map[string]StyleDefinition)}
	if styles == nil {
		return ss
	}

	byID := make(map[string]*styleDefXML, len(styles.Styles))
	for i := range styles.Styles {
		style := &styles.Styles[i]
		if style.StyleID == "" {
			continue
		}
		// A later definition of the same id replaces the earlier one.
		byID[style.StyleID] = style
	}

	for id, style := range byID {
		var f Formatting
		for _, def := range inheritanceChain(byID, id) {
			f.apply(def.RPr, styleScope)
		}
		ss.defs[id] = StyleDefinition{
			ID:    id,
			Name:  style.Name.Val,
			Tags:  f.Tags,
			Attrs: f.Attrs,
		}
	}

	return ss
}

// inheritanceChain returns the definitions from base to derived. Cycles and
// dangling basedOn references end the chain.
func inheritanceChain(byID map[string]*styleDefXML, styleID string) []*styleDefXML {
	var chain []*styleDefXML
	visited := make(map[string]bool)

	current := styleID
	for current != "" && !visited[current] {
		visited[current] = true
		def, ok := byID[current]
		if !ok {
			break
		}
		chain = append([]*styleDefXML{def}, chain...) // Prepend
		current = def.BasedOn.Val
	}

	return chain
}

// Lookup returns the definition for styleID.
func (ss *StyleSheet) Lookup(styleID string) (StyleDefinition, bool) {
	if ss == nil {
		return StyleDefinition{}, false
	}
	def, ok := ss.defs[styleID]
	return def, ok
}

// Len returns the number of resolved styles.
func (ss *StyleSheet) Len() int {
	if ss == nil {
		return 0
	}
	return len(ss.defs)
}
