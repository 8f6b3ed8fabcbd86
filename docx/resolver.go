package docx

import (
	"strconv"
	"strings"
)

// Formatting is the inline formatting applied to a run: semantic tags
// (strong, em, u, li) nested in collection order inside a span carrying
// the CSS declarations in Attrs ("property:value").
type Formatting struct {
	Tags  []string
	Attrs []string
}

// Clone returns a deep copy of f.
func (f Formatting) Clone() Formatting {
	return Formatting{
		Tags:  append([]string(nil), f.Tags...),
		Attrs: append([]string(nil), f.Attrs...),
	}
}

// HasTag reports whether tag is present.
func (f Formatting) HasTag(tag string) bool {
	for _, t := range f.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Style returns the CSS declarations joined for a style attribute.
func (f Formatting) Style() string {
	return strings.Join(f.Attrs, ";")
}

// addTag appends tag unless it is already present.
func (f *Formatting) addTag(tag string) {
	if !f.HasTag(tag) {
		f.Tags = append(f.Tags, tag)
	}
}

// removeTag drops tag if present.
func (f *Formatting) removeTag(tag string) {
	for i, t := range f.Tags {
		if t == tag {
			f.Tags = append(f.Tags[:i:i], f.Tags[i+1:]...)
			return
		}
	}
}

// setAttr sets a CSS property, replacing an earlier value in place.
func (f *Formatting) setAttr(property, value string) {
	decl := property + ":" + value
	prefix := property + ":"
	for i, a := range f.Attrs {
		if strings.HasPrefix(a, prefix) {
			f.Attrs[i] = decl
			return
		}
	}
	f.Attrs = append(f.Attrs, decl)
}

// Underline values honoured on direct run formatting, and character style
// ids that mark a run as strong.
var emphasisValues = map[string]bool{
	"Strong": true,
	"single": true,
}

// propertyScope selects the rules used to fold run properties.
type propertyScope int

const (
	// styleScope applies rPr found in a style definition: underline is
	// unconditional.
	styleScope propertyScope = iota
	// runScope applies direct run formatting: underline only for the
	// accepted values, rStyle Strong/single marks the run strong.
	runScope
)

// apply folds run properties into f in document order. Unrecognized
// properties are ignored.
func (f *Formatting) apply(props runPropsXML, scope propertyScope) {
	for _, p := range props.Items {
		switch p.XMLName.Local {
		case "b":
			f.toggle("strong", p.Val)
		case "i":
			f.toggle("em", p.Val)
		case "u":
			if scope == styleScope || emphasisValues[p.Val] {
				f.addTag("u")
			}
		case "rStyle":
			if scope == runScope && emphasisValues[p.Val] {
				f.addTag("strong")
			}
		case "color":
			if color := strings.TrimSpace(p.Val); color != "" && color != "auto" {
				f.setAttr("color", "#"+color)
			}
		case "sz":
			if size, ok := halfPoints(p.Val); ok {
				f.setAttr("font-size", size+"pt")
			}
		}
	}
}

// toggle applies an on/off property such as <w:b/> or <w:b w:val="0"/>.
func (f *Formatting) toggle(tag, val string) {
	if isOff(val) {
		f.removeTag(tag)
		return
	}
	f.addTag(tag)
}

// isOff reports whether a toggle property's val switches it off.
func isOff(val string) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "false", "0", "off", "none":
		return true
	}
	return false
}

// halfPoints converts a size in half-points to a point string.
// Word uses half-points for font sizes (e.g., "24" = 12pt).
func halfPoints(s string) (string, bool) {
	val, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return "", false
	}
	return formatNumber(val / 2), true
}

// tenths converts a raw spacing value to the pixel figure used for padding
// (raw/10).
func tenths(s string) (string, bool) {
	val, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return "", false
	}
	return formatNumber(val / 10), true
}

// formatNumber prints v without trailing zeros ("12", "10.5").
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
