package docx

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"golang.org/x/net/html"
)

// numberingXML represents word/numbering.xml
type numberingXML struct {
	XMLName      xml.Name         `xml:"numbering"`
	AbstractNums []abstractNumXML `xml:"abstractNum"`
	Nums         []numXML         `xml:"num"`
}

// abstractNumXML represents an abstract numbering definition.
type abstractNumXML struct {
	AbstractNumID string   `xml:"abstractNumId,attr"`
	Levels        []lvlXML `xml:"lvl"`
}

// lvlXML represents a numbering level.
type lvlXML struct {
	ILvl   string `xml:"ilvl,attr"`
	NumFmt valXML `xml:"numFmt"` // decimal, bullet, lowerLetter, upperRoman, ...
}

// numXML represents a numbering instance.
type numXML struct {
	NumID         string `xml:"numId,attr"`
	AbstractNumID valXML `xml:"abstractNumId"`
}

// ListKind is the rendering chosen for a list.
type ListKind int

const (
	ListUnstyled ListKind = iota // <ul class="list-unstyled">
	ListBullet                   // <ul>
	ListDecimal                  // <ol>
)

// String returns the name of the list kind.
func (k ListKind) String() string {
	switch k {
	case ListBullet:
		return "bullet"
	case ListDecimal:
		return "decimal"
	default:
		return "unstyled"
	}
}

// newElement creates the list container element for k.
func (k ListKind) newElement() *html.Node {
	switch k {
	case ListBullet:
		return element("ul")
	case ListDecimal:
		return element("ol")
	default:
		return element("ul", attr("class", "list-unstyled"))
	}
}

// NumberingResolver resolves numbering definitions from numbering.xml.
// A nil resolver treats every list as unstyled.
type NumberingResolver struct {
	abstractNums map[string]*abstractNumXML // abstractNumId -> definition
	numMappings  map[string]string          // numId -> abstractNumId
}

// ParseNumbering builds a resolver from the raw numbering part. Empty input
// yields a resolver that knows no lists.
func ParseNumbering(data []byte) (*NumberingResolver, error) {
	if len(data) == 0 {
		return NewNumberingResolver(nil), nil
	}

	numbering := &numberingXML{}
	if err := xml.Unmarshal(data, numbering); err != nil {
		return NewNumberingResolver(nil), fmt.Errorf("unmarshaling numbering.xml: %w", err)
	}
	return NewNumberingResolver(numbering), nil
}

// NewNumberingResolver creates a resolver from parsed numbering.xml. When
// ids repeat, the first definition in document order is used.
func NewNumberingResolver(numbering *numberingXML) *NumberingResolver {
	nr := &NumberingResolver{
		abstractNums: make(map[string]*abstractNumXML),
		numMappings:  make(map[string]string),
	}

	if numbering == nil {
		return nr
	}

	for i := range numbering.AbstractNums {
		an := &numbering.AbstractNums[i]
		if _, ok := nr.abstractNums[an.AbstractNumID]; !ok {
			nr.abstractNums[an.AbstractNumID] = an
		}
	}

	for _, num := range numbering.Nums {
		if _, ok := nr.numMappings[num.NumID]; !ok {
			nr.numMappings[num.NumID] = num.AbstractNumID.Val
		}
	}

	return nr
}

// ResolveListKind maps a (numId, level) pair to a list kind. Any missing
// link in numId -> abstractNum -> level resolves to ListUnstyled.
func (nr *NumberingResolver) ResolveListKind(numID string, level int) ListKind {
	if nr == nil || numID == "" {
		return ListUnstyled
	}

	abstractID, ok := nr.numMappings[numID]
	if !ok {
		return ListUnstyled
	}

	abstractNum, ok := nr.abstractNums[abstractID]
	if !ok {
		return ListUnstyled
	}

	levelStr := strconv.Itoa(level)
	for _, lvl := range abstractNum.Levels {
		if lvl.ILvl != levelStr {
			continue
		}
		switch lvl.NumFmt.Val {
		case "bullet":
			return ListBullet
		case "decimal":
			return ListDecimal
		}
		return ListUnstyled
	}

	return ListUnstyled
}

// ListState is the body-level list machine. The zero value is the NoList
// state; Open moves to InList and Close moves back. While InList every list
// paragraph is appended as an item of the open list element.
type ListState struct {
	list *html.Node
	kind ListKind
}

// InList reports whether a list is open.
func (s ListState) InList() bool {
	return s.list != nil
}

// Kind returns the kind of the open list. It is only meaningful while InList.
func (s ListState) Kind() ListKind {
	return s.kind
}

// Open starts a list of the given kind under parent. When a list is already
// open the state is returned unchanged, so the open list keeps receiving
// items whatever kind the new paragraph resolves to.
func (s ListState) Open(parent *html.Node, kind ListKind) ListState {
	if s.InList() {
		return s
	}
	list := kind.newElement()
	parent.AppendChild(list)
	return ListState{list: list, kind: kind}
}

// Close ends the open list, if any. The list element is already complete in
// the output tree, so closing only forgets it.
func (s ListState) Close() ListState {
	return ListState{}
}

// AddItem appends item to the open list. It panics when no list is open.
func (s ListState) AddItem(item *html.Node) {
	if !s.InList() {
		panic("docx: AddItem called with no open list")
	}
	s.list.AppendChild(item)
}
