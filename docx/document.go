package docx

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// documentXML represents the structure of word/document.xml
type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    *bodyXML `xml:"body"`
}

// bodyXML represents the document body. Paragraphs and tables are kept in
// document order, which plain struct unmarshaling would lose.
type bodyXML struct {
	Elements []blockXML
}

// blockXML is a block-level element: exactly one of Paragraph or Table is set.
type blockXML struct {
	Paragraph *paragraphXML
	Table     *tableXML
}

// UnmarshalXML collects paragraphs and tables in order, skipping everything else.
func (b *bodyXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			block, ok, err := decodeBlock(d, t)
			if err != nil {
				return err
			}
			if ok {
				b.Elements = append(b.Elements, block)
			}
		case xml.EndElement:
			return nil
		}
	}
}

// decodeBlock decodes t when it starts a paragraph or table. Any other
// element is skipped and ok is false.
func decodeBlock(d *xml.Decoder, t xml.StartElement) (block blockXML, ok bool, err error) {
	switch t.Name.Local {
	case "p":
		var p paragraphXML
		if err := d.DecodeElement(&p, &t); err != nil {
			return block, false, err
		}
		return blockXML{Paragraph: &p}, true, nil
	case "tbl":
		var tbl tableXML
		if err := d.DecodeElement(&tbl, &t); err != nil {
			return block, false, err
		}
		return blockXML{Table: &tbl}, true, nil
	default:
		return block, false, d.Skip()
	}
}

// paragraphXML represents a paragraph element (<w:p>).
type paragraphXML struct {
	Properties paragraphPropsXML
	Content    []inlineXML
}

// inlineXML is a paragraph child: exactly one of Run or Hyperlink is set.
type inlineXML struct {
	Run       *runXML
	Hyperlink *hyperlinkXML
}

// UnmarshalXML keeps runs and hyperlinks in order.
func (p *paragraphXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pPr":
				if err := d.DecodeElement(&p.Properties, &t); err != nil {
					return err
				}
			case "r":
				var r runXML
				if err := d.DecodeElement(&r, &t); err != nil {
					return err
				}
				p.Content = append(p.Content, inlineXML{Run: &r})
			case "hyperlink":
				var h hyperlinkXML
				if err := d.DecodeElement(&h, &t); err != nil {
					return err
				}
				p.Content = append(p.Content, inlineXML{Hyperlink: &h})
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// paragraphPropsXML represents paragraph properties (<w:pPr>).
// Pointer fields distinguish an absent element from an empty one.
type paragraphPropsXML struct {
	Style         valXML             `xml:"pStyle"`
	NumPr         *numberingPropsXML `xml:"numPr"`
	Justification *valXML            `xml:"jc"`
	Spacing       *spacingXML        `xml:"spacing"`
}

// valXML is any element whose payload is a single val attribute.
type valXML struct {
	Val string `xml:"val,attr"`
}

// numberingPropsXML represents numbering properties for lists.
type numberingPropsXML struct {
	ILvl  valXML `xml:"ilvl"`
	NumID valXML `xml:"numId"`
}

// level returns the indentation level, defaulting to 0.
func (n *numberingPropsXML) level() int {
	lvl, err := strconv.Atoi(strings.TrimSpace(n.ILvl.Val))
	if err != nil || lvl < 0 {
		return 0
	}
	return lvl
}

// spacingXML represents paragraph spacing.
type spacingXML struct {
	Before string `xml:"before,attr"` // twips
	After  string `xml:"after,attr"`  // twips
}

// runXML represents a text run (<w:r>). Content keeps text and tab children
// in order.
type runXML struct {
	Properties     runPropsXML        `xml:"rPr"`
	ParagraphProps *paragraphPropsXML `xml:"pPr"`
	Content        []runContentXML    `xml:",any"`
}

// runContentXML is any run child other than rPr/pPr.
type runContentXML struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

// text returns the concatenated text of the run's <w:t> and <w:tab> children.
func (r *runXML) text() string {
	var sb strings.Builder
	for _, c := range r.Content {
		switch c.XMLName.Local {
		case "t":
			sb.WriteString(c.Value)
		case "tab":
			sb.WriteByte('\t')
		}
	}
	return sb.String()
}

// isListMarked reports whether the run carries its own numbering properties.
func (r *runXML) isListMarked() bool {
	return r.ParagraphProps != nil && r.ParagraphProps.NumPr != nil
}

// runPropsXML represents run properties (<w:rPr>) in document order.
type runPropsXML struct {
	Items []propertyXML `xml:",any"`
}

// propertyXML is a single rPr child such as <w:b/> or <w:sz w:val="24"/>.
type propertyXML struct {
	XMLName xml.Name
	Val     string `xml:"val,attr"`
}

// hyperlinkXML represents a hyperlink.
type hyperlinkXML struct {
	ID   string   `xml:"id,attr"`
	Runs []runXML `xml:"r"`
}

// text returns the combined text of every run in the hyperlink.
func (h *hyperlinkXML) text() string {
	var sb strings.Builder
	for i := range h.Runs {
		sb.WriteString(h.Runs[i].text())
	}
	return sb.String()
}

// tableXML represents a table (<w:tbl>).
type tableXML struct {
	Rows []tableRowXML `xml:"tr"`
}

// tableRowXML represents a table row (<w:tr>).
type tableRowXML struct {
	Cells []tableCellXML `xml:"tc"`
}

// tableCellXML represents a table cell (<w:tc>). Content holds the cell's
// paragraphs and nested tables in order.
type tableCellXML struct {
	Properties cellPropsXML
	Content    []blockXML
}

// UnmarshalXML keeps cell paragraphs and nested tables in order.
func (c *tableCellXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "tcPr" {
				if err := d.DecodeElement(&c.Properties, &t); err != nil {
					return err
				}
				continue
			}
			block, ok, err := decodeBlock(d, t)
			if err != nil {
				return err
			}
			if ok {
				c.Content = append(c.Content, block)
			}
		case xml.EndElement:
			return nil
		}
	}
}

// cellPropsXML represents cell properties.
type cellPropsXML struct {
	GridSpan *valXML `xml:"gridSpan"`
}

// colSpan returns the declared grid span, or "" when none is declared or
// the value is not a positive integer.
func (c cellPropsXML) colSpan() string {
	if c.GridSpan == nil {
		return ""
	}
	v := strings.TrimSpace(c.GridSpan.Val)
	if n, err := strconv.Atoi(v); err != nil || n < 1 {
		return ""
	}
	return v
}
