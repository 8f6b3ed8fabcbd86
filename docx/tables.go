package docx

import (
	"golang.org/x/net/html"
)

// renderTable renders a table. Cell content does not take part in the
// body-level list state: each cell paragraph stands on its own.
func (br *bodyRenderer) renderTable(tbl *tableXML) *html.Node {
	table := element("table", attr("class", "table"), attr("border", "1"))

	for _, row := range tbl.Rows {
		tr := element("tr")
		for i := range row.Cells {
			tr.AppendChild(br.renderCell(&row.Cells[i]))
		}
		table.AppendChild(tr)
	}

	return table
}

// renderCell renders a table cell, with colspan when a grid span is declared.
func (br *bodyRenderer) renderCell(cell *tableCellXML) *html.Node {
	td := element("td")
	if span := cell.Properties.colSpan(); span != "" {
		td.Attr = append(td.Attr, attr("colspan", span))
	}

	for _, block := range cell.Content {
		switch {
		case block.Paragraph != nil:
			td.AppendChild(br.renderCellParagraph(block.Paragraph))
		case block.Table != nil:
			td.AppendChild(br.renderTable(block.Table))
		}
	}

	return td
}

// renderCellParagraph renders a paragraph inside a cell as <p>, wrapped in
// <li> when it carries list properties. Any declared alignment renders as
// center. Headings are never wrapped, as at body level.
func (br *bodyRenderer) renderCellParagraph(p *paragraphXML) *html.Node {
	pc := br.paragraphContext(p)

	para := element("p")
	if pc.alignment != "" {
		para.Attr = append(para.Attr, attr("style", "text-align:center"))
	}
	br.renderInline(para, p, pc.formatting)

	if pc.list == nil {
		return para
	}
	li := element("li")
	li.AppendChild(para)
	return li
}
