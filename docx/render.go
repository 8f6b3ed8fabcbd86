package docx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoBody is returned when a package has no document body to convert.
var ErrNoBody = errors.New("no document body")

// blockStyle is the fixed rule carried by the full-document wrapper.
const blockStyle = "span.block { display: block; }"

// Options controls a conversion.
type Options struct {
	// FullDocument wraps the fragment in a minimal standalone HTML document.
	FullDocument bool

	// IgnoreSpacing drops paragraph spacing instead of rendering it as
	// padding-top/padding-bottom on the <p> element.
	IgnoreSpacing bool

	// Logger receives diagnostics about degraded parts and lookups.
	Logger *zap.Logger

	// OnDegraded, if set, is called once for every optional part that is
	// absent or could not be parsed.
	OnDegraded func(Degraded)
}

func (o *Options) defaults() {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.OnDegraded == nil {
		o.OnDegraded = func(Degraded) {}
	}
}

// Degraded reports an optional part the conversion went on without. Err
// wraps ErrPartNotFound when the part is absent.
type Degraded struct {
	Part string
	Err  error
}

// Sources holds the raw markup of the parts a conversion reads. Only Body
// is required; a nil optional part behaves as if it were absent.
type Sources struct {
	Body          []byte
	Styles        []byte
	Numbering     []byte
	Relationships []byte
}

// LoadSources reads the body, styles, numbering and relationships parts
// from pkg. Absent optional parts are left nil. A missing body yields
// ErrNoBody.
func LoadSources(pkg Package) (Sources, error) {
	var src Sources

	body, err := pkg.ReadPart(DocumentPart)
	if err != nil {
		if errors.Is(err, ErrPartNotFound) {
			return src, ErrNoBody
		}
		return src, fmt.Errorf("reading document: %w", err)
	}
	src.Body = body

	optional := []struct {
		name string
		dst  *[]byte
	}{
		{StylesPart, &src.Styles},
		{NumberingPart, &src.Numbering},
		{RelationshipsPart(DocumentPart), &src.Relationships},
	}
	for _, part := range optional {
		data, err := pkg.ReadPart(part.name)
		if err != nil {
			if errors.Is(err, ErrPartNotFound) {
				continue
			}
			return src, fmt.Errorf("reading optional part: %w", err)
		}
		*part.dst = data
	}

	return src, nil
}

// Convert reads the parts of pkg and renders the document body as HTML.
func Convert(pkg Package, opts Options) (string, error) {
	src, err := LoadSources(pkg)
	if err != nil {
		return "", err
	}
	return Render(src, opts)
}

// Render converts the document body in src to HTML. Styles, numbering and
// relationships degrade independently: a part that is missing or cannot be
// parsed is treated as empty. A body that cannot be parsed is an error and
// produces no output.
func Render(src Sources, opts Options) (string, error) {
	opts.defaults()
	logger := opts.Logger

	if len(src.Body) == 0 {
		return "", ErrNoBody
	}

	doc := &documentXML{}
	if err := xml.Unmarshal(src.Body, doc); err != nil {
		return "", fmt.Errorf("unmarshaling document.xml: %w", err)
	}

	degrade := func(part string, data []byte, err error) {
		if data == nil {
			opts.OnDegraded(Degraded{Part: part, Err: fmt.Errorf("%s: %w", part, ErrPartNotFound)})
			return
		}
		if err != nil {
			logger.Warn("optional part is malformed", zap.String("part", part), zap.Error(err))
			opts.OnDegraded(Degraded{Part: part, Err: err})
		}
	}

	styles, err := ParseStyleSheet(src.Styles)
	degrade(StylesPart, src.Styles, err)
	numbering, err := ParseNumbering(src.Numbering)
	degrade(NumberingPart, src.Numbering, err)
	links, err := ParseRelationships(src.Relationships)
	degrade(RelationshipsPart(DocumentPart), src.Relationships, err)

	logger.Debug("rendering document",
		zap.Int("styles", styles.Len()),
		zap.Int("relationships", links.Len()),
		zap.Bool("numbering", src.Numbering != nil),
	)

	br := &bodyRenderer{
		styles:        styles,
		numbering:     numbering,
		runs:          runFormatter{links: links, logger: logger},
		ignoreSpacing: opts.IgnoreSpacing,
		logger:        logger,
	}

	fragment := br.render(doc.Body)
	root := fragment
	if opts.FullDocument {
		root = standaloneDocument(fragment)
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return "", fmt.Errorf("rendering HTML: %w", err)
	}

	return sanitizeUTF8(buf.String()), nil
}

// Document wraps an HTML fragment in the same minimal standalone document
// produced by Options.FullDocument.
func Document(fragment string) (string, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), context)
	if err != nil {
		return "", fmt.Errorf("parsing fragment: %w", err)
	}

	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, standaloneDocument(root)); err != nil {
		return "", fmt.Errorf("rendering HTML: %w", err)
	}
	return buf.String(), nil
}

// bodyRenderer walks the document body. It is used for a single pass.
type bodyRenderer struct {
	styles        *StyleSheet
	numbering     *NumberingResolver
	runs          runFormatter
	ignoreSpacing bool
	logger        *zap.Logger
}

// render converts the body into a fragment held by a document node.
func (br *bodyRenderer) render(body *bodyXML) *html.Node {
	root := &html.Node{Type: html.DocumentNode}
	if body == nil {
		return root
	}

	var state ListState
	for _, block := range body.Elements {
		switch {
		case block.Paragraph != nil:
			state = br.renderParagraph(root, state, block.Paragraph)
		case block.Table != nil:
			state = state.Close()
			root.AppendChild(br.renderTable(block.Table))
		}
	}

	// A document may end while a list is still open. The list element is
	// already complete in the tree, so the flush only needs to be noted.
	if state.InList() {
		br.logger.Debug("list open at end of body", zap.Stringer("kind", state.Kind()))
	}

	return root
}

// renderParagraph emits a top-level paragraph and returns the next list state.
func (br *bodyRenderer) renderParagraph(parent *html.Node, state ListState, p *paragraphXML) ListState {
	pc := br.paragraphContext(p)

	if pc.list != nil {
		if !state.InList() {
			kind := br.numbering.ResolveListKind(pc.list.NumID.Val, pc.list.level())
			br.logger.Debug("opening list",
				zap.String("numId", pc.list.NumID.Val),
				zap.Int("level", pc.list.level()),
				zap.Stringer("kind", kind),
			)
			state = state.Open(parent, kind)
		}
		li := element("li")
		br.renderInline(li, p, pc.formatting)
		state.AddItem(li)
		return state
	}

	state = state.Close()

	para := element("p")
	if style := pc.style(br.ignoreSpacing); style != "" {
		para.Attr = append(para.Attr, attr("style", style))
	}
	br.renderInline(para, p, pc.formatting)
	parent.AppendChild(para)

	return state
}

// renderInline appends the rendered runs and hyperlinks of p to parent.
func (br *bodyRenderer) renderInline(parent *html.Node, p *paragraphXML, inherited Formatting) {
	for _, in := range p.Content {
		var n *html.Node
		switch {
		case in.Run != nil:
			n = br.runs.renderRun(in.Run, inherited)
		case in.Hyperlink != nil:
			n = br.runs.renderHyperlink(in.Hyperlink, inherited)
		}
		if n != nil {
			parent.AppendChild(n)
		}
	}
}

// paragraphContext is the per-paragraph view of a <w:p>.
type paragraphContext struct {
	styleID       string
	isHeading     bool
	formatting    Formatting
	alignment     string
	spacingBefore string // px, "" when not declared
	spacingAfter  string // px, "" when not declared
	list          *numberingPropsXML
}

// paragraphContext resolves the style, alignment, spacing and list
// membership of p.
func (br *bodyRenderer) paragraphContext(p *paragraphXML) paragraphContext {
	props := p.Properties
	pc := paragraphContext{styleID: props.Style.Val}

	if pc.styleID != "" {
		pc.isHeading = strings.Contains(pc.styleID, "Heading")
		if def, ok := br.styles.Lookup(pc.styleID); ok {
			pc.formatting = def.Formatting()
		}
	}

	if props.Justification != nil {
		pc.alignment = strings.TrimSpace(props.Justification.Val)
	}

	if props.Spacing != nil {
		if px, ok := tenths(props.Spacing.Before); ok {
			pc.spacingBefore = px
		}
		if px, ok := tenths(props.Spacing.After); ok {
			pc.spacingAfter = px
		}
	}

	if isListParagraph(props) && !pc.isHeading {
		pc.list = props.NumPr
	}

	return pc
}

// style returns the inline style of a top-level <p>: alignment first, then
// spacing unless ignoreSpacing is set.
func (pc paragraphContext) style(ignoreSpacing bool) string {
	var sb strings.Builder
	if pc.alignment != "" {
		sb.WriteString("text-align:" + pc.alignment + ";")
	}
	if !ignoreSpacing {
		if pc.spacingBefore != "" {
			sb.WriteString("padding-top:" + pc.spacingBefore + "px;")
		}
		if pc.spacingAfter != "" {
			sb.WriteString("padding-bottom:" + pc.spacingAfter + "px;")
		}
	}
	return sb.String()
}

// isListParagraph reports whether paragraph properties carry list
// membership. numId 0 explicitly removes numbering.
func isListParagraph(props paragraphPropsXML) bool {
	return props.NumPr != nil && strings.TrimSpace(props.NumPr.NumID.Val) != "0"
}

// standaloneDocument wraps fragment in a minimal HTML document.
func standaloneDocument(fragment *html.Node) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element("html")
	doc.AppendChild(root)

	head := element("head")
	head.AppendChild(element("meta",
		attr("http-equiv", "Content-Type"),
		attr("content", "text/html;charset=utf-8"),
	))
	head.AppendChild(element("title"))
	style := element("style")
	style.AppendChild(textNode(blockStyle))
	head.AppendChild(style)
	root.AppendChild(head)

	body := element("body")
	for c := fragment.FirstChild; c != nil; {
		next := c.NextSibling
		fragment.RemoveChild(c)
		body.AppendChild(c)
		c = next
	}
	root.AppendChild(body)

	return doc
}
