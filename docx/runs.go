package docx

import (
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// runFormatter turns runs and hyperlinks into inline HTML.
type runFormatter struct {
	links  *HyperlinkResolver
	logger *zap.Logger
}

// renderRun renders a run with the formatting inherited from its paragraph.
// It returns nil when the run has no text.
func (rf runFormatter) renderRun(run *runXML, inherited Formatting) *html.Node {
	f := inherited.Clone()
	if run.isListMarked() {
		f.Tags = append(f.Tags, "li")
	}
	f.apply(run.Properties, runScope)

	text := run.text()
	if text == "" {
		return nil
	}
	return wrap(textNode(text), f)
}

// renderHyperlink renders a hyperlink's text, wrapped in an anchor when its
// relationship resolves. It returns nil when the hyperlink has no text.
func (rf runFormatter) renderHyperlink(link *hyperlinkXML, inherited Formatting) *html.Node {
	text := link.text()
	if text == "" {
		return nil
	}

	content := textNode(text)
	if target, ok := rf.links.ResolveTarget(link.ID); ok {
		a := element("a", attr("href", target), attr("target", "_blank"))
		a.AppendChild(content)
		content = a
	} else {
		rf.logger.Debug("hyperlink relationship not found", zap.String("id", link.ID))
	}

	return wrap(content, inherited.Clone())
}

// wrap nests content inside f's tags, in collection order, inside a span.
// The span carries a style attribute only when f has CSS declarations.
func wrap(content *html.Node, f Formatting) *html.Node {
	span := element("span")
	if len(f.Attrs) > 0 {
		span.Attr = append(span.Attr, attr("style", f.Style()))
	}

	parent := span
	for _, tag := range f.Tags {
		n := element(tag)
		parent.AppendChild(n)
		parent = n
	}
	parent.AppendChild(content)

	return span
}

// element creates an element node.
func element(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
}

// attr creates an attribute.
func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

// textNode creates a text node. Escaping happens when the tree is rendered.
func textNode(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}
