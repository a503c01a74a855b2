package bionic

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Options controls how runs are written into a markup tree. Empty
// ParagraphTags and EmphasisTag fall back to DefaultOptions; an empty
// WrapperTag means no wrapper.
type Options struct {
	// ParagraphTags lists the elements whose direct text children are
	// rewritten. Matching is case-insensitive.
	ParagraphTags []string

	// EmphasisTag is the element wrapped around each bold run.
	EmphasisTag string

	// WrapperTag is the element that replaces a rewritten text node and
	// holds its runs. When empty the runs are spliced directly into the
	// paragraph.
	WrapperTag string
}

// DefaultOptions rewrites <p> elements, emphasising with <b> inside a
// <span> wrapper.
func DefaultOptions() Options {
	return Options{
		ParagraphTags: []string{"p"},
		EmphasisTag:   "b",
		WrapperTag:    "span",
	}
}

// withDefaults fills empty fields from DefaultOptions.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if len(o.ParagraphTags) == 0 {
		o.ParagraphTags = def.ParagraphTags
	}
	if o.EmphasisTag == "" {
		o.EmphasisTag = def.EmphasisTag
	}
	return o
}

// ApplyToParagraphs rewrites root with DefaultOptions.
func ApplyToParagraphs(root *html.Node) {
	DefaultOptions().ApplyToParagraphs(root)
}

// ApplyToParagraphs walks root depth first and replaces every direct text
// child of a paragraph element that holds more than white space with the
// runs of its text. Elements nested inside a paragraph keep their content;
// they are only visited to find paragraphs further down.
//
// The tree is mutated in place. Callers must not touch the same tree from
// several goroutines; separate trees may be rewritten concurrently.
func (o Options) ApplyToParagraphs(root *html.Node) {
	if root == nil {
		return
	}
	o = o.withDefaults()
	paragraphs := make(map[string]bool, len(o.ParagraphTags))
	for _, t := range o.ParagraphTags {
		paragraphs[strings.ToLower(t)] = true
	}
	o.walk(root, paragraphs)
}

func (o Options) walk(n *html.Node, paragraphs map[string]bool) {
	// Snapshot before any replacement so that new nodes are not visited
	// and removed ones do not break iteration.
	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}

	if n.Type == html.ElementNode && paragraphs[strings.ToLower(n.Data)] {
		for _, c := range children {
			if c.Type != html.TextNode || strings.TrimSpace(c.Data) == "" {
				continue
			}
			for _, r := range o.fragment(c.Data) {
				n.InsertBefore(r, c)
			}
			n.RemoveChild(c)
		}
	}

	for _, c := range children {
		switch c.Type {
		case html.DocumentNode, html.ElementNode:
			o.walk(c, paragraphs)
		case html.TextNode, html.CommentNode, html.DoctypeNode, html.RawNode, html.ErrorNode:
		}
	}
}

// fragment builds the nodes that replace a text node holding text.
func (o Options) fragment(text string) []*html.Node {
	var nodes []*html.Node
	for _, r := range Runs(text) {
		if !r.Bold {
			// Adjacent plain runs share a text node.
			if last := len(nodes) - 1; last >= 0 && nodes[last].Type == html.TextNode {
				nodes[last].Data += r.Text
				continue
			}
			nodes = append(nodes, &html.Node{Type: html.TextNode, Data: r.Text})
			continue
		}
		em := newElement(o.EmphasisTag)
		em.AppendChild(&html.Node{Type: html.TextNode, Data: r.Text})
		nodes = append(nodes, em)
	}
	if o.WrapperTag == "" {
		return nodes
	}
	wrapper := newElement(o.WrapperTag)
	for _, n := range nodes {
		wrapper.AppendChild(n)
	}
	return []*html.Node{wrapper}
}

func newElement(tag string) *html.Node {
	tag = strings.ToLower(tag)
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}
