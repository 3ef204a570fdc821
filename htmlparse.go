package sanitize

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// htmlparse.go adapts golang.org/x/net/html's parser output into our Node
// tree. Parsing itself is entirely delegated to x/net/html.Parse/
// ParseFragment, per SPEC_FULL.md §1's "underlying HTML parser" carve-out;
// this file only does the conversion, plus the small forceBody/select-
// template undo steps that depend on the resulting tree shape.

// parseHTMLFragment parses body as an HTML fragment in the context of a
// <body> element (the common case for Sanitize/SanitizeToFragment) and
// returns our Node tree rooted at a synthetic document node whose children
// are the parsed fragment nodes.
func parseHTMLFragment(body string) (*Node, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(body), context)
	if err != nil {
		return nil, err
	}
	root := &Node{Type: DocumentNode}
	for _, n := range nodes {
		root.AppendChild(convertFromHTML(n))
	}
	return root, nil
}

// parseHTMLDocument parses a full HTML document.
func parseHTMLDocument(doc string) (*Node, error) {
	n, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return nil, err
	}
	return convertFromHTML(n), nil
}

// convertFromHTML recursively converts an x/net/html.Node subtree into our
// Node representation.
func convertFromHTML(n *html.Node) *Node {
	out := &Node{
		Type:     fromHTMLNodeType(n.Type),
		DataAtom: n.DataAtom,
		Data:     n.Data,
	}
	if len(n.Attr) > 0 {
		out.Attr = make([]Attribute, len(n.Attr))
		for i, a := range n.Attr {
			out.Attr[i] = Attribute{Namespace: a.Namespace, Key: a.Key, Val: a.Val}
		}
	}
	// Raw-text containers (<style>, <script>, ...) get their text child
	// reclassified as DataNode so the traversal core never treats their
	// contents as markup to recurse into (SPEC_FULL.md §3).
	isRaw := n.Type == html.ElementNode && rawTextElements[strings.ToLower(n.Data)]
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		child := convertFromHTML(c)
		if isRaw && child.Type == TextNode {
			child.Type = DataNode
		}
		out.AppendChild(child)
	}
	return out
}

// convertToHTML converts our Node tree back into x/net/html.Node. The
// sanitize pipeline does not call it: rewrapSelectTemplates re-parses the
// recorded inner markup string with parseHTMLFragment instead.
func convertToHTML(n *Node) *html.Node {
	out := &html.Node{
		Type:     toHTMLNodeType(n.Type),
		DataAtom: n.DataAtom,
		Data:     n.Data,
	}
	for _, a := range n.Attr {
		out.Attr = append(out.Attr, html.Attribute{Namespace: a.Namespace, Key: a.Key, Val: a.Val})
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out.AppendChild(convertToHTML(c))
	}
	return out
}

func toHTMLNodeType(t NodeType) html.NodeType {
	switch t {
	case TextNode:
		return html.TextNode
	case DocumentNode:
		return html.DocumentNode
	case ElementNode:
		return html.ElementNode
	case CommentNode:
		return html.CommentNode
	case DoctypeNode:
		return html.DoctypeNode
	case DataNode:
		return html.RawNode
	default:
		return html.ErrorNode
	}
}

// rewrapSelectTemplates restores each placeholder <option> produced by
// rewriteSelectTemplates to a <template> element containing its original
// (now separately parsed) body-fragment children (SPEC_FULL.md §4.2 step
// 2, "After parsing, rewrap").
func rewrapSelectTemplates(root *Node, placeholders []templatePlaceholder) error {
	if len(placeholders) == 0 {
		return nil
	}
	byID := make(map[string]string, len(placeholders))
	for _, p := range placeholders {
		byID[p.id] = p.inner
	}

	var walk func(*Node) error
	walk = func(n *Node) error {
		for c := n.FirstChild; c != nil; {
			next := c.NextSibling
			if c.Type == ElementNode && c.TagName() == "option" {
				if id := attrValue(c, templatePlaceholderAttr); id != "" {
					if inner, ok := byID[id]; ok {
						tpl, err := parseHTMLFragment(inner)
						if err != nil {
							return err
						}
						replacement := newElement("template")
						reparentChildren(replacement, tpl)
						n.InsertBefore(replacement, c)
						n.RemoveChild(c)
					}
				}
			}
			if err := walk(c); err != nil {
				return err
			}
			c = next
		}
		return nil
	}
	return walk(root)
}

func attrValue(n *Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// removeForceBodySentinel removes the first "remove" element found in the
// body, undoing the forceBody sentinel insertion (SPEC_FULL.md §4.2 step 4).
func removeForceBodySentinel(root *Node) {
	var walk func(*Node) bool
	walk = func(n *Node) bool {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == ElementNode && c.TagName() == "remove" {
				n.RemoveChild(c)
				return true
			}
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(root)
}

// insertLeadingWhitespace re-inserts the leading whitespace text node that
// was captured (and stripped) before parsing, when forceBody was not set
// (SPEC_FULL.md §4.2 step 4, boundary behavior in §8).
func insertLeadingWhitespace(root *Node, ws string) {
	if ws == "" {
		return
	}
	text := &Node{Type: TextNode, Data: ws}
	if root.FirstChild != nil {
		root.InsertBefore(text, root.FirstChild)
	} else {
		root.AppendChild(text)
	}
}
