package sanitize

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NodeType identifies the variant stored in a Node, per the data model in
// SPEC_FULL.md §3. The numeric values intentionally mirror
// golang.org/x/net/html.NodeType for the variants the two share, so that
// htmlparse.go's conversion is a direct mapping.
type NodeType uint32

const (
	ErrorNode NodeType = iota
	TextNode
	DocumentNode
	ElementNode
	CommentNode
	DoctypeNode
	// DataNode holds raw CDATA-like content for containers such as
	// <style> and <script> whose children the HTML tokenizer never
	// parses as markup.
	DataNode
	// XMLDeclarationNode holds an XML declaration ("<?xml version=...?>"),
	// only produced by the XHTML-mode parse adapter.
	XMLDeclarationNode
)

// Namespace identifies which foreign-content universe an Element belongs to.
type Namespace int

const (
	// NamespaceUnknown marks an element whose namespace has not yet been
	// computed. Every Element reachable during traversal must have a real
	// namespace assigned before its decision is evaluated (SPEC_FULL.md §3
	// invariant).
	NamespaceUnknown Namespace = iota
	NamespaceHTML
	NamespaceSVG
	NamespaceMathML
	// NamespaceCustom is any other namespace URI, tracked by NamespaceURI
	// on the Node rather than by this enum alone.
	NamespaceCustom
)

const (
	HTMLNamespaceURI   = "http://www.w3.org/1999/xhtml"
	SVGNamespaceURI    = "http://www.w3.org/2000/svg"
	MathMLNamespaceURI = "http://www.w3.org/1998/Math/MathML"
)

// Attribute is a single name/value pair, order-preserving within a Node's
// Attr slice.
type Attribute struct {
	Namespace string
	Key       string
	Val       string
}

// Node is the mutable tree element the sanitizer operates on. It is built
// fresh for each call by htmlparse.go or xhtmlparse.go from the respective
// external parser's output, and mutated in place during traversal.
type Node struct {
	Parent, FirstChild, LastChild, PrevSibling, NextSibling *Node

	Type     NodeType
	DataAtom atom.Atom
	// Data holds the tag name (ElementNode), text content (TextNode,
	// DataNode), comment text (CommentNode), or doctype name (DoctypeNode).
	Data string

	Attr []Attribute

	// NodeNamespace is the resolved namespace for this element, set by
	// xhtmlparse.go at parse time (XHTML mode) or by the traversal via
	// namespace.go's computeHTMLNamespace when the element is visited, before
	// its decision is evaluated (HTML mode). Zero value (NamespaceUnknown)
	// for non-Element nodes.
	NodeNamespace Namespace
	// NamespaceURI carries the literal URI for NamespaceCustom elements, and
	// is also kept in sync for HTML/SVG/MathML so XHTML serialization never
	// needs a second lookup.
	NamespaceURI string
}

// TagName returns the lowercase tag name for an Element node, computing it
// from DataAtom when available for speed, falling back to Data.
func (n *Node) TagName() string {
	if n.DataAtom != 0 {
		return n.DataAtom.String()
	}
	return n.Data
}

// InsertBefore inserts newChild as a child of n, immediately before oldChild
// in the sequence of n's children. oldChild may be nil, in which case
// newChild is appended to the end of n's children.
//
// It will panic if newChild already has a parent or siblings.
func (n *Node) InsertBefore(newChild, oldChild *Node) {
	if newChild.Parent != nil || newChild.PrevSibling != nil || newChild.NextSibling != nil {
		panic("sanitize: InsertBefore called for an attached child Node")
	}
	var prev, next *Node
	if oldChild != nil {
		prev, next = oldChild.PrevSibling, oldChild
	} else {
		prev = n.LastChild
	}
	if prev != nil {
		prev.NextSibling = newChild
	} else {
		n.FirstChild = newChild
	}
	if next != nil {
		next.PrevSibling = newChild
	} else {
		n.LastChild = newChild
	}
	newChild.Parent = n
	newChild.PrevSibling = prev
	newChild.NextSibling = next
}

// AppendChild adds c as a child of n.
//
// It will panic if c already has a parent or siblings.
func (n *Node) AppendChild(c *Node) {
	if c.Parent != nil || c.PrevSibling != nil || c.NextSibling != nil {
		panic("sanitize: AppendChild called for an attached child Node")
	}
	last := n.LastChild
	if last != nil {
		last.NextSibling = c
	} else {
		n.FirstChild = c
	}
	n.LastChild = c
	c.Parent = n
	c.PrevSibling = last
}

// RemoveChild removes a node c that is a child of n. Afterwards, c will have
// no parent and no siblings.
//
// It will panic if c's parent is not n.
func (n *Node) RemoveChild(c *Node) {
	if c.Parent != n {
		panic("sanitize: RemoveChild called for a non-child Node")
	}
	if n.FirstChild == c {
		n.FirstChild = c.NextSibling
	}
	if c.NextSibling != nil {
		c.NextSibling.PrevSibling = c.PrevSibling
	}
	if n.LastChild == c {
		n.LastChild = c.PrevSibling
	}
	if c.PrevSibling != nil {
		c.PrevSibling.NextSibling = c.NextSibling
	}
	c.Parent = nil
	c.PrevSibling = nil
	c.NextSibling = nil
}

// reparentChildren moves all of src's children to dst, preserving order.
// Used by the unwrap decision (SPEC_FULL.md §4.4.3.g) to splice an unwrapped
// element's children into its parent.
func reparentChildren(dst, src *Node) {
	for {
		child := src.FirstChild
		if child == nil {
			break
		}
		src.RemoveChild(child)
		dst.AppendChild(child)
	}
}

// cloneShallow returns a new node with the same type, data, attributes and
// namespace info. The clone has no parent, siblings or children.
func cloneShallow(n *Node) *Node {
	m := &Node{
		Type:          n.Type,
		DataAtom:      n.DataAtom,
		Data:          n.Data,
		Attr:          make([]Attribute, len(n.Attr)),
		NodeNamespace: n.NodeNamespace,
		NamespaceURI:  n.NamespaceURI,
	}
	copy(m.Attr, n.Attr)
	return m
}

// newElement builds a bare Element node for tagName, resolving its atom if
// it is a known HTML tag.
func newElement(tagName string) *Node {
	return &Node{
		Type:     ElementNode,
		DataAtom: atom.Lookup([]byte(tagName)),
		Data:     tagName,
	}
}

// textContent concatenates the text of all descendant Text/Data nodes, used
// by the mXSS leaf check (SPEC_FULL.md §4.4, element decision step 1).
func textContent(n *Node) string {
	var sb []byte
	var walk func(*Node)
	walk = func(c *Node) {
		for ; c != nil; c = c.NextSibling {
			switch c.Type {
			case TextNode, DataNode:
				sb = append(sb, c.Data...)
			case ElementNode:
				walk(c.FirstChild)
			}
		}
	}
	walk(n.FirstChild)
	return string(sb)
}

// hasElementChild reports whether n has at least one Element child.
func hasElementChild(n *Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == ElementNode {
			return true
		}
	}
	return false
}

// deepClone returns a full copy of n's subtree, detached from n's original
// parent/siblings. Used when the caller passes an already-parsed *Node as
// sanitize input, so that non-in-place entry points never mutate the
// caller's tree (SPEC_FULL.md §5 "Memory").
func deepClone(n *Node) *Node {
	m := cloneShallow(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		m.AppendChild(deepClone(c))
	}
	return m
}

// fromHTMLNodeType converts an x/net/html NodeType into our NodeType, used by
// htmlparse.go.
func fromHTMLNodeType(t html.NodeType) NodeType {
	switch t {
	case html.ErrorNode:
		return ErrorNode
	case html.TextNode:
		return TextNode
	case html.DocumentNode:
		return DocumentNode
	case html.ElementNode:
		return ElementNode
	case html.CommentNode:
		return CommentNode
	case html.DoctypeNode:
		return DoctypeNode
	case html.RawNode:
		return DataNode
	default:
		return ErrorNode
	}
}
