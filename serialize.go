package sanitize

import "strings"

// serialize.go implements the HTML/XHTML serializer (SPEC_FULL.md §4.6).
// The teacher delegates final output to golang.org/x/net/html.Render
// (chtml/component.go:712, pages.go:303) because CHTML never needs
// canonicalization; our spec requires SVG camelCase, the <isindex> swap,
// stable attribute ordering and a distinct XHTML mode, so this file hand-
// rolls a writer in the tree-walking idiom of chtml/render.go's
// render/renderElement recursion instead (see DESIGN.md).

// serializeHTML serializes the children of root as an HTML fragment.
func serializeHTML(root *Node, rc *resolvedConfig) string {
	var sb strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		writeHTMLNode(&sb, c)
	}
	return sb.String()
}

// serializeOuterHTML serializes n itself plus its subtree.
func serializeOuterHTML(n *Node, rc *resolvedConfig) string {
	var sb strings.Builder
	writeHTMLNode(&sb, n)
	return sb.String()
}

// serializeInnerHTML serializes only n's children, used by the mXSS leaf
// check and the noscript/noembed/noframes nested-parse check (SPEC_FULL.md
// §4.4 steps 1 and 3).
func serializeInnerHTML(n *Node, rc *resolvedConfig) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeHTMLNode(&sb, c)
	}
	return sb.String()
}

func writeHTMLNode(sb *strings.Builder, n *Node) {
	switch n.Type {
	case ElementNode:
		writeHTMLElement(sb, n)
	case TextNode:
		sb.WriteString(escapeText(n.Data))
	case DataNode:
		sb.WriteString(n.Data)
	case CommentNode:
		sb.WriteString("<!--")
		sb.WriteString(n.Data)
		sb.WriteString("-->")
	case DoctypeNode:
		writeDoctype(sb, n)
	}
}

func writeHTMLElement(sb *strings.Builder, n *Node) {
	tag := n.TagName()
	outTag := tag
	if n.NodeNamespace == NamespaceSVG {
		if canon, ok := svgCamelCaseTags[tag]; ok {
			outTag = canon
		}
	}

	sb.WriteByte('<')
	sb.WriteString(outTag)

	attrs := n.Attr
	if tag == isindexTag {
		attrs = swapIsindexAttrs(attrs)
	}
	for _, a := range attrs {
		writeHTMLAttr(sb, n, a)
	}
	sb.WriteByte('>')

	if voidElements[tag] {
		return
	}

	if rawTextElements[tag] {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			sb.WriteString(c.Data)
		}
	} else {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeHTMLNode(sb, c)
		}
	}

	sb.WriteString("</")
	sb.WriteString(outTag)
	sb.WriteByte('>')
}

func writeHTMLAttr(sb *strings.Builder, n *Node, a Attribute) {
	name := a.Key
	if n.NodeNamespace == NamespaceSVG {
		if canon, ok := svgCamelCaseAttrs[name]; ok {
			name = canon
		}
	}
	sb.WriteByte(' ')
	sb.WriteString(name)
	sb.WriteString(`="`)
	sb.WriteString(escapeAttrValue(a.Val))
	sb.WriteByte('"')
}

// swapIsindexAttrs implements the documented <isindex> attribute swap
// fixup (SPEC_FULL.md §4.6, §9 open question): name and label trade serialized
// positions relative to insertion order.
func swapIsindexAttrs(attrs []Attribute) []Attribute {
	nameIdx, labelIdx := -1, -1
	for i, a := range attrs {
		switch a.Key {
		case "name":
			nameIdx = i
		case "label":
			labelIdx = i
		}
	}
	if nameIdx == -1 || labelIdx == -1 {
		return attrs
	}
	out := make([]Attribute, len(attrs))
	copy(out, attrs)
	out[nameIdx], out[labelIdx] = out[labelIdx], out[nameIdx]
	return out
}

func writeDoctype(sb *strings.Builder, n *Node) {
	sb.WriteString("<!DOCTYPE ")
	sb.WriteString(n.Data)
	var public, system string
	for _, a := range n.Attr {
		switch a.Key {
		case "public":
			public = a.Val
		case "system":
			system = a.Val
		}
	}
	if public != "" {
		sb.WriteString(` PUBLIC "`)
		sb.WriteString(public)
		sb.WriteByte('"')
		if system != "" {
			sb.WriteString(` "`)
			sb.WriteString(system)
			sb.WriteByte('"')
		}
	} else if system != "" {
		sb.WriteString(` SYSTEM "`)
		sb.WriteString(system)
		sb.WriteByte('"')
	}
	sb.WriteByte('>')
}

// escapeText escapes the three characters needed outside of an attribute
// value per SPEC_FULL.md §4.6 ("&<> minus the quote").
func escapeText(s string) string {
	if !strings.ContainsAny(s, "&<>") {
		return s
	}
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// escapeAttrValue escapes &<>" per SPEC_FULL.md §4.6.
func escapeAttrValue(s string) string {
	if !strings.ContainsAny(s, "&<>\"") {
		return s
	}
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		case '"':
			sb.WriteString("&quot;")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// --- XHTML serialization ---

// serializeXHTML serializes root's children in XML mode, emitting xmlns
// only where the namespace differs from the inherited context
// (SPEC_FULL.md §4.6 "XHTML mode").
func serializeXHTML(root *Node) string {
	var sb strings.Builder
	ctx := newXMLNamespaceContext(HTMLNamespaceURI)
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		writeXMLNode(&sb, c, ctx)
	}
	return sb.String()
}

func writeXMLNode(sb *strings.Builder, n *Node, ctx *xmlNamespaceContext) {
	switch n.Type {
	case ElementNode:
		writeXMLElement(sb, n, ctx)
	case TextNode:
		sb.WriteString(escapeText(n.Data))
	case DataNode:
		sb.WriteString(escapeText(n.Data))
	case CommentNode:
		sb.WriteString("<!--")
		sb.WriteString(n.Data)
		sb.WriteString("-->")
	}
}

func writeXMLElement(sb *strings.Builder, n *Node, ctx *xmlNamespaceContext) {
	tag := n.TagName()
	uri := namespaceURIFor(n.NodeNamespace, n.NamespaceURI)

	sb.WriteByte('<')
	sb.WriteString(tag)

	childCtx := ctx
	if uri != ctx.defaultNS {
		sb.WriteString(` xmlns="`)
		sb.WriteString(uri)
		sb.WriteByte('"')
		childCtx = ctx.clone()
		childCtx.defaultNS = uri
	}

	for _, a := range n.Attr {
		sb.WriteByte(' ')
		sb.WriteString(a.Key)
		sb.WriteString(`="`)
		sb.WriteString(escapeAttrValue(a.Val))
		sb.WriteByte('"')
	}

	if n.FirstChild == nil {
		if voidElements[tag] {
			sb.WriteString("/>")
			return
		}
		sb.WriteString("/>")
		return
	}

	sb.WriteByte('>')
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeXMLNode(sb, c, childCtx)
	}
	sb.WriteString("</")
	sb.WriteString(tag)
	sb.WriteByte('>')
}
