package sanitize

import "strings"

// The namespace tracker computes, for each element, a namespace using either
// HTML's foreign-content rules or XHTML's xmlns inheritance (SPEC_FULL.md
// §4.3). Grounded on the foreign-content transition logic adapted from
// chtml/html/parse.go's inForeignContent/parseForeignContent (itself a
// fork of golang.org/x/net/html's private insertion-mode handling).
//
// The tracker is stateless: computeHTMLNamespace is a pure function of
// (parent namespace, parent tag, child tag), called once per element as
// traversal.go descends, satisfying the invariant that every Element has a
// namespace entry before its decision is evaluated.
func computeHTMLNamespace(parentNS Namespace, parentTag, tag string) Namespace {
	switch parentNS {
	case NamespaceHTML, NamespaceUnknown, NamespaceCustom:
		switch tag {
		case "svg":
			return NamespaceSVG
		case "math":
			return NamespaceMathML
		default:
			return NamespaceHTML
		}
	case NamespaceSVG:
		if tag == "math" && htmlIntegrationPoints[parentTag] {
			return NamespaceMathML
		}
		return NamespaceSVG
	case NamespaceMathML:
		if mathMLTextIntegrationPoints[parentTag] {
			switch tag {
			case "svg":
				return NamespaceSVG
			case "math":
				return NamespaceMathML
			default:
				return NamespaceHTML
			}
		}
		if parentTag == "annotation-xml" {
			if tag == "svg" {
				return NamespaceSVG
			}
			return NamespaceMathML
		}
		return NamespaceMathML
	}
	return NamespaceHTML
}

func namespaceURIFor(ns Namespace, custom string) string {
	switch ns {
	case NamespaceHTML:
		return HTMLNamespaceURI
	case NamespaceSVG:
		return SVGNamespaceURI
	case NamespaceMathML:
		return MathMLNamespaceURI
	default:
		return custom
	}
}

// isHTMLIntegrationPoint reports whether tag is an SVG element at which
// HTML content is allowed to appear (SPEC_FULL.md §GLOSSARY).
func isHTMLIntegrationPoint(ns Namespace, tag string) bool {
	if ns == NamespaceSVG && htmlIntegrationPoints[tag] {
		return true
	}
	if ns == NamespaceSVG && tag == "annotation-xml" {
		return true
	}
	return false
}

// xmlNamespaceContext tracks the default namespace and prefix->URI map while
// walking an XHTML-mode tree (SPEC_FULL.md §4.3 "XHTML mode").
type xmlNamespaceContext struct {
	defaultNS string
	prefixes  map[string]string
}

func newXMLNamespaceContext(defaultNS string) *xmlNamespaceContext {
	return &xmlNamespaceContext{defaultNS: defaultNS, prefixes: map[string]string{}}
}

// clone returns a copy so descending into a child doesn't mutate the
// parent's view when the child declares its own xmlns.
func (c *xmlNamespaceContext) clone() *xmlNamespaceContext {
	n := &xmlNamespaceContext{defaultNS: c.defaultNS, prefixes: make(map[string]string, len(c.prefixes))}
	for k, v := range c.prefixes {
		n.prefixes[k] = v
	}
	return n
}

// update applies any xmlns / xmlns:prefix attributes found on attrs.
func (c *xmlNamespaceContext) update(attrs []Attribute) {
	for _, a := range attrs {
		if a.Key == "xmlns" {
			c.defaultNS = a.Val
		} else if strings.HasPrefix(a.Key, "xmlns:") {
			c.prefixes[strings.TrimPrefix(a.Key, "xmlns:")] = a.Val
		}
	}
}

// resolve returns the namespace URI for tag (which may carry a "prefix:"
// qualifier), using the prefix map if qualified, else the default.
func (c *xmlNamespaceContext) resolve(tag string) string {
	if i := strings.IndexByte(tag, ':'); i >= 0 {
		prefix := tag[:i]
		if uri, ok := c.prefixes[prefix]; ok {
			return uri
		}
	}
	return c.defaultNS
}

func namespaceFromURI(uri string) Namespace {
	switch uri {
	case HTMLNamespaceURI:
		return NamespaceHTML
	case SVGNamespaceURI:
		return NamespaceSVG
	case MathMLNamespaceURI:
		return NamespaceMathML
	default:
		return NamespaceCustom
	}
}
