package sanitize

import (
	"regexp"
	"strings"
)

// decision is the outcome of evaluating an element against the configured
// allow/deny rules (SPEC_FULL.md §4.4 "Element decision").
type decision int

const (
	decisionKeep decision = iota
	decisionRemove
	decisionUnwrap
)

var mxssLeafRegExp = regexp.MustCompile(`<[/\w!]`)
var noscriptFamilyCloseRegExp = regexp.MustCompile(`(?i)</no(script|embed|frames)`)
var safeForXMLTextRegExp = regexp.MustCompile(`<[/\w!]|^">`)
var emptySentinelSVGRegExp = regexp.MustCompile(`^\s*//\[`)

// sanitizerState is the per-call engine instance described by SPEC_FULL.md
// §3 ("A namespace map, a removed log, and a sanitizer instance live for
// exactly one call"). It owns the traversal, attribute filter, and
// removed-item accumulation for a single public-API invocation.
type sanitizerState struct {
	rc    *resolvedConfig
	hooks *hookRegistry

	removed []Removed

	sawSVGRoot bool
}

// Removed describes one element or attribute dropped during sanitization
// (SPEC_FULL.md §3 "Removed-items log").
type Removed struct {
	Kind         RemovedKind
	NodeName     string
	FromNodeName string
}

type RemovedKind int

const (
	RemovedElement RemovedKind = iota
	RemovedAttribute
)

func (s *sanitizerState) recordRemovedElement(tagName string) {
	s.removed = append(s.removed, Removed{Kind: RemovedElement, NodeName: tagName})
}

func (s *sanitizerState) recordRemovedAttribute(name, fromNodeName string) {
	s.removed = append(s.removed, Removed{Kind: RemovedAttribute, NodeName: name, FromNodeName: fromNodeName})
}

// sanitizeTree runs the depth-first traversal described by SPEC_FULL.md
// §4.4 starting at root's children (root itself is never removed by the
// walk; for in-place sanitization the caller validates the root first via
// decideElement, see sanitizer.go).
func (s *sanitizerState) sanitizeTree(root *Node, isXHTML bool) {
	n := root.FirstChild
	for n != nil {
		next := s.visit(n, isXHTML)
		n = next
	}
}

// visit processes node n and returns the next node to visit under the
// "next-node" walk order (SPEC_FULL.md §4.4): first child, else next
// sibling, else the nearest ancestor's next sibling, stopping at the root.
func (s *sanitizerState) visit(n *Node, isXHTML bool) *Node {
	if inShadowRootSubtree(n) {
		s.hooks.fire(PhaseUponSanitizeShadowNode, n, nil)
	}
	s.hooks.fire(PhaseBeforeSanitizeElements, n, nil)

	switch n.Type {
	case ElementNode:
		return s.visitElement(n, isXHTML)
	case TextNode, DataNode:
		s.visitText(n)
		s.hooks.fire(PhaseAfterSanitizeElements, n, nil)
		return nextNode(n)
	case CommentNode, XMLDeclarationNode:
		parent := n.Parent
		next := nextAfterRemoval(n)
		if parent != nil {
			s.recordRemovedElement("#comment")
			parent.RemoveChild(n)
		}
		return next
	default:
		return nextNode(n)
	}
}

func (s *sanitizerState) visitElement(n *Node, isXHTML bool) *Node {
	if !isXHTML {
		n.Data = toLowerASCII(n.Data)
		s.assignHTMLNamespace(n)
	}
	if n.NodeNamespace == NamespaceSVG {
		s.sawSVGRoot = true
	}

	ev := &HookEvent{
		TagName:          n.TagName(),
		AllowedTagsProxy: &allowSetProxy{set: s.rc.allowedTags},
	}
	s.hooks.fire(PhaseUponSanitizeElement, n, ev)

	isShadowHost := isShadowRootHost(n)
	if isShadowHost {
		s.hooks.fire(PhaseBeforeSanitizeShadowDOM, n, nil)
	}

	d := s.decideElement(n)

	switch d {
	case decisionKeep:
		s.hooks.fire(PhaseBeforeSanitizeAttributes, n, nil)
		s.filterAttributes(n)
		s.hooks.fire(PhaseAfterSanitizeAttributes, n, nil)
		s.hooks.fire(PhaseAfterSanitizeElements, n, nil)
		if isShadowHost {
			s.hooks.fire(PhaseAfterSanitizeShadowDOM, n, nil)
		}
		return nextNode(n)
	case decisionRemove:
		s.recordRemovedElement(n.TagName())
		next := nextAfterRemoval(n)
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		return next
	default: // decisionUnwrap
		s.recordRemovedElement(n.TagName())
		parent := n.Parent
		first := n.FirstChild
		if parent != nil {
			reparentChildren(parent, n)
			// splice happens in place of n
			if first != nil {
				// re-home: n's former children are now appended at the end
				// of parent; move them to sit where n was.
				moveChildrenBefore(parent, first, n)
			}
			parent.RemoveChild(n)
		}
		if first != nil {
			return first
		}
		return nextNode(n)
	}
}

// moveChildrenBefore relocates the contiguous run of nodes starting at
// first (already re-parented to parent, but appended at the end) to sit
// immediately before marker, preserving order.
func moveChildrenBefore(parent, first, marker *Node) {
	// Collect the run (it is exactly the nodes appended by
	// reparentChildren, i.e. everything from first to parent.LastChild).
	var nodes []*Node
	for c := first; c != nil; c = c.NextSibling {
		nodes = append(nodes, c)
	}
	for _, c := range nodes {
		parent.RemoveChild(c)
	}
	for _, c := range nodes {
		parent.InsertBefore(c, marker)
	}
}

// assignHTMLNamespace computes and stores n's namespace from its parent's
// (already-computed) namespace, per SPEC_FULL.md §4.3 "HTML mode". Every
// Element is visited top-down by the traversal, so the parent's namespace
// is always resolved before the child's.
func (s *sanitizerState) assignHTMLNamespace(n *Node) {
	parentNS := NamespaceHTML
	parentTag := ""
	if n.Parent != nil && n.Parent.Type == ElementNode {
		parentNS = n.Parent.NodeNamespace
		parentTag = n.Parent.TagName()
	}
	n.NodeNamespace = computeHTMLNamespace(parentNS, parentTag, n.TagName())
	n.NamespaceURI = namespaceURIFor(n.NodeNamespace, "")
}

// isShadowRootHost reports whether n is a <template> carrying a
// shadowroot/shadowrootmode attribute, marking it as a declarative shadow
// DOM host (SPEC_FULL.md §GLOSSARY "Shadow-root host").
func isShadowRootHost(n *Node) bool {
	if n.Type != ElementNode || n.TagName() != "template" {
		return false
	}
	for _, a := range n.Attr {
		if a.Key == "shadowroot" || a.Key == "shadowrootmode" {
			return true
		}
	}
	return false
}

// inShadowRootSubtree reports whether n is (strictly) inside a shadow-root
// host's subtree.
func inShadowRootSubtree(n *Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if isShadowRootHost(p) {
			return true
		}
	}
	return false
}

func (s *sanitizerState) visitText(n *Node) {
	if s.rc.safeForTemplates {
		if stripped, changed := stripTemplateExpressions(n.Data); changed {
			n.Data = stripped
		}
	}
	if s.rc.safeForXML && n.Parent != nil && n.Parent.NodeNamespace != NamespaceHTML && n.Parent.NodeNamespace != NamespaceUnknown {
		if safeForXMLTextRegExp.MatchString(n.Data) {
			parent := n.Parent
			parent.RemoveChild(n)
		}
	}
}

// decideElement implements SPEC_FULL.md §4.4's "Element decision".
func (s *sanitizerState) decideElement(n *Node) decision {
	rc := s.rc
	tag := n.TagName()

	// Step 1: mXSS leaf check.
	if rc.safeForXML && n.FirstChild != nil && !hasElementChild(n) {
		text := textContent(n)
		inner := serializeInnerHTML(n, rc)
		if mxssLeafRegExp.MatchString(text) && mxssLeafRegExp.MatchString(inner) {
			return decisionRemove
		}
	}

	// Step 2: allow/forbid list membership.
	if rc.forbidTags[tag] || !rc.allowedTags[tag] {
		if !rc.forbidTags[tag] && isCustomElementTag(tag, rc) {
			return decisionKeep
		}
		if rc.keepContent && !rc.forbidContents[tag] {
			return decisionUnwrap
		}
		return decisionRemove
	}

	// Step 3: noscript/noembed/noframes nested-parse mXSS.
	if rc.safeForXML && (tag == "noscript" || tag == "noembed" || tag == "noframes") {
		inner := serializeInnerHTML(n, rc)
		if noscriptFamilyCloseRegExp.MatchString(inner) {
			return decisionRemove
		}
	}

	// Step 4: namespace validity.
	if !s.namespaceIsValid(n) {
		return decisionRemove
	}

	return decisionKeep
}

var svgTagSet = newStringSet(defaultSVGTags)

// namespaceIsValid checks the namespace URI allowlist and the
// parent/child foreign-content transition rules (SPEC_FULL.md §4.4 step 4).
func (s *sanitizerState) namespaceIsValid(n *Node) bool {
	rc := s.rc
	uri := namespaceURIFor(n.NodeNamespace, n.NamespaceURI)
	if len(rc.allowedNamespaceURIs) > 0 && !rc.allowedNamespaceURIs[uri] {
		return false
	}

	parent := n.Parent
	if parent == nil || parent.Type != ElementNode {
		return true
	}
	tag := n.TagName()
	parentTag := parent.TagName()

	switch n.NodeNamespace {
	case NamespaceSVG:
		if parent.NodeNamespace == NamespaceHTML && tag != "svg" {
			return false
		}
		// An HTML element name that the tracker placed in SVG (child of a
		// non-integration-point SVG element) is not allowed there.
		if parent.NodeNamespace == NamespaceSVG && defaultHTMLTagSet[tag] && !svgTagSet[tag] &&
			!isHTMLIntegrationPoint(parent.NodeNamespace, parentTag) {
			return false
		}
		return true
	case NamespaceMathML:
		if parent.NodeNamespace == NamespaceHTML && tag != "math" {
			return false
		}
		return true
	case NamespaceHTML:
		if parent.NodeNamespace == NamespaceSVG && !isHTMLIntegrationPoint(parent.NodeNamespace, parentTag) {
			return false
		}
		return true
	}
	return true
}

// nextNode implements the "next-node" walk of SPEC_FULL.md §4.4: descend to
// the first child, else the next sibling, else bubble up to the nearest
// ancestor with a next sibling.
func nextNode(n *Node) *Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	return nextAfterRemoval(n)
}

// nextAfterRemoval finds the next node to visit as if n (and its subtree)
// were not there: n's next sibling, else the nearest ancestor's next
// sibling.
func nextAfterRemoval(n *Node) *Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.NextSibling != nil {
			return cur.NextSibling
		}
	}
	return nil
}

// postTraversalPasses implements SPEC_FULL.md §4.4's "Post-traversal
// passes": merging adjacent text siblings and re-stripping template
// expressions when safeForTemplates, and removing empty sentinel <svg>
// elements when safeForXML.
func (s *sanitizerState) postTraversalPasses(root *Node) {
	if s.rc.safeForTemplates {
		mergeAdjacentText(root)
		restripText(root, s.rc)
	}
	if s.rc.safeForXML && s.sawSVGRoot {
		removeEmptySentinelSVG(root)
	}
}

func mergeAdjacentText(n *Node) {
	c := n.FirstChild
	for c != nil {
		next := c.NextSibling
		if c.Type == TextNode && next != nil && next.Type == TextNode {
			c.Data += next.Data
			n.RemoveChild(next)
			continue
		}
		if c.Type == ElementNode {
			mergeAdjacentText(c)
		}
		c = next
	}
}

func restripText(n *Node, rc *resolvedConfig) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == TextNode {
			if stripped, changed := stripTemplateExpressions(c.Data); changed {
				c.Data = stripped
			}
		} else if c.Type == ElementNode {
			restripText(c, rc)
		}
	}
}

func removeEmptySentinelSVG(n *Node) {
	c := n.FirstChild
	for c != nil {
		next := c.NextSibling
		if c.Type == ElementNode && c.TagName() == "svg" && c.FirstChild == nil &&
			next != nil && next.Type == TextNode && emptySentinelSVGRegExp.MatchString(strings.TrimSpace(next.Data)) {
			n.RemoveChild(c)
			c = next
			continue
		}
		if c.Type == ElementNode {
			removeEmptySentinelSVG(c)
		}
		c = next
	}
}
