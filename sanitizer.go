package sanitize

// sanitizer.go implements the per-call pipeline described by SPEC_FULL.md
// §2's data-flow row: input -> pre-processor -> parser (external) ->
// namespace tracker -> traversal core (hooks + attribute filter) ->
// serializer -> output. Each public entry point in api.go builds one
// sanitizerState and drives it through this pipeline exactly once.

// runSanitize parses input (a single joined string per SPEC_FULL.md §6) per
// rc's media type, runs the full traversal, and returns the resulting Node
// tree rooted at a synthetic document node, plus the per-call state (for
// the removed log).
func runSanitize(input string, rc *resolvedConfig, hooks *hookRegistry) (*Node, *sanitizerState, error) {
	state := &sanitizerState{rc: rc, hooks: hooks}

	var root *Node
	var err error

	if rc.parserMediaType == MediaTypeXHTML {
		root, err = parseXHTMLFragment(input, rc.namespaceURI)
		if err != nil {
			return nil, state, err
		}
		state.sanitizeTree(root, true)
		state.postTraversalPasses(root)
		return root, state, nil
	}

	pre := preprocessHTML(input, rc)
	root, err = parseHTMLFragment(pre.input)
	if err != nil {
		return nil, state, err
	}
	if pre.forceBodyInserted {
		removeForceBodySentinel(root)
	}
	if err := rewrapSelectTemplates(root, pre.templatePlaceholders); err != nil {
		return nil, state, err
	}

	state.sanitizeTree(root, false)
	state.postTraversalPasses(root)

	if pre.leadingWhitespace != "" {
		insertLeadingWhitespace(root, pre.leadingWhitespace)
	}

	return root, state, nil
}

// runSanitizeDocument parses input as a full document (SPEC_FULL.md §6
// SanitizeToDocument/SanitizeToDocumentTree).
func runSanitizeDocument(input string, rc *resolvedConfig, hooks *hookRegistry) (*Node, *sanitizerState, error) {
	state := &sanitizerState{rc: rc, hooks: hooks}

	if rc.parserMediaType == MediaTypeXHTML {
		root, err := parseXHTMLFragment(input, rc.namespaceURI)
		if err != nil {
			return nil, state, err
		}
		state.sanitizeTree(root, true)
		state.postTraversalPasses(root)
		return root, state, nil
	}

	pre := preprocessHTML(input, rc)
	root, err := parseHTMLDocument(pre.input)
	if err != nil {
		return nil, state, err
	}
	if err := rewrapSelectTemplates(root, pre.templatePlaceholders); err != nil {
		return nil, state, err
	}
	state.sanitizeTree(root, false)
	state.postTraversalPasses(root)
	return root, state, nil
}

// findFirst returns the first Element child of n with the given tag name,
// depth-first, used to split a sanitized document into head/body strings.
func findFirst(n *Node, tag string) *Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == ElementNode && c.TagName() == tag {
			return c
		}
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// findDoctype returns the first DoctypeNode found under n, depth-first.
func findDoctype(n *Node) *Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == DoctypeNode {
			return c
		}
		if found := findDoctype(c); found != nil {
			return found
		}
	}
	return nil
}

// sanitizeInPlaceTree runs the in-place variant: root itself is validated by
// the element decision before any mutation happens (SPEC_FULL.md §4.4 "Root
// validation (in-place only)"). Since root can be neither removed nor
// unwrapped (the caller holds a reference to it), a non-keep verdict fails
// fast with ForbiddenRootNode instead. A keep verdict still filters root's
// own attributes, exactly as visitElement would for any other kept element,
// before the normal tree walk continues over root's children.
func sanitizeInPlaceTree(root *Node, rc *resolvedConfig, hooks *hookRegistry) (*sanitizerState, error) {
	state := &sanitizerState{rc: rc, hooks: hooks}

	if root.Type == ElementNode {
		if !rc.parserMediaTypeIsXHTML() {
			state.assignHTMLNamespace(root)
		}
		if d := state.decideElement(root); d != decisionKeep {
			return state, &ForbiddenRootNode{TagName: root.TagName()}
		}
		hooks.fire(PhaseBeforeSanitizeAttributes, root, nil)
		state.filterAttributes(root)
		hooks.fire(PhaseAfterSanitizeAttributes, root, nil)
	}

	state.sanitizeTree(root, rc.parserMediaTypeIsXHTML())
	state.postTraversalPasses(root)
	return state, nil
}

func (rc *resolvedConfig) parserMediaTypeIsXHTML() bool {
	return rc.parserMediaType == MediaTypeXHTML
}
