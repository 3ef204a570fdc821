package sanitize

import (
	"regexp"
	"strings"
)

// attrfilter.go implements the per-attribute keep/drop decision and
// validity check (SPEC_FULL.md §4.5). New logic grounded directly on
// spec.md's rule ordering; the attribute-value trimming approach echoes
// chtml/attr_scanner.go's span-oriented view of a raw attribute value,
// adapted here to operate on the already-decoded Attribute.Val string
// rather than a raw token's byte span (the sanitizer has no source-mapping
// requirement the way chtml's diagnostics do).

var attrWhitespaceRegExp = regexp.MustCompile(`^[\x00-\x20\xA0\x{1680}\x{180E}\x{2000}-\x{2029}\x{205F}\x{3000}]+|[\x00-\x20\xA0\x{1680}\x{180E}\x{2000}-\x{2029}\x{205F}\x{3000}]+$`)

var dataAttrRegExp = regexp.MustCompile(`(?i)^data-[A-Za-z0-9_.\x{00B7}-]+$`)
var ariaAttrRegExp = regexp.MustCompile(`(?i)^aria-[A-Za-z0-9_-]+$`)

var selfCloseRegExp = regexp.MustCompile(`/>`)
var safeForXMLAttrRegExp = regexp.MustCompile(`(?i)(--!?|])>|</(style|title|textarea)`)

func trimAttrWhitespace(v string) string {
	return attrWhitespaceRegExp.ReplaceAllString(v, "")
}

// filterAttributes runs the attribute filter over a copy of n.Attr,
// mutating n.Attr in place to hold only the surviving (possibly rewritten)
// attributes. Returns the list of attribute names removed, for the removed
// log.
func (s *sanitizerState) filterAttributes(n *Node) []string {
	original := make([]Attribute, len(n.Attr))
	copy(original, n.Attr)

	var kept []Attribute
	var removedNames []string
	hadIsAttr := false

	for _, attr := range original {
		if attr.Key == "is" {
			hadIsAttr = true
		}
		newVal, keep := s.decideAttribute(n, attr)
		if keep {
			attr.Val = newVal
			kept = append(kept, attr)
		} else {
			removedNames = append(removedNames, attr.Key)
			s.recordRemovedAttribute(attr.Key, n.TagName())
		}
	}

	stillHasIs := false
	for _, a := range kept {
		if a.Key == "is" {
			stillHasIs = true
		}
	}
	if hadIsAttr && !stillHasIs {
		// DOM clobber hardening: an <x is="..."> whose is attribute was
		// dropped gets an empty is="" written back (SPEC_FULL.md §4.5,
		// "After the loop").
		kept = append(kept, Attribute{Key: "is", Val: ""})
	}

	n.Attr = kept
	return removedNames
}

// decideAttribute runs the full per-attribute pipeline of SPEC_FULL.md
// §4.5 steps 1-9 and returns the (possibly mutated) value plus whether to
// keep the attribute.
func (s *sanitizerState) decideAttribute(n *Node, attr Attribute) (string, bool) {
	rc := s.rc
	isXHTML := rc.parserMediaType == MediaTypeXHTML
	nameLower := attr.Key
	if !isXHTML {
		nameLower = toLowerASCII(attr.Key)
	}
	value := attr.Val
	trimmed := value
	if nameLower != "value" {
		trimmed = trimAttrWhitespace(value)
	}

	if s.hooks.has(PhaseUponSanitizeAttribute) {
		ev := &HookEvent{
			AttrName:               nameLower,
			AttrValue:               value,
			AllowedAttributesProxy: &allowSetProxy{set: rc.allowedAttributes},
			KeepAttr:                true,
		}
		s.hooks.fire(PhaseUponSanitizeAttribute, n, ev)
		value = ev.AttrValue
		if ev.ForceKeepAttr != nil && *ev.ForceKeepAttr {
			return value, true
		}
		if !ev.KeepAttr {
			return value, false
		}
		trimmed = trimAttrWhitespace(value)
	}

	if rc.sanitizeNamedProps && (nameLower == "id" || nameLower == "name") {
		value = "user-content-" + value
		trimmed = trimAttrWhitespace(value)
	}

	if nameLower == "attributename" && strings.Contains(strings.ToLower(value), "href") {
		return value, false
	}

	if !rc.allowSelfCloseInAttributes && selfCloseRegExp.MatchString(value) {
		return value, false
	}

	if rc.safeForXML && safeForXMLAttrRegExp.MatchString(value) {
		return value, false
	}

	if rc.safeForTemplates {
		if stripped, changed := stripTemplateExpressions(value); changed {
			value = stripped
			trimmed = trimAttrWhitespace(value)
		}
	}

	if !s.attributeIsValid(n, nameLower, value, trimmed) {
		return value, false
	}

	return value, true
}

// attributeIsValid implements the validity check of SPEC_FULL.md §4.5.
func (s *sanitizerState) attributeIsValid(n *Node, nameLower, value, trimmed string) bool {
	rc := s.rc
	tag := n.TagName()

	if rc.sanitizeDOM && (nameLower == "id" || nameLower == "name") && clobberPropertySet[value] {
		return false
	}

	if rc.allowDataAttributes && !rc.safeForTemplates && !rc.forbidAttributes[nameLower] && dataAttrRegExp.MatchString(nameLower) {
		return true
	}

	if rc.allowAriaAttributes && ariaAttrRegExp.MatchString(nameLower) {
		return true
	}

	if !rc.allowedAttributes[nameLower] || rc.forbidAttributes[nameLower] {
		if isCustomElementTag(tag, rc) {
			if rc.customElementHandling != nil && rc.customElementHandling.attributeNameCheck != nil &&
				rc.customElementHandling.attributeNameCheck.MatchString(nameLower) {
				return true
			}
		}
		if nameLower == "is" && rc.customElementHandling != nil &&
			rc.customElementHandling.allowCustomizedBuiltInElements &&
			rc.customElementHandling.tagNameCheck != nil &&
			rc.customElementHandling.tagNameCheck.MatchString(value) {
			return true
		}
		return false
	}

	if rc.uriSafeAttributes[nameLower] {
		return true
	}

	if value == "" {
		return true
	}

	if (nameLower == "src" || nameLower == "xlink:href" || nameLower == "href") &&
		tag != "script" && strings.HasPrefix(trimmed, "data:") && rc.dataURITags[tag] {
		return true
	}

	if isURIAttr(nameLower) {
		if rc.allowedURIRegExp != nil && rc.allowedURIRegExp.MatchString(trimmed) {
			return true
		}
		if rc.allowUnknownProtocols && !unknownProtocolRegExp.MatchString(trimmed) {
			return true
		}
		return false
	}

	// Non-URI attribute that is on the allow list and not forbidden: keep.
	return true
}

func isURIAttr(nameLower string) bool {
	for _, a := range defaultURIAttrs {
		if a == nameLower {
			return true
		}
	}
	return false
}

// isCustomElementTag reports whether tag passes the basic custom-element
// test (SPEC_FULL.md §4.4 step 2, §4.5): it matches the structural regex,
// is not annotation-xml, and (if configured) matches
// customElementHandling.tagNameCheck.
func isCustomElementTag(tag string, rc *resolvedConfig) bool {
	if tag == "annotation-xml" {
		return false
	}
	if !basicCustomElementRegExp.MatchString(tag) {
		return false
	}
	if rc.customElementHandling != nil && rc.customElementHandling.tagNameCheck != nil {
		return rc.customElementHandling.tagNameCheck.MatchString(tag)
	}
	return true
}
