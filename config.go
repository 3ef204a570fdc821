package sanitize

import "regexp"

// ParserMediaType selects how input is parsed (SPEC_FULL.md §3).
type ParserMediaType int

const (
	MediaTypeHTML ParserMediaType = iota
	MediaTypeXHTML
)

// Profile names a built-in tag/attribute subset (SPEC_FULL.md §3).
type Profile string

const (
	ProfileHTML       Profile = "html"
	ProfileSVG        Profile = "svg"
	ProfileSVGFilters Profile = "svgFilters"
	ProfileMathML     Profile = "mathML"
)

// CustomElementHandling configures how unknown custom-element tags/attrs
// are treated (SPEC_FULL.md §3). TagNameCheck/AttributeNameCheck are raw
// regex patterns, compiled by the resolver; an invalid pattern disables
// that specific check rather than aborting sanitization (SPEC_FULL.md §4.1,
// §7).
type CustomElementHandling struct {
	TagNameCheck                   string
	AttributeNameCheck             string
	AllowCustomizedBuiltInElements bool
}

// resolvedCustomElementHandling holds the compiled form of
// CustomElementHandling.
type resolvedCustomElementHandling struct {
	tagNameCheck                   *regexp.Regexp
	attributeNameCheck             *regexp.Regexp
	allowCustomizedBuiltInElements bool
}

// Configuration is the value-type struct callers pass to every public entry
// point (SPEC_FULL.md §3). Start from DefaultConfig() and override only the
// fields that need to change; a bare Configuration{} literal gets the Go
// zero value for every field (all booleans false, AllowedTags/
// AllowedAttributes nil so the resolver falls back to its built-in
// universes), not the engine's documented defaults.
type Configuration struct {
	AllowedTags             []string
	AllowedAttributes       []string
	ForbidTags              []string
	ForbidAttributes        []string
	AddTags                 []string
	AddAttributes           []string
	DataURITags              []string
	URISafeAttributes        []string
	ForbidContents           []string
	AllowedNamespaceURIs     []string

	// AllowDataAttributes, like every other bool field below, takes its
	// documented default from DefaultConfig(); a caller that builds a
	// Configuration from a struct literal gets the Go zero value (false)
	// for all of them instead.
	AllowDataAttributes         bool
	AllowAriaAttributes         bool
	AllowUnknownProtocols       bool
	AllowSelfCloseInAttributes  bool
	SafeForXML                  bool
	SafeForTemplates             bool
	WholeDocument                bool
	ForceBody                    bool
	KeepContent                  bool
	SanitizeDOM                  bool
	SanitizeNamedProps           bool

	ParserMediaType ParserMediaType
	NamespaceURI    string

	UseProfiles []Profile

	// AllowedURIRegExp, when non-empty, overrides defaultAllowedURIRegExp
	// for the attribute filter's default-path scheme check (SPEC_FULL.md
	// §4.5). An invalid pattern disables the check (SPEC_FULL.md §4.1).
	AllowedURIRegExp      string
	CustomElementHandling *CustomElementHandling
}

// DefaultConfig returns the structural-default configuration: every boolean
// at its documented default, no set restrictions beyond the built-in
// allow lists applied by the resolver.
func DefaultConfig() Configuration {
	return Configuration{
		AllowDataAttributes:        true,
		AllowAriaAttributes:        true,
		AllowSelfCloseInAttributes: true,
		SafeForXML:                 true,
		KeepContent:                true,
		SanitizeDOM:                true,
		ParserMediaType:            MediaTypeHTML,
		NamespaceURI:               HTMLNamespaceURI,
	}
}

// resolvedConfig is the immutable-per-call, byte-array-cached view the
// engine actually consults. Built once per sanitize call by resolve().
type resolvedConfig struct {
	allowedTags       map[string]bool
	allowedAttributes map[string]bool
	forbidTags        map[string]bool
	forbidAttributes  map[string]bool
	dataURITags       map[string]bool
	uriSafeAttributes map[string]bool
	forbidContents    map[string]bool
	allowedNamespaceURIs map[string]bool

	allowDataAttributes        bool
	allowAriaAttributes        bool
	allowUnknownProtocols      bool
	allowSelfCloseInAttributes bool
	safeForXML                 bool
	safeForTemplates           bool
	wholeDocument              bool
	forceBody                  bool
	keepContent                bool
	sanitizeDOM                bool
	sanitizeNamedProps         bool

	parserMediaType ParserMediaType
	namespaceURI    string

	allowedURIRegExp      *regexp.Regexp
	customElementHandling *resolvedCustomElementHandling
}

// compileOrDisable compiles pattern, returning nil (a disabled check) if it
// fails to compile, per SPEC_FULL.md §4.1/§7.
func compileOrDisable(pattern string) *regexp.Regexp {
	if pattern == "" {
		return nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		logf("disabling invalid regex %q: %v", pattern, err)
		return nil
	}
	return re
}

var basicCustomElementRegExp = regexp.MustCompile(`^[a-z][.\w]*(-[.\w]+)+$`)

// defaultAllowedURIRegExp is DOMPurify's default scheme allowlist regex
// (SPEC_FULL.md §4.5 default path), applied when no AllowedURIRegExp is
// configured.
var defaultAllowedURIRegExp = regexp.MustCompile(
	`(?i)^(?:(?:(?:f|ht)tps?|mailto|tel|callto|sms|cid|xmpp|matrix):|[^a-z]|[a-z+.\-]+(?:[^a-z+.\-:]|$))`,
)

var unknownProtocolRegExp = regexp.MustCompile(`(?i)^(?:\w+script|data):`)

var xmlNamespaceURIs = newStringSet([]string{
	HTMLNamespaceURI, SVGNamespaceURI, MathMLNamespaceURI,
})

// resolve implements the configuration resolver (SPEC_FULL.md §4.1). It
// clones the caller's Configuration, lowercases identifiers outside XHTML,
// folds in profile subsets and add-lists, and enforces implied additions.
func resolve(c Configuration) *resolvedConfig {
	isXHTML := c.ParserMediaType == MediaTypeXHTML

	rc := &resolvedConfig{
		allowedTags:       newStringSet(nil),
		allowedAttributes: newStringSet(nil),
		forbidTags:        newStringSet(nil),
		forbidAttributes:  newStringSet(nil),
		dataURITags:       newStringSet(defaultDataURITags),
		uriSafeAttributes: newStringSet(defaultURISafeAttrs),
		forbidContents:    newStringSet([]string{"script", "style"}),
		allowedNamespaceURIs: cloneSet(xmlNamespaceURIs),

		allowDataAttributes:        true,
		allowAriaAttributes:        true,
		allowSelfCloseInAttributes: true,
		safeForXML:                 true,
		keepContent:                true,
		sanitizeDOM:                true,

		parserMediaType: c.ParserMediaType,
		namespaceURI:    c.NamespaceURI,
	}
	if rc.namespaceURI == "" {
		rc.namespaceURI = HTMLNamespaceURI
	}

	// Start from the caller's explicit values, normalizing case.
	norm := func(ss []string) []string {
		if isXHTML {
			out := make([]string, len(ss))
			copy(out, ss)
			return out
		}
		return lowercaseAll(ss)
	}

	allowedTags := norm(c.AllowedTags)
	allowedAttrs := norm(c.AllowedAttributes)
	forbidTags := norm(c.ForbidTags)
	forbidAttrs := norm(c.ForbidAttributes)
	addTags := norm(c.AddTags)
	addAttrs := norm(c.AddAttributes)

	if c.AllowedTags == nil && len(c.UseProfiles) == 0 {
		// Caller never set AllowedTags (nil, not merely empty) and named no
		// profile: fall back to the full default HTML tag universe. An
		// explicit []string{} is a caller-chosen empty allow list and is
		// left alone.
		allowedTags = append(allowedTags, defaultHTMLTags...)
	}
	if c.AllowedAttributes == nil && len(c.UseProfiles) == 0 {
		allowedAttrs = append(allowedAttrs, defaultHTMLAttrs...)
	}

	for _, t := range allowedTags {
		rc.allowedTags[t] = true
	}
	for _, a := range allowedAttrs {
		rc.allowedAttributes[a] = true
	}
	for _, t := range forbidTags {
		rc.forbidTags[t] = true
	}
	for _, a := range forbidAttrs {
		rc.forbidAttributes[a] = true
	}
	rc.allowedTags["#text"] = true

	if len(c.UseProfiles) > 0 {
		rc.allowedTags = newStringSet([]string{"#text"})
		rc.allowedAttributes = newStringSet(nil)
		for _, p := range c.UseProfiles {
			switch p {
			case ProfileHTML:
				unionInto(rc.allowedTags, defaultHTMLTags)
				unionInto(rc.allowedAttributes, defaultHTMLAttrs)
			case ProfileSVG:
				unionInto(rc.allowedTags, defaultSVGTags)
				unionInto(rc.allowedAttributes, defaultSVGAttrs)
				unionInto(rc.allowedAttributes, smallXMLAttrs)
			case ProfileSVGFilters:
				unionInto(rc.allowedTags, defaultSVGFilters)
				unionInto(rc.allowedAttributes, defaultSVGAttrs)
				unionInto(rc.allowedAttributes, smallXMLAttrs)
			case ProfileMathML:
				unionInto(rc.allowedTags, defaultMathMLTags)
				unionInto(rc.allowedAttributes, defaultMathMLAttrs)
				unionInto(rc.allowedAttributes, smallXMLAttrs)
			}
		}
	}

	unionInto(rc.allowedTags, addTags)
	unionInto(rc.allowedAttributes, addAttrs)

	if len(c.DataURITags) > 0 {
		rc.dataURITags = newStringSet(norm(c.DataURITags))
	}
	if len(c.URISafeAttributes) > 0 {
		rc.uriSafeAttributes = newStringSet(norm(c.URISafeAttributes))
	}
	if len(c.ForbidContents) > 0 {
		rc.forbidContents = newStringSet(norm(c.ForbidContents))
	}
	if len(c.AllowedNamespaceURIs) > 0 {
		rc.allowedNamespaceURIs = newStringSet(c.AllowedNamespaceURIs)
	}

	rc.allowDataAttributes = c.AllowDataAttributes
	rc.allowAriaAttributes = c.AllowAriaAttributes
	rc.allowUnknownProtocols = c.AllowUnknownProtocols
	rc.allowSelfCloseInAttributes = c.AllowSelfCloseInAttributes
	rc.safeForXML = c.SafeForXML
	rc.safeForTemplates = c.SafeForTemplates
	rc.wholeDocument = c.WholeDocument
	rc.forceBody = c.ForceBody
	rc.keepContent = c.KeepContent
	rc.sanitizeDOM = c.SanitizeDOM
	rc.sanitizeNamedProps = c.SanitizeNamedProps
	if c.CustomElementHandling != nil {
		rc.customElementHandling = &resolvedCustomElementHandling{
			tagNameCheck:                   compileOrDisable(c.CustomElementHandling.TagNameCheck),
			attributeNameCheck:             compileOrDisable(c.CustomElementHandling.AttributeNameCheck),
			allowCustomizedBuiltInElements: c.CustomElementHandling.AllowCustomizedBuiltInElements,
		}
	}

	if c.WholeDocument {
		for _, t := range []string{"html", "head", "body"} {
			rc.allowedTags[t] = true
		}
	}
	if rc.allowedTags["table"] {
		rc.allowedTags["tbody"] = true
		delete(rc.forbidTags, "tbody")
	}

	if c.AllowedURIRegExp != "" {
		// nil (invalid pattern) is a disabled check that never matches.
		rc.allowedURIRegExp = compileOrDisable(c.AllowedURIRegExp)
	} else {
		rc.allowedURIRegExp = defaultAllowedURIRegExp
	}

	return rc
}

func lowercaseAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = toLowerASCII(s)
	}
	return out
}

func unionInto(dst map[string]bool, items []string) {
	for _, s := range items {
		dst[s] = true
	}
}

func cloneSet(src map[string]bool) map[string]bool {
	dst := make(map[string]bool, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// toLowerASCII avoids strings.ToLower's Unicode table walk for the hot path
// of tag/attribute name normalization, per SPEC_FULL.md §9's "fast ASCII
// scheme path first" guidance.
func toLowerASCII(s string) string {
	hasUpper := false
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return s
	}
	b := []byte(s)
	for i := range b {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}
