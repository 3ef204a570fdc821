package sanitize

// defaults.go holds the compiled allow/deny tables described in
// SPEC_FULL.md §2: default tags/attrs, URI-safe attributes, data-URI tags,
// SVG/MathML universes, integration points, clobber-prone property names,
// and the HTML/SVG/SVG-filters/MathML profile subsets. These sets are
// immutable after process start (SPEC_FULL.md §5) and are cloned into a
// resolvedConfig's mutable sets by config.go.

// newStringSet builds a set from a slice literal, used throughout this file
// to keep the default tables readable as plain lists.
func newStringSet(items []string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, s := range items {
		m[s] = true
	}
	return m
}

var defaultHTMLTags = []string{
	"a", "abbr", "acronym", "address", "area", "article", "aside", "audio",
	"b", "bdi", "bdo", "big", "blink", "blockquote", "body", "br", "button",
	"canvas", "caption", "center", "cite", "code", "col", "colgroup",
	"content", "data", "datalist", "dd", "decorator", "del", "details",
	"dfn", "dialog", "dir", "div", "dl", "dt", "element", "em", "fieldset",
	"figcaption", "figure", "font", "footer", "form", "h1", "h2", "h3",
	"h4", "h5", "h6", "head", "header", "hgroup", "hr", "html", "i",
	"img", "input", "ins", "kbd", "label", "legend", "li", "main", "map",
	"mark", "marquee", "menu", "menuitem", "meter", "nav", "nobr",
	"ol", "optgroup", "option", "output", "p", "picture", "pre",
	"progress", "q", "rp", "rt", "ruby", "s", "samp", "section",
	"select", "shadow", "small", "source", "spacer", "span", "strike",
	"strong", "style", "sub", "summary", "sup", "table", "tbody", "td",
	"template", "textarea", "tfoot", "th", "thead", "time", "tr", "track",
	"tt", "u", "ul", "var", "video", "wbr",
}

var defaultHTMLAttrs = []string{
	"accept", "action", "align", "alt", "autocapitalize", "autocomplete",
	"autopictureinpicture", "autoplay", "background", "bgcolor", "border",
	"capture", "cellpadding", "cellspacing", "checked", "cite", "class",
	"clear", "color", "cols", "colspan", "controls", "controlslist",
	"coords", "crossorigin", "datetime", "decoding", "default", "dir",
	"disabled", "disablepictureinpicture", "disableremoteplayback",
	"download", "draggable", "enctype", "enterkeyhint", "face", "for",
	"headers", "height", "hidden", "high", "href", "hreflang", "id",
	"inputmode", "integrity", "ismap", "kind", "label", "lang", "list",
	"loading", "loop", "low", "max", "maxlength", "media", "method",
	"min", "minlength", "multiple", "muted", "name", "nonce", "noshade",
	"novalidate", "nowrap", "open", "optimum", "pattern", "placeholder",
	"playsinline", "popover", "popovertarget", "popovertargetaction",
	"poster", "preload", "pubdate", "radiogroup", "readonly", "rel",
	"required", "rev", "reversed", "role", "rows", "rowspan", "spellcheck",
	"scope", "selected", "shape", "size", "sizes", "span", "srclang",
	"start", "src", "srcset", "step", "style", "summary", "tabindex",
	"title", "translate", "type", "usemap", "valign", "value", "width",
	"xmlns", "slot",
}

var defaultSVGTags = []string{
	"svg", "a", "altglyph", "altglyphdef", "altglyphitem", "animatecolor",
	"animatemotion", "animatetransform", "circle", "clippath", "defs",
	"desc", "ellipse", "filter", "font", "g", "glyph", "glyphref",
	"hkern", "image", "line", "lineargradient", "marker", "mask",
	"metadata", "mpath", "path", "pattern", "polygon", "polyline",
	"radialgradient", "rect", "stop", "style", "switch", "symbol", "text",
	"textpath", "title", "tref", "tspan", "view", "vkern", "animate",
	"fedistantlight", "femerge", "femergenode", "feoffset", "fepointlight",
	"fespotlight", "fetile", "feturbulence", "feblend", "fecolormatrix",
	"fecomponenttransfer", "fecomposite", "feconvolvematrix",
	"fediffuselighting", "fedisplacementmap", "feflood", "fefunca",
	"fefuncb", "fefuncg", "fefuncr", "fegaussianblur", "feimage",
	"femorphology", "fespecularlighting", "use",
}

var defaultSVGFilters = []string{
	"fedistantlight", "femerge", "femergenode", "feoffset", "fepointlight",
	"fespotlight", "fetile", "feturbulence", "feblend", "fecolormatrix",
	"fecomponenttransfer", "fecomposite", "feconvolvematrix",
	"fediffuselighting", "fedisplacementmap", "feflood", "fefunca",
	"fefuncb", "fefuncg", "fefuncr", "fegaussianblur", "feimage",
	"femorphology", "fespecularlighting", "filter",
}

var defaultSVGAttrs = []string{
	"accent-height", "accumulate", "additive", "alignment-baseline",
	"ascent", "attributename", "attributetype", "azimuth", "basefrequency",
	"baseline-shift", "begin", "bias", "by", "class", "clip", "clippath",
	"clip-path", "clip-rule", "color", "color-interpolation",
	"color-interpolation-filters", "color-profile", "color-rendering",
	"cx", "cy", "d", "dx", "dy", "diffuseconstant", "direction", "display",
	"divisor", "dur", "edgemode", "elevation", "end", "fill", "fill-opacity",
	"fill-rule", "filter", "flood-color", "flood-opacity", "font-family",
	"font-size", "font-size-adjust", "font-stretch", "font-style",
	"font-variant", "font-weight", "fx", "fy", "g1", "g2", "glyph-name",
	"glyphref", "gradientunits", "gradienttransform", "height", "href",
	"id", "image-rendering", "in", "in2", "k", "k1", "k2", "k3", "k4",
	"kerning", "keypoints", "keysplines", "keytimes", "lang",
	"lengthadjust", "letter-spacing", "kernelmatrix", "kernelunitlength",
	"lighting-color", "local", "marker-end", "marker-mid", "marker-start",
	"markerheight", "markerunits", "markerwidth", "maskcontentunits",
	"maskunits", "max", "mask", "media", "method", "mode", "min", "name",
	"numoctaves", "offset", "operator", "opacity", "order", "orient",
	"orientation", "origin", "overflow", "paint-order", "path",
	"pathlength", "patterncontentunits", "patterntransform", "patternunits",
	"points", "preservealpha", "preserveaspectratio", "primitiveunits",
	"r", "rx", "ry", "radius", "refx", "refy", "repeatcount", "repeatdur",
	"restart", "result", "rotate", "scale", "seed", "shape-rendering",
	"specularconstant", "specularexponent", "spreadmethod", "startoffset",
	"stddeviation", "stitchtiles", "stop-color", "stop-opacity",
	"stroke-dasharray", "stroke-dashoffset", "stroke-linecap",
	"stroke-linejoin", "stroke-miterlimit", "stroke-opacity", "stroke",
	"stroke-width", "style", "surfacescale", "systemlanguage", "tabindex",
	"targetx", "targety", "transform", "transform-origin", "text-anchor",
	"text-decoration", "text-rendering", "textlength", "type", "u1", "u2",
	"unicode", "values", "viewbox", "visibility", "version", "vert-adv-y",
	"vert-origin-x", "vert-origin-y", "width", "word-spacing",
	"wrap", "writing-mode", "xchannelselector", "ychannelselector", "x",
	"x1", "x2", "xmlns", "y", "y1", "y2", "z", "zoomandpan",
}

var defaultMathMLTags = []string{
	"math", "menclose", "merror", "mfenced", "mfrac", "mglyph", "mi",
	"mlabeledtr", "mmultiscripts", "mn", "mo", "mover", "mpadded", "mphantom",
	"mroot", "mrow", "ms", "mspace", "msqrt", "mstyle", "msub", "msup",
	"msubsup", "mtable", "mtd", "mtext", "mtr", "munder", "munderover",
	"mprescripts", "annotation", "annotation-xml", "semantics",
}

var defaultMathMLAttrs = []string{
	"accent", "accentunder", "align", "bevelled", "close", "columnsalign",
	"columnlines", "columnspan", "denomalign", "depth", "dir", "display",
	"displaystyle", "encoding", "fence", "frame", "height", "href",
	"id", "largeop", "length", "linethickness", "lspace", "lquote",
	"mathbackground", "mathcolor", "mathsize", "mathvariant", "maxsize",
	"minsize", "movablelimits", "notation", "numalign", "open", "rowalign",
	"rowlines", "rowspacing", "rowspan", "rspace", "rquote", "scriptlevel",
	"scriptminsize", "scriptsizemultiplier", "selection", "separator",
	"separators", "stretchy", "subscriptshift", "supscriptshift",
	"symmetric", "voffset", "width", "xlink:href", "xlink:show",
	"xlink:type", "xmlns",
}

// smallXMLAttrs are unioned into the SVG/MathML profiles for XML-namespaced
// attributes commonly used alongside those profiles (SPEC_FULL.md §4.1).
var smallXMLAttrs = []string{
	"xlink:href", "xml:id", "xml:space", "xlink:title", "xmlns:xlink",
}

// defaultURISafeAttrs are attributes whose value is never interpreted as a
// resource reference or script sink even though the name overlaps with
// common URI attributes (e.g. <a name="..."> isn't a navigation target).
var defaultURISafeAttrs = []string{
	"alt", "class", "for", "id", "label", "name", "pattern", "placeholder",
	"summary", "title", "value", "style", "xmlns",
}

// defaultURIAttrs are the attribute names subject to scheme validation in
// the attribute filter's validity check (SPEC_FULL.md §4.5 default path).
var defaultURIAttrs = []string{
	"action", "background", "cite", "href", "longdesc", "poster", "src",
	"xlink:href",
}

// defaultDataURITags are elements allowed to carry a data: URI in src/href
// (SPEC_FULL.md §4.5 step "Default path" data-URI branch).
var defaultDataURITags = []string{
	"audio", "video", "img", "source", "image", "track",
}

// htmlIntegrationPoints are SVG elements at which HTML content is allowed
// when embedded inside an SVG subtree (SPEC_FULL.md §4.3).
var htmlIntegrationPoints = newStringSet([]string{
	"foreignobject", "desc", "title",
})

// mathMLTextIntegrationPoints are MathML elements whose children may be
// parsed as HTML/text content (SPEC_FULL.md §4.3, §GLOSSARY).
var mathMLTextIntegrationPoints = newStringSet([]string{
	"mi", "mo", "mn", "ms", "mtext",
})

// clobberPropertySet are values of id/name that would shadow a Document
// property if assigned via DOM clobbering (SPEC_FULL.md §4.5 validity check
// step 1).
var clobberPropertySet = newStringSet([]string{
	"body", "cookie", "documentElement", "domain", "forms", "images",
	"links", "location", "parentNode", "plugins", "scripts", "title",
	"URL", "window", "self", "top", "parent", "submit", "reset", "name",
	"attributes", "nodeName", "nodeType", "nodeValue", "ownerDocument",
	"innerHTML", "outerHTML", "style", "constructor", "__proto__",
})

// voidElements never get a closing tag in HTML serialization
// (SPEC_FULL.md §4.6).
var voidElements = newStringSet([]string{
	"area", "base", "br", "col", "embed", "hr", "img", "input", "link",
	"meta", "param", "source", "track", "wbr",
})

// rawTextElements have their text content emitted without entity escaping.
var rawTextElements = newStringSet([]string{
	"style", "script", "xmp", "iframe", "noembed", "noframes", "plaintext",
	"noscript",
})

// svgCamelCaseTags maps a lowercase SVG tag name to its canonical mixed-case
// serialization (SPEC_FULL.md §4.6).
var svgCamelCaseTags = map[string]string{
	"altglyph":             "altGlyph",
	"altglyphdef":          "altGlyphDef",
	"altglyphitem":         "altGlyphItem",
	"animatecolor":         "animateColor",
	"animatemotion":        "animateMotion",
	"animatetransform":     "animateTransform",
	"clippath":             "clipPath",
	"feblend":              "feBlend",
	"fecolormatrix":        "feColorMatrix",
	"fecomponenttransfer":  "feComponentTransfer",
	"fecomposite":          "feComposite",
	"feconvolvematrix":     "feConvolveMatrix",
	"fediffuselighting":    "feDiffuseLighting",
	"fedisplacementmap":    "feDisplacementMap",
	"fedistantlight":       "feDistantLight",
	"fedropshadow":         "feDropShadow",
	"feflood":              "feFlood",
	"fefunca":              "feFuncA",
	"fefuncb":              "feFuncB",
	"fefuncg":              "feFuncG",
	"fefuncr":              "feFuncR",
	"fegaussianblur":       "feGaussianBlur",
	"feimage":              "feImage",
	"femerge":              "feMerge",
	"femergenode":          "feMergeNode",
	"femorphology":         "feMorphology",
	"feoffset":             "feOffset",
	"fepointlight":         "fePointLight",
	"fespecularlighting":   "feSpecularLighting",
	"fespotlight":          "feSpotLight",
	"fetile":               "feTile",
	"feturbulence":         "feTurbulence",
	"foreignobject":        "foreignObject",
	"glyphref":             "glyphRef",
	"lineargradient":       "linearGradient",
	"radialgradient":       "radialGradient",
	"textpath":             "textPath",
}

// svgCamelCaseAttrs maps a lowercase SVG attribute name to its canonical
// mixed-case serialization (SPEC_FULL.md §4.6). The serializer applies it to
// attributes of SVG-namespace elements only.
var svgCamelCaseAttrs = map[string]string{
	"attributename":         "attributeName",
	"attributetype":         "attributeType",
	"basefrequency":         "baseFrequency",
	"baseprofile":           "baseProfile",
	"calcmode":              "calcMode",
	"clippath":              "clipPath",
	"clippathunits":         "clipPathUnits",
	"diffuseconstant":       "diffuseConstant",
	"edgemode":              "edgeMode",
	"filterunits":           "filterUnits",
	"glyphref":              "glyphRef",
	"gradienttransform":     "gradientTransform",
	"gradientunits":         "gradientUnits",
	"kernelmatrix":          "kernelMatrix",
	"kernelunitlength":      "kernelUnitLength",
	"keypoints":             "keyPoints",
	"keysplines":            "keySplines",
	"keytimes":              "keyTimes",
	"lengthadjust":          "lengthAdjust",
	"limitingconeangle":     "limitingConeAngle",
	"markerheight":          "markerHeight",
	"markerunits":           "markerUnits",
	"markerwidth":           "markerWidth",
	"maskcontentunits":      "maskContentUnits",
	"maskunits":             "maskUnits",
	"numoctaves":            "numOctaves",
	"pathlength":            "pathLength",
	"patterncontentunits":   "patternContentUnits",
	"patterntransform":      "patternTransform",
	"patternunits":          "patternUnits",
	"points":                "points",
	"preservealpha":         "preserveAlpha",
	"preserveaspectratio":   "preserveAspectRatio",
	"primitiveunits":        "primitiveUnits",
	"refx":                  "refX",
	"refy":                  "refY",
	"repeatcount":           "repeatCount",
	"repeatdur":             "repeatDur",
	"requiredextensions":    "requiredExtensions",
	"requiredfeatures":      "requiredFeatures",
	"specularconstant":      "specularConstant",
	"specularexponent":      "specularExponent",
	"spreadmethod":          "spreadMethod",
	"startoffset":           "startOffset",
	"stddeviation":          "stdDeviation",
	"stitchtiles":           "stitchTiles",
	"surfacescale":          "surfaceScale",
	"systemlanguage":        "systemLanguage",
	"tablevalues":           "tableValues",
	"targetx":               "targetX",
	"targety":               "targetY",
	"textlength":            "textLength",
	"viewbox":               "viewBox",
	"viewtarget":            "viewTarget",
	"xchannelselector":      "xChannelSelector",
	"ychannelselector":      "yChannelSelector",
	"zoomandpan":            "zoomAndPan",
}

// isindexTag names the element that gets the <isindex> attribute swap fixup
// applied by the serializer (SPEC_FULL.md §4.6, §9 open question): historical
// browsers render the "name" and "label" of an <isindex> prompt element in
// swapped attribute order relative to insertion order.
const isindexTag = "isindex"
