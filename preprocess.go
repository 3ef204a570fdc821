package sanitize

import (
	"regexp"
	"strconv"
	"strings"
)

// preprocess.go implements the HTML-mode string pre-processor (SPEC_FULL.md
// §4.2): string-level rewrites applied before parsing to work around parser
// quirks. The delimiter-scanning shape of customSelfCloseRegExp's caller
// and the select/template placeholder rewrite are grounded on the small
// hand-written state machine in chtml/interpol.go (lexText/lexLeftDelim/
// lexExpr/lexRightDelim), generalized from "scan for ${...}" to "scan for
// and rewrite a tag pattern".

var customSelfCloseRegExp = regexp.MustCompile(`(?i)<([a-z][\w]*-[\w]+)((?:\s+[^<>]*)?)/>`)

var selectTemplateRegExp = regexp.MustCompile(`(?is)<template[^>]*>.*?</template>`)

var selectOpenRegExp = regexp.MustCompile(`(?i)<select\b[^>]*>`)
var selectCloseRegExp = regexp.MustCompile(`(?i)</select\s*>`)

const templatePlaceholderAttr = "data-go-sanitize-template-placeholder"

// breakoutRewrite is one of the four regex-guided foreign-content breakout
// rewrites (SPEC_FULL.md §4.2 step 3).
type breakoutRewrite struct {
	re   *regexp.Regexp
	into string
}

var breakoutRewrites = []breakoutRewrite{
	// <math><title><style><img> -> inject </style></title></math> before <img>
	{
		re:   regexp.MustCompile(`(?i)(<math[^>]*>[^<]*<title[^>]*>[^<]*<style[^>]*>[^<]*)(<img)`),
		into: "$1</style></title></math>$2",
	},
	// <svg>...<p> breakout
	{
		re:   regexp.MustCompile(`(?i)(<svg[^>]*>(?:[^<]|<[^/<]|</[^s<]|</s[^v<]|</sv[^g<]|</svg[^><])*)(<p\b)`),
		into: "$1</svg>$2",
	},
	// <svg>...<blockquote> breakout
	{
		re:   regexp.MustCompile(`(?i)(<svg[^>]*>(?:[^<]|<[^/<]|</[^s<]|</s[^v<]|</sv[^g<]|</svg[^><])*)(<blockquote\b)`),
		into: "$1</svg>$2",
	},
	// <svg><style><img> breakout
	{
		re:   regexp.MustCompile(`(?i)(<svg[^>]*>[^<]*<style[^>]*>[^<]*)(<img)`),
		into: "$1</style></svg>$2",
	},
}

const forceBodySentinel = "<remove></remove>"

var leadingWhitespaceRegExp = regexp.MustCompile(`^[ \t\n\r\f]+`)

// templatePlaceholder records a rewritten <select><template> for
// re-insertion after parsing.
type templatePlaceholder struct {
	id    string
	inner string
}

// preprocessResult carries the rewritten input plus anything the traversal
// or post-processing step needs to undo the rewrite.
type preprocessResult struct {
	input               string
	templatePlaceholders []templatePlaceholder
	leadingWhitespace    string
	forceBodyInserted    bool
}

// preprocessHTML applies the HTML-mode string rewrites in the order
// documented by SPEC_FULL.md §4.2.
func preprocessHTML(input string, rc *resolvedConfig) preprocessResult {
	res := preprocessResult{input: input}

	res.input = rewriteCustomSelfClose(res.input)

	res.input, res.templatePlaceholders = rewriteSelectTemplates(res.input)

	for _, rw := range breakoutRewrites {
		res.input = rw.re.ReplaceAllString(res.input, rw.into)
	}

	if rc.forceBody {
		res.input = forceBodySentinel + res.input
		res.forceBodyInserted = true
	} else if m := leadingWhitespaceRegExp.FindString(res.input); m != "" {
		// The fragment parser's "before html"/"before head" insertion modes
		// can drop whitespace-only text preceding the first real content, so
		// it is stripped here and re-inserted verbatim as an explicit text
		// node after parsing (SPEC_FULL.md §9 "fixture-driven string
		// rewrites").
		res.leadingWhitespace = m
		res.input = res.input[len(m):]
	}

	return res
}

// rewriteCustomSelfClose finds <tag .../> where tag looks like a custom
// element (contains a hyphen) and is not a recognized built-in, rewriting
// it to an open tag so the parser treats following content as children
// instead of silently dropping the self-close (browsers ignore self-close
// on unknown HTML elements; SPEC_FULL.md §4.2 step 1).
func rewriteCustomSelfClose(s string) string {
	return customSelfCloseRegExp.ReplaceAllStringFunc(s, func(match string) string {
		groups := customSelfCloseRegExp.FindStringSubmatch(match)
		tag := groups[1]
		if defaultHTMLTagSet[toLowerASCII(tag)] {
			return match
		}
		return "<" + tag + groups[2] + ">"
	})
}

var defaultHTMLTagSet = newStringSet(defaultHTMLTags)

// rewriteSelectTemplates replaces each <template>...</template> found
// inside a <select>...</select> with a placeholder <option>, recording the
// original contents for rewrapSelectTemplates to restore after parsing
// (SPEC_FULL.md §4.2 step 2).
func rewriteSelectTemplates(s string) (string, []templatePlaceholder) {
	var placeholders []templatePlaceholder

	openLoc := selectOpenRegExp.FindStringIndex(s)
	if openLoc == nil {
		return s, nil
	}

	var sb strings.Builder
	pos := 0
	n := 0
	for {
		open := selectOpenRegExp.FindStringIndex(s[pos:])
		if open == nil {
			sb.WriteString(s[pos:])
			break
		}
		openStart, openEnd := pos+open[0], pos+open[1]
		close := selectCloseRegExp.FindStringIndex(s[openEnd:])
		if close == nil {
			sb.WriteString(s[pos:])
			break
		}
		closeStart, closeEnd := openEnd+close[0], openEnd+close[1]

		sb.WriteString(s[pos:openEnd])
		body := s[openEnd:closeStart]
		body = selectTemplateRegExp.ReplaceAllStringFunc(body, func(tpl string) string {
			inner := stripOuterTag(tpl)
			id := "tpl-" + strconv.Itoa(n)
			n++
			placeholders = append(placeholders, templatePlaceholder{id: id, inner: inner})
			return `<option ` + templatePlaceholderAttr + `="` + id + `"></option>`
		})
		sb.WriteString(body)
		sb.WriteString(s[closeStart:closeEnd])
		pos = closeEnd
	}

	return sb.String(), placeholders
}

// stripOuterTag removes the outermost <template ...> and </template> from a
// matched template element, leaving its inner markup.
func stripOuterTag(tpl string) string {
	openEnd := strings.IndexByte(tpl, '>')
	closeStart := strings.LastIndex(strings.ToLower(tpl), "</template>")
	if openEnd == -1 || closeStart == -1 || closeStart <= openEnd {
		return ""
	}
	return tpl[openEnd+1 : closeStart]
}
