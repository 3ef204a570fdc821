package sanitize

import (
	"regexp"

	"github.com/expr-lang/expr/parser"
)

// templateexpr.go implements safeForTemplates stripping of {{...}},
// <%...%> and ${...} template-expression delimiters (SPEC_FULL.md §4.4
// step 4.a, §8 invariant 3). The delimiter scanning is grounded on
// chtml/interpol.go's hand-written lexer; ${...} bodies are additionally
// run through expr-lang/expr/parser.Parse (never expr.Run/vm.Run — nothing
// is ever executed) as a syntax oracle so that literal text which merely
// contains "${" isn't mistaken for an expression and dropped unnecessarily.

var mustacheRegExp = regexp.MustCompile(`\{\{[\s\S]*?\}\}`)
var erbRegExp = regexp.MustCompile(`<%[\s\S]*?%>`)
var dollarBraceRegExp = regexp.MustCompile(`\$\{[\s\S]*?\}`)

// stripTemplateExpressions replaces every recognized template-expression
// span in s with a single space, returning the result and whether anything
// changed.
func stripTemplateExpressions(s string) (string, bool) {
	changed := false

	s = mustacheRegExp.ReplaceAllStringFunc(s, func(string) string {
		changed = true
		return " "
	})
	s = erbRegExp.ReplaceAllStringFunc(s, func(string) string {
		changed = true
		return " "
	})
	s = dollarBraceRegExp.ReplaceAllStringFunc(s, func(match string) string {
		body := match[2 : len(match)-1]
		if _, err := parser.Parse(body); err != nil {
			// Not valid expression syntax: treat as literal text rather
			// than stripping it, per SPEC_FULL.md §9's expr-lang-as-oracle
			// design note.
			return match
		}
		changed = true
		return " "
	})

	return s, changed
}
