package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripTemplateExpressionsMustache(t *testing.T) {
	out, changed := stripTemplateExpressions("hello {{v}} world")
	assert.True(t, changed)
	assert.Equal(t, "hello   world", out)
}

func TestStripTemplateExpressionsERB(t *testing.T) {
	out, changed := stripTemplateExpressions("a <% 1+1 %> b")
	assert.True(t, changed)
	assert.Equal(t, "a   b", out)
}

func TestStripTemplateExpressionsDollarBraceValidExpr(t *testing.T) {
	out, changed := stripTemplateExpressions("x ${1 + 1} y")
	assert.True(t, changed)
	assert.Equal(t, "x   y", out)
}

func TestStripTemplateExpressionsDollarBraceInvalidExprLeftAlone(t *testing.T) {
	// "${)(}" is not valid expr-lang syntax, so it is treated as literal
	// text rather than stripped.
	in := "price is ${)(} not an expression"
	out, changed := stripTemplateExpressions(in)
	assert.False(t, changed)
	assert.Equal(t, in, out)
}

func TestStripTemplateExpressionsNoDelimitersUnchanged(t *testing.T) {
	out, changed := stripTemplateExpressions("plain text")
	assert.False(t, changed)
	assert.Equal(t, "plain text", out)
}
