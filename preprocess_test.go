package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewriteCustomSelfClose(t *testing.T) {
	in := `<my-widget foo="bar"/>`
	out := rewriteCustomSelfClose(in)
	assert.Equal(t, `<my-widget foo="bar">`, out)
}

func TestRewriteCustomSelfCloseLeavesKnownVoidElement(t *testing.T) {
	// "br" has no hyphen so the regex never matches it; a self-closing
	// known element is left untouched either way.
	in := `<br/>`
	out := rewriteCustomSelfClose(in)
	assert.Equal(t, `<br/>`, out)
}

func TestRewriteSelectTemplatesRoundTrip(t *testing.T) {
	in := `<select><template>inner</template></select>`
	out, placeholders := rewriteSelectTemplates(in)

	require.Len(t, placeholders, 1)
	assert.Equal(t, "inner", placeholders[0].inner)
	assert.Contains(t, out, templatePlaceholderAttr)
	assert.NotContains(t, out, "<template>")
}

func TestPreprocessHTMLForceBody(t *testing.T) {
	rc := resolve(Configuration{AllowedTags: []string{"p"}, ForceBody: true})
	res := preprocessHTML("<p>hi</p>", rc)
	assert.True(t, res.forceBodyInserted)
	assert.True(t, strings.HasPrefix(res.input, forceBodySentinel))
}

func TestPreprocessHTMLCapturesLeadingWhitespace(t *testing.T) {
	rc := resolve(Configuration{AllowedTags: []string{"p"}})
	res := preprocessHTML("  \n<p>hi</p>", rc)
	assert.Equal(t, "  \n", res.leadingWhitespace)
	assert.False(t, res.forceBodyInserted)
}

func TestBreakoutRewriteSVGStyleImg(t *testing.T) {
	in := `<svg><style>*{}<img src=x onerror=alert(1)>`
	out := in
	for _, rw := range breakoutRewrites {
		out = rw.re.ReplaceAllString(out, rw.into)
	}
	assert.Contains(t, out, "</style></svg>")
}
