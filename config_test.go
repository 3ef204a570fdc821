package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigResolution(t *testing.T) {
	rc := resolve(DefaultConfig())
	assert.True(t, rc.allowedTags["div"])
	assert.True(t, rc.allowedTags["#text"])
	assert.False(t, rc.allowedTags["script"])
	assert.NotNil(t, rc.allowedURIRegExp)
}

func TestResolveAddTagsAndAttributes(t *testing.T) {
	c := Configuration{
		AllowedTags:       []string{"div", "span"},
		AllowedAttributes: []string{"class"},
		AddTags:           []string{"custom-widget"},
		AddAttributes:     []string{"data-foo"},
	}
	rc := resolve(c)
	assert.True(t, rc.allowedTags["div"])
	assert.True(t, rc.allowedTags["custom-widget"])
	assert.True(t, rc.allowedAttributes["class"])
	assert.True(t, rc.allowedAttributes["data-foo"])
	assert.False(t, rc.allowedTags["script"])
}

func TestResolveTableImpliesTbody(t *testing.T) {
	c := Configuration{AllowedTags: []string{"table"}, ForbidTags: []string{"tbody"}}
	rc := resolve(c)
	assert.True(t, rc.allowedTags["tbody"])
	assert.False(t, rc.forbidTags["tbody"])
}

func TestResolveWholeDocumentImpliesHtmlHeadBody(t *testing.T) {
	c := Configuration{WholeDocument: true}
	rc := resolve(c)
	assert.True(t, rc.allowedTags["html"])
	assert.True(t, rc.allowedTags["head"])
	assert.True(t, rc.allowedTags["body"])
}

func TestResolveProfileSVG(t *testing.T) {
	c := Configuration{UseProfiles: []Profile{ProfileSVG}}
	rc := resolve(c)
	assert.True(t, rc.allowedTags["svg"])
	assert.True(t, rc.allowedTags["circle"])
	assert.True(t, rc.allowedAttributes["xlink:href"])
	assert.False(t, rc.allowedTags["div"])
}

func TestCompileOrDisableInvalidRegexDisablesCheck(t *testing.T) {
	re := compileOrDisable("(unterminated")
	assert.Nil(t, re)

	c := Configuration{AllowedTags: []string{"a"}, AllowedURIRegExp: "(unterminated"}
	rc := resolve(c)
	require.Nil(t, rc.allowedURIRegExp)
	s := &sanitizerState{rc: rc, hooks: newHookRegistry()}
	assert.False(t, s.attributeIsValid(newElement("a"), "href", "https://example.com", "https://example.com"))
}

func TestResolveCustomElementHandling(t *testing.T) {
	c := Configuration{
		AllowedTags: []string{"div"},
		CustomElementHandling: &CustomElementHandling{
			TagNameCheck: `^my-`,
		},
	}
	rc := resolve(c)
	require.NotNil(t, rc.customElementHandling)
	require.NotNil(t, rc.customElementHandling.tagNameCheck)
	assert.True(t, rc.customElementHandling.tagNameCheck.MatchString("my-widget"))
}

func TestDefaultConfigCustomizationIsHonored(t *testing.T) {
	c := DefaultConfig()
	c.AddTags = append(c.AddTags, "x-widget")
	c.SafeForXML = false
	rc := resolve(c)
	assert.True(t, rc.allowedTags["x-widget"])
	assert.True(t, rc.allowedTags["div"])
	assert.False(t, rc.safeForXML)
}

func TestResolveExplicitEmptyAllowedAttributesIsHonored(t *testing.T) {
	c := Configuration{AllowedTags: []string{"div"}, AllowedAttributes: []string{}}
	rc := resolve(c)
	assert.False(t, rc.allowedAttributes["class"])
	assert.Empty(t, rc.allowedAttributes)
}

func TestToLowerASCII(t *testing.T) {
	assert.Equal(t, "abc", toLowerASCII("ABC"))
	assert.Equal(t, "abc", toLowerASCII("abc"))
	assert.Equal(t, "a-b_c", toLowerASCII("A-B_C"))
}
