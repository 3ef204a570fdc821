package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestState(c Configuration) *sanitizerState {
	return &sanitizerState{rc: resolve(c), hooks: newHookRegistry()}
}

func TestAttributeIsValidAllowedNonURIAttribute(t *testing.T) {
	s := newTestState(Configuration{AllowedTags: []string{"div"}, AllowedAttributes: []string{"class"}})
	n := newElement("div")
	ok := s.attributeIsValid(n, "class", "foo", "foo")
	assert.True(t, ok)
}

func TestAttributeIsValidRejectsJavascriptURI(t *testing.T) {
	s := newTestState(DefaultConfig())
	n := newElement("a")
	ok := s.attributeIsValid(n, "href", "javascript:alert(1)", "javascript:alert(1)")
	assert.False(t, ok)
}

func TestAttributeIsValidAcceptsHTTPURI(t *testing.T) {
	s := newTestState(DefaultConfig())
	n := newElement("a")
	ok := s.attributeIsValid(n, "href", "https://example.com", "https://example.com")
	assert.True(t, ok)
}

func TestAttributeIsValidRejectsClobberingID(t *testing.T) {
	s := newTestState(DefaultConfig())
	n := newElement("div")
	ok := s.attributeIsValid(n, "id", "body", "body")
	assert.False(t, ok)
}

func TestAttributeIsValidAllowsDataURIOnImg(t *testing.T) {
	s := newTestState(DefaultConfig())
	n := newElement("img")
	ok := s.attributeIsValid(n, "src", "data:image/png;base64,AAAA", "data:image/png;base64,AAAA")
	assert.True(t, ok)
}

func TestDecideAttributeDropsOnClick(t *testing.T) {
	s := newTestState(DefaultConfig())
	n := newElement("a")
	_, keep := s.decideAttribute(n, Attribute{Key: "onclick", Val: "alert(1)"})
	assert.False(t, keep)
}

func TestFilterAttributesDropsIsWhenCustomElementCheckFails(t *testing.T) {
	s := newTestState(Configuration{
		AllowedTags:       []string{"div"},
		AllowedAttributes: []string{"class"},
	})
	n := newElement("div")
	n.Attr = []Attribute{{Key: "is", Val: "my-thing"}}
	s.filterAttributes(n)
	assert.Len(t, n.Attr, 1)
	assert.Equal(t, "is", n.Attr[0].Key)
	assert.Equal(t, "", n.Attr[0].Val)
}

func TestIsCustomElementTag(t *testing.T) {
	rc := resolve(DefaultConfig())
	assert.True(t, isCustomElementTag("my-widget", rc))
	assert.False(t, isCustomElementTag("div", rc))
	assert.False(t, isCustomElementTag("annotation-xml", rc))
}

func TestTrimAttrWhitespace(t *testing.T) {
	assert.Equal(t, "x", trimAttrWhitespace("  x  "))
	assert.Equal(t, "a b", trimAttrWhitespace(" a b "))
}
