package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeHTMLNamespaceTransitions(t *testing.T) {
	assert.Equal(t, NamespaceHTML, computeHTMLNamespace(NamespaceHTML, "div", "p"))
	assert.Equal(t, NamespaceSVG, computeHTMLNamespace(NamespaceHTML, "div", "svg"))
	assert.Equal(t, NamespaceMathML, computeHTMLNamespace(NamespaceHTML, "div", "math"))
	assert.Equal(t, NamespaceSVG, computeHTMLNamespace(NamespaceSVG, "svg", "circle"))
	assert.Equal(t, NamespaceMathML, computeHTMLNamespace(NamespaceMathML, "math", "mrow"))
}

func TestComputeHTMLNamespaceMathMLIntegrationPoint(t *testing.T) {
	// <mi> is a MathML text integration point: an unrelated child tag
	// inside it is HTML, not MathML.
	assert.Equal(t, NamespaceHTML, computeHTMLNamespace(NamespaceMathML, "mi", "div"))
	assert.Equal(t, NamespaceSVG, computeHTMLNamespace(NamespaceMathML, "mi", "svg"))
}

func TestComputeHTMLNamespaceAnnotationXML(t *testing.T) {
	assert.Equal(t, NamespaceSVG, computeHTMLNamespace(NamespaceMathML, "annotation-xml", "svg"))
	assert.Equal(t, NamespaceMathML, computeHTMLNamespace(NamespaceMathML, "annotation-xml", "mrow"))
}

func TestIsHTMLIntegrationPoint(t *testing.T) {
	assert.True(t, isHTMLIntegrationPoint(NamespaceSVG, "foreignobject"))
	assert.True(t, isHTMLIntegrationPoint(NamespaceSVG, "annotation-xml"))
	assert.False(t, isHTMLIntegrationPoint(NamespaceSVG, "circle"))
	assert.False(t, isHTMLIntegrationPoint(NamespaceHTML, "foreignobject"))
}

func TestXMLNamespaceContextResolve(t *testing.T) {
	ctx := newXMLNamespaceContext(HTMLNamespaceURI)
	ctx.update([]Attribute{{Key: "xmlns:x", Val: SVGNamespaceURI}})
	assert.Equal(t, SVGNamespaceURI, ctx.resolve("x:svg"))
	assert.Equal(t, HTMLNamespaceURI, ctx.resolve("div"))
}

func TestXMLNamespaceContextCloneIsIndependent(t *testing.T) {
	ctx := newXMLNamespaceContext(HTMLNamespaceURI)
	clone := ctx.clone()
	clone.defaultNS = SVGNamespaceURI
	assert.Equal(t, HTMLNamespaceURI, ctx.defaultNS)
	assert.Equal(t, SVGNamespaceURI, clone.defaultNS)
}

func TestNamespaceFromURI(t *testing.T) {
	assert.Equal(t, NamespaceHTML, namespaceFromURI(HTMLNamespaceURI))
	assert.Equal(t, NamespaceSVG, namespaceFromURI(SVGNamespaceURI))
	assert.Equal(t, NamespaceMathML, namespaceFromURI(MathMLNamespaceURI))
	assert.Equal(t, NamespaceCustom, namespaceFromURI("urn:custom"))
}
