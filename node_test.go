package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeAppendAndRemoveChild(t *testing.T) {
	parent := newElement("div")
	a := newElement("span")
	b := newElement("b")

	parent.AppendChild(a)
	parent.AppendChild(b)

	require.Equal(t, a, parent.FirstChild)
	require.Equal(t, b, parent.LastChild)
	require.Equal(t, b, a.NextSibling)
	require.Equal(t, a, b.PrevSibling)

	parent.RemoveChild(a)
	assert.Nil(t, a.Parent)
	assert.Nil(t, a.NextSibling)
	assert.Equal(t, b, parent.FirstChild)
	assert.Equal(t, b, parent.LastChild)
}

func TestNodeInsertBefore(t *testing.T) {
	parent := newElement("div")
	a := newElement("a")
	c := newElement("c")
	parent.AppendChild(a)
	parent.AppendChild(c)

	b := newElement("b")
	parent.InsertBefore(b, c)

	var order []string
	for n := parent.FirstChild; n != nil; n = n.NextSibling {
		order = append(order, n.TagName())
	}
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestReparentChildren(t *testing.T) {
	src := newElement("src")
	dst := newElement("dst")
	src.AppendChild(newElement("x"))
	src.AppendChild(newElement("y"))

	reparentChildren(dst, src)

	assert.Nil(t, src.FirstChild)
	var names []string
	for n := dst.FirstChild; n != nil; n = n.NextSibling {
		names = append(names, n.TagName())
	}
	assert.Equal(t, []string{"x", "y"}, names)
}

func TestDeepClone(t *testing.T) {
	root := newElement("div")
	root.Attr = []Attribute{{Key: "class", Val: "x"}}
	child := newElement("span")
	root.AppendChild(child)

	clone := deepClone(root)

	require.NotSame(t, root, clone)
	assert.Equal(t, "div", clone.TagName())
	assert.Equal(t, "x", clone.Attr[0].Val)
	require.NotNil(t, clone.FirstChild)
	assert.Equal(t, "span", clone.FirstChild.TagName())
	assert.Nil(t, clone.Parent)

	// Mutating the clone must not affect the original.
	clone.Attr[0].Val = "y"
	assert.Equal(t, "x", root.Attr[0].Val)
}

func TestTextContent(t *testing.T) {
	root := newElement("div")
	root.AppendChild(&Node{Type: TextNode, Data: "hello "})
	span := newElement("span")
	span.AppendChild(&Node{Type: TextNode, Data: "world"})
	root.AppendChild(span)

	assert.Equal(t, "hello world", textContent(root))
}

func TestHasElementChild(t *testing.T) {
	root := newElement("div")
	assert.False(t, hasElementChild(root))
	root.AppendChild(&Node{Type: TextNode, Data: "x"})
	assert.False(t, hasElementChild(root))
	root.AppendChild(newElement("span"))
	assert.True(t, hasElementChild(root))
}
