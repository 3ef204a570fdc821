package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecideElementRemovesDisallowedTagListedInForbidContents(t *testing.T) {
	s := newTestState(Configuration{AllowedTags: []string{"div"}, ForbidContents: []string{"script"}, KeepContent: true})
	n := newElement("script")
	assignRootNamespace(n)
	d := s.decideElement(n)
	assert.Equal(t, decisionRemove, d)
}

func TestDecideElementUnwrapsUnknownTagWhenKeepContent(t *testing.T) {
	s := newTestState(Configuration{AllowedTags: []string{"div"}, KeepContent: true})
	n := newElement("foobar")
	assignRootNamespace(n)
	d := s.decideElement(n)
	assert.Equal(t, decisionUnwrap, d)
}

func TestDecideElementKeepsAllowedTag(t *testing.T) {
	s := newTestState(Configuration{AllowedTags: []string{"div"}})
	n := newElement("div")
	assignRootNamespace(n)
	d := s.decideElement(n)
	assert.Equal(t, decisionKeep, d)
}

func TestVisitElementUnwrapSplicesChildrenInPlace(t *testing.T) {
	s := newTestState(Configuration{AllowedTags: []string{"div", "b"}, KeepContent: true})

	root := &Node{Type: DocumentNode}
	div := newElement("div")
	root.AppendChild(div)

	before := &Node{Type: TextNode, Data: "before"}
	unwrapMe := newElement("foobar")
	inner := &Node{Type: TextNode, Data: "inner"}
	unwrapMe.AppendChild(inner)
	after := &Node{Type: TextNode, Data: "after"}

	div.AppendChild(before)
	div.AppendChild(unwrapMe)
	div.AppendChild(after)

	s.sanitizeTree(root, false)

	var texts []string
	for c := div.FirstChild; c != nil; c = c.NextSibling {
		require.Equal(t, TextNode, c.Type)
		texts = append(texts, c.Data)
	}
	assert.Equal(t, []string{"before", "inner", "after"}, texts)
	require.Len(t, s.removed, 1)
	assert.Equal(t, "foobar", s.removed[0].NodeName)
}

func TestVisitElementRemovesScript(t *testing.T) {
	s := newTestState(DefaultConfig())
	root := &Node{Type: DocumentNode}
	script := newElement("script")
	script.AppendChild(&Node{Type: DataNode, Data: "alert(1)"})
	root.AppendChild(script)
	div := newElement("div")
	root.AppendChild(div)

	s.sanitizeTree(root, false)

	assert.Equal(t, div, root.FirstChild)
	assert.Equal(t, div, root.LastChild)
	require.Len(t, s.removed, 1)
	assert.Equal(t, "script", s.removed[0].NodeName)
}

func TestVisitRemovesComment(t *testing.T) {
	s := newTestState(DefaultConfig())
	root := &Node{Type: DocumentNode}
	root.AppendChild(&Node{Type: CommentNode, Data: "boom"})

	s.sanitizeTree(root, false)

	assert.Nil(t, root.FirstChild)
	require.Len(t, s.removed, 1)
	assert.Equal(t, "#comment", s.removed[0].NodeName)
}

func TestMergeAdjacentText(t *testing.T) {
	root := newElement("div")
	root.AppendChild(&Node{Type: TextNode, Data: "a"})
	root.AppendChild(&Node{Type: TextNode, Data: "b"})
	mergeAdjacentText(root)

	assert.Equal(t, "ab", root.FirstChild.Data)
	assert.Nil(t, root.FirstChild.NextSibling)
}

// assignRootNamespace gives n an HTML namespace as if it were visited at
// the top level, since decideElement's namespace-validity check (step 4)
// assumes NodeNamespace has already been assigned by the traversal.
func assignRootNamespace(n *Node) {
	n.NodeNamespace = NamespaceHTML
	n.NamespaceURI = HTMLNamespaceURI
}
