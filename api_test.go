package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecursiveMutexReentrant(t *testing.T) {
	var m recursiveMutex
	m.Lock()
	// A second Lock from the same goroutine must not deadlock.
	m.Lock()
	m.Unlock()
	m.Unlock()
}

func TestAddHookAndRemoveHook(t *testing.T) {
	RemoveAllHooks()
	defer RemoveAllHooks()

	called := false
	h := AddHook(PhaseUponSanitizeElement, func(n *Node, ev *HookEvent) {
		called = true
	})
	require.NotNil(t, h)

	Sanitize("<div>x</div>")
	assert.True(t, called)

	removed := RemoveHookHandle(PhaseUponSanitizeElement, h)
	assert.Equal(t, h, removed)

	called = false
	Sanitize("<div>x</div>")
	assert.False(t, called)
}

func TestSetConfigAndClearConfig(t *testing.T) {
	defer ClearConfig()

	SetConfig(Configuration{AllowedTags: []string{"b"}, KeepContent: true})
	out := Sanitize("<div>x</div><b>y</b>")
	assert.Equal(t, "x<b>y</b>", out)

	ClearConfig()
	out = Sanitize("<div>x</div>")
	assert.Equal(t, "<div>x</div>", out)
}

func TestSanitizeInPlaceReturnsForbiddenRootNode(t *testing.T) {
	root := newElement("script")
	_, err := SanitizeInPlace(root, DefaultConfig())
	require.Error(t, err)
	var frn *ForbiddenRootNode
	assert.ErrorAs(t, err, &frn)
}

func TestSanitizeInPlaceKeepsAllowedRoot(t *testing.T) {
	root := newElement("div")
	root.Attr = []Attribute{{Key: "onclick", Val: "alert(1)"}, {Key: "class", Val: "x"}}
	out, err := SanitizeInPlace(root, DefaultConfig())
	require.NoError(t, err)
	assert.Same(t, root, out)
	assert.Len(t, out.Attr, 1)
	assert.Equal(t, "class", out.Attr[0].Key)
}

func TestSanitizeDoesNotMutateCallerNode(t *testing.T) {
	n := newElement("div")
	n.AppendChild(&Node{Type: ElementNode, Data: "script", DataAtom: 0})
	_ = Sanitize(n)
	// The caller's own tree is untouched: it still has its original child.
	require.NotNil(t, n.FirstChild)
	assert.Equal(t, "script", n.FirstChild.TagName())
}
