package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEndToEndScenarios covers spec.md §8's end-to-end scenario table.
func TestEndToEndScenarios(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		config Configuration
		want   string
	}{
		{"strips event handler attribute", `<img src=x onerror=alert(1)>`, DefaultConfig(), `<img src="x">`},
		{"strips javascript uri", `<a href="javascript:alert(1)">x</a>`, DefaultConfig(), `<a>x</a>`},
		{"removes script element entirely", `<script>alert(1)</script>hello`, DefaultConfig(), `hello`},
		{"unwraps unknown tag", `<foobar>abc</foobar>`, Configuration{AllowedTags: []string{"#text"}, KeepContent: true}, `abc`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Sanitize(tc.input, tc.config)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestScenarioUnknownTagUnwrapsUnderDefaultConfig(t *testing.T) {
	got := Sanitize(`<foobar>abc</foobar>`)
	assert.Equal(t, "abc", got)
}

func TestScenarioTemplateExpressionStripped(t *testing.T) {
	got := Sanitize(`<div>{{v}}</div>`, Configuration{AllowedTags: []string{"div", "#text"}, SafeForTemplates: true})
	assert.Equal(t, "<div> </div>", got)
}

func TestScenarioHookForcesKeepAttr(t *testing.T) {
	RemoveAllHooks()
	defer RemoveAllHooks()

	AddHook(PhaseUponSanitizeAttribute, func(n *Node, ev *HookEvent) {
		if ev.AttrName == "onclick" {
			force := true
			ev.ForceKeepAttr = &force
		}
	})

	got := Sanitize(`<a onclick="alert(1)">x</a>`, Configuration{AllowedTags: []string{"a", "#text"}, AllowedAttributes: []string{}})
	assert.Equal(t, `<a onclick="alert(1)">x</a>`, got)
}

func TestScenarioShadowRootHooksInjectAttribute(t *testing.T) {
	RemoveAllHooks()
	defer RemoveAllHooks()

	AddHook(PhaseUponSanitizeShadowNode, func(n *Node, ev *HookEvent) {
		if n.Type == ElementNode && n.TagName() == "div" {
			n.Attr = append(n.Attr, Attribute{Key: "data-injected", Val: "1"})
		}
	})

	c := Configuration{
		AllowedTags:       []string{"template", "div", "#text"},
		AllowedAttributes: []string{"shadowroot", "data-injected"},
	}
	got := Sanitize(`<template shadowroot="open"><div></div></template>`, c)
	assert.Contains(t, got, `shadowroot="open"`)
	assert.Contains(t, got, `data-injected="1"`)
}

func TestRemovedCountScenarios(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{`<script>alert(1)</script><div>x</div>`, 1},
		{`<a href="javascript:alert(1)">x</a>`, 1},
		{`<!--boom-->`, 1},
	}
	for _, tc := range cases {
		r := SanitizeAndGetRemoved(tc.input)
		assert.Len(t, r.Removed, tc.want, "input %q", tc.input)
	}
}

func TestIdempotence(t *testing.T) {
	input := `<div class="x"><script>bad()</script><img src=y onerror=z()><b>ok</b></div>`
	once := Sanitize(input)
	twice := Sanitize(once)
	assert.Equal(t, once, twice)
}

func TestEmptyInputReturnsEmpty(t *testing.T) {
	assert.Equal(t, "", Sanitize(""))
}

func TestForceBodyNeverLeaksSentinel(t *testing.T) {
	got := Sanitize("<p>hi</p>", Configuration{AllowedTags: []string{"p", "#text"}, ForceBody: true})
	assert.NotContains(t, got, "remove")
	assert.Contains(t, got, "<p>hi</p>")
}

func TestLeadingWhitespacePreservedWhenForceBodyFalse(t *testing.T) {
	got := Sanitize("  <p>hi</p>", Configuration{AllowedTags: []string{"p", "#text"}})
	assert.Equal(t, "  <p>hi</p>", got)
}

func TestSanitizeToFragmentFirstChildTextValue(t *testing.T) {
	r := SanitizeToFragment("hello <b>world</b>", Configuration{AllowedTags: []string{"b", "#text"}})
	require.True(t, r.HasFirstChildValue)
	assert.Equal(t, "hello ", r.FirstChildNodeValue)
}

func TestSanitizeToDocumentSplitsHeadAndBody(t *testing.T) {
	doc := "<html><head><title>T</title></head><body><p>hi</p></body></html>"
	r := SanitizeToDocument(doc, Configuration{WholeDocument: true, AllowedTags: []string{"html", "head", "title", "body", "p", "#text"}})
	assert.Contains(t, r.HeadHTML, "<title>T</title>")
	assert.Contains(t, r.BodyHTML, "<p>hi</p>")
}

func TestSVGForeignContentNamespaceRules(t *testing.T) {
	c := Configuration{UseProfiles: []Profile{ProfileHTML, ProfileSVG}}
	got := Sanitize(`<div><svg><circle r="1"></circle></svg></div>`, c)
	assert.Contains(t, got, "<svg")
	assert.Contains(t, got, "<circle")
}

func TestHTMLInsideSVGWithoutIntegrationPointIsRemoved(t *testing.T) {
	c := Configuration{UseProfiles: []Profile{ProfileHTML, ProfileSVG}}
	got := Sanitize(`<svg><circle r="1"><div>bad</div></circle></svg>`, c)
	assert.NotContains(t, got, "<div>")
}
