package surface

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const testPage = `<!DOCTYPE html>
<html><body>
<a id="wa" href="https://wa.me/000">chat</a>
<a id="call" href="tel:000">call</a>
<a id="home" href="/">home</a>
<div id="services-container"><p class="empty">Loading</p></div>
</body></html>`

func fragment(t *testing.T, markup string) []*html.Node {
	t.Helper()
	nodes, err := html.ParseFragment(strings.NewReader(markup), &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div})
	require.NoError(t, err)
	return nodes
}

func TestElementByID(t *testing.T) {
	doc, err := ParseString(testPage)
	require.NoError(t, err)

	assert.NotNil(t, doc.ElementByID("services-container"))
	assert.Nil(t, doc.ElementByID("missing"))
}

func TestReplaceChildren(t *testing.T) {
	doc, err := ParseString(testPage)
	require.NoError(t, err)

	ok := doc.ReplaceChildren("services-container", fragment(t, `<div>a</div><div>b</div>`))
	require.True(t, ok)

	inner, ok := doc.InnerHTML("services-container")
	require.True(t, ok)
	assert.Equal(t, "<div>a</div><div>b</div>", inner)

	ok = doc.ReplaceChildren("services-container", fragment(t, `<div>c</div>`))
	require.True(t, ok)
	inner, _ = doc.InnerHTML("services-container")
	assert.Equal(t, "<div>c</div>", inner)
}

func TestReplaceChildrenMissingContainer(t *testing.T) {
	doc, err := ParseString(`<html><body><p>nothing here</p></body></html>`)
	require.NoError(t, err)

	var before bytes.Buffer
	require.NoError(t, doc.Render(&before))

	assert.False(t, doc.ReplaceChildren("services-container", fragment(t, `<div>x</div>`)))

	var after bytes.Buffer
	require.NoError(t, doc.Render(&after))
	assert.Equal(t, before.String(), after.String())
}

func TestRewriteLinks(t *testing.T) {
	doc, err := ParseString(testPage)
	require.NoError(t, err)

	assert.Equal(t, 1, doc.RewriteLinks("wa.me", "https://wa.me/93700000000"))
	assert.Equal(t, 1, doc.RewriteLinks("tel:", "tel:0700000000"))
	assert.Equal(t, 0, doc.RewriteLinks("mailto:", "mailto:x@example.com"))

	assert.Equal(t, "https://wa.me/93700000000", attr(doc.ElementByID("wa"), "href"))
	assert.Equal(t, "tel:0700000000", attr(doc.ElementByID("call"), "href"))
	assert.Equal(t, "/", attr(doc.ElementByID("home"), "href"))
}
