package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sigkit/pkg/render"
)

func layoutTree(t *testing.T, root *render.Node, width float64) *box {
	t.Helper()
	e := &engine{fonts: newFaces()}
	b, err := e.build(root, render.Compute(root, nil))
	require.NoError(t, err)
	require.NotNil(t, b)
	e.place(b, 0, 0, width, fitFill)
	return b
}

func TestLayout_BlockPadding(t *testing.T) {
	t.Parallel()

	b := layoutTree(t, render.Div("p-4", render.Div("h-4"), render.Div("h-4")), 200)
	assert.Equal(t, 200.0, b.w)
	assert.Equal(t, 64.0, b.h)
	require.Len(t, b.kids, 2)
	assert.Equal(t, 16.0, b.kids[0].x)
	assert.Equal(t, 168.0, b.kids[0].w)
	assert.Equal(t, 32.0, b.kids[1].y)
}

func TestLayout_FlexRow(t *testing.T) {
	t.Parallel()

	b := layoutTree(t, render.Div("flex items-center gap-2",
		render.Div("w-3 h-3"),
		render.Div("w-3 h-3"),
		render.Div("flex-1 h-4"),
	), 100)
	require.Len(t, b.kids, 3)
	assert.Equal(t, 0.0, b.kids[0].x)
	assert.Equal(t, 20.0, b.kids[1].x)
	assert.Equal(t, 40.0, b.kids[2].x)
	assert.Equal(t, 60.0, b.kids[2].w)
	assert.Equal(t, 16.0, b.h)
	assert.Equal(t, 2.0, b.kids[0].y)
}

func TestLayout_FlexSpaceBetween(t *testing.T) {
	t.Parallel()

	b := layoutTree(t, render.Div("flex justify-between", render.Div("w-4 h-4"), render.Div("w-4 h-4")), 100)
	assert.Equal(t, 84.0, b.kids[1].x)
}

func TestLayout_Grid(t *testing.T) {
	t.Parallel()

	b := layoutTree(t, render.Div("grid grid-cols-2 gap-3",
		render.Div("h-4"), render.Div("h-4"), render.Div("h-4"),
	), 100)
	require.Len(t, b.kids, 3)
	assert.Equal(t, 44.0, b.kids[0].w)
	assert.Equal(t, 56.0, b.kids[1].x)
	assert.Equal(t, 28.0, b.kids[2].y)
	assert.Equal(t, 44.0, b.h)
}

func TestLayout_Absolute(t *testing.T) {
	t.Parallel()

	b := layoutTree(t, render.Div("relative w-24 h-24",
		render.Div("absolute w-4 h-4").Css("right", "-8px", "top", "-8px"),
		render.Div("h-4"),
	), 200)
	assert.Equal(t, 96.0, b.w)
	abs := b.kids[0]
	assert.Equal(t, 88.0, abs.x)
	assert.Equal(t, -8.0, abs.y)
	assert.Equal(t, 0.0, b.kids[1].y)
}

func TestLayout_InlineWraps(t *testing.T) {
	t.Parallel()

	b := layoutTree(t, render.Div("", render.Text("alpha beta gamma")), 10)
	assert.Equal(t, kindInline, b.kind)
	assert.Len(t, b.lines, 3)
	assert.Equal(t, 72.0, b.h)

	wide := layoutTree(t, render.Div("", render.Text("alpha beta gamma")), 1000)
	require.Len(t, wide.lines, 1)
	assert.Len(t, wide.lines[0].frags, 1)
	assert.Equal(t, "alpha beta gamma", wide.lines[0].frags[0].text)
}

func TestLayout_MixedContentGetsAnonymousBlocks(t *testing.T) {
	t.Parallel()

	b := layoutTree(t, render.Div("",
		render.Text("before"),
		render.Div("h-4"),
		render.Span("", render.Text("after")),
	), 300)
	assert.Equal(t, kindBlock, b.kind)
	require.Len(t, b.kids, 3)
	assert.Equal(t, kindInline, b.kids[0].kind)
	assert.Nil(t, b.kids[0].node)
	assert.Equal(t, 24.0, b.kids[1].y)
	assert.Equal(t, 64.0, b.h)
}

func TestLayout_HiddenElementsAreSkipped(t *testing.T) {
	t.Parallel()

	b := layoutTree(t, render.Div("", render.Div("hidden h-4"), render.Div("h-4")), 100)
	require.Len(t, b.kids, 1)
	assert.Equal(t, 16.0, b.h)
}

func TestPrintable(t *testing.T) {
	t.Parallel()

	root := render.Div("font-roboto-mono", render.Text("x"))
	cs := render.Compute(root, nil)[root]
	f := newFaces()
	assert.Equal(t, "> ~", f.printable(cs, "➜ ~"))
	assert.Equal(t, "mono", variant(cs))
}
