package context

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathreach/analyzer/model"
	"github.com/pathreach/analyzer/parse"
)

func TestBuildSimpleIfElse(t *testing.T) {
	prog, err := parse.Parse(`
function test(a: number, b: number) {
  if (a > b) { return 1; } else { return 2; }
}`)
	require.NoError(t, err)

	root, warnings := Build(prog)
	assert.Empty(t, warnings)
	assert.Equal(t, model.TypeInt, root.Symbols["a"])
	assert.Equal(t, model.TypeInt, root.Symbols["b"])
	require.Len(t, root.Children, 1)

	cond := root.Children[0]
	assert.Equal(t, model.ContextConditionalKind, cond.Kind)
	assert.Empty(t, cond.Then)
	assert.Empty(t, cond.Else)
}

func TestBuildNestedIfNoElse(t *testing.T) {
	prog, err := parse.Parse(`
function test(a: number) {
  if (a > 0) { if (a < 0) { return 1; } }
}`)
	require.NoError(t, err)

	root, _ := Build(prog)
	require.Len(t, root.Children, 1)
	outer := root.Children[0]
	require.Len(t, outer.Then, 1)
	inner := outer.Then[0]
	assert.Equal(t, model.ContextConditionalKind, inner.Kind)
	assert.Empty(t, inner.Then)
	assert.Empty(t, inner.Else)
	assert.Empty(t, outer.Else)
}

func TestBuildAssignmentChain(t *testing.T) {
	prog, err := parse.Parse(`
function test(a: number) {
  const x = 5;
  if (a == x) { return 1; }
}`)
	require.NoError(t, err)

	root, _ := Build(prog)
	require.Len(t, root.Children, 1)
	assign := root.Children[0]
	assert.Equal(t, model.ContextAssignmentKind, assign.Kind)
	assert.Equal(t, "x", assign.Variable)
	require.Len(t, assign.Children, 1)
	assert.Equal(t, model.ContextConditionalKind, assign.Children[0].Kind)
}

func TestBuildEmptyBody(t *testing.T) {
	prog, err := parse.Parse(`function test(a: number) { }`)
	require.NoError(t, err)

	root, _ := Build(prog)
	assert.True(t, root.IsLinearLeaf())
}
