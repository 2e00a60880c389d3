package condition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	buildctx "github.com/pathreach/analyzer/context"
	"github.com/pathreach/analyzer/model"
	"github.com/pathreach/analyzer/parse"
	"github.com/pathreach/analyzer/pathenum"
)

func TestBuildConditionListFreeVariables(t *testing.T) {
	prog, err := parse.Parse(`
function test(a: number) {
  const x = 5;
  if (a == x) { return 1; }
}`)
	require.NoError(t, err)
	root, _ := buildctx.Build(prog)
	paths := pathenum.Enumerate(root)
	require.Len(t, paths, 2) // true branch, then the bodiless false branch

	cl := BuildConditionList(paths[0])
	require.Len(t, cl, 2)
	assert.Equal(t, model.ConditionAssign, cl[0].Kind)
	assert.Equal(t, "x", cl[0].Variable)
	assert.Equal(t, model.ConditionBranch, cl[1].Kind)
	assert.True(t, cl[1].Polarity)

	free := cl.FreeVariables()
	assert.Contains(t, free, "a")
	assert.NotContains(t, free, "x") // locally assigned, not free
}
