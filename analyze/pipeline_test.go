package analyze

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathreach/analyzer/model"
)

func TestRunS1BothBranchesSatisfiable(t *testing.T) {
	resp, err := Run(context.Background(), Request{SourceText: `
function test(a: number, b: number) {
  if (a > b) { return 1; } else { return 2; }
}`})
	require.NoError(t, err)
	assert.Empty(t, resp.Notes)
}

func TestRunS2InnerIfUnreachable(t *testing.T) {
	resp, err := Run(context.Background(), Request{SourceText: `
function test(a: number) {
  if (a > 0) { if (a < 0) { return 1; } }
}`})
	require.NoError(t, err)
	require.Len(t, resp.Notes, 1)
	assert.False(t, resp.Notes[0].Reachable)
	assert.Equal(t, 3, resp.Notes[0].StartLine)
}

func TestRunS3UnreachableViaConstSubstitution(t *testing.T) {
	resp, err := Run(context.Background(), Request{SourceText: `
function test(a: number) {
  const x = 5;
  if (a == x) { if (a != 5) { return 1; } }
}`})
	require.NoError(t, err)
	require.Len(t, resp.Notes, 1)
	assert.False(t, resp.Notes[0].Reachable)
}

func TestRunS5UnsupportedBitwiseOperatorTreatedAsTrue(t *testing.T) {
	// A bitwise predicate must not fail the Source Validator: per §4.F,
	// it parses and the Condition Evaluator falls through to its
	// permissive treated-as-true path with a warning instead of a
	// PrecheckFailedError.
	resp, err := Run(context.Background(), Request{
		SourceText: `
function test(a: number) {
  if (a & 1) { return 1; }
}`,
		Warnings: true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Warnings)
}

func TestRunPrecheckFailedOnLoop(t *testing.T) {
	_, err := Run(context.Background(), Request{SourceText: `
function test(a: number) {
  while (a > 0) { a = a; }
  return a;
}`})
	require.Error(t, err)
	var precheck *model.PrecheckFailedError
	assert.ErrorAs(t, err, &precheck)
}

func TestRunUnknownSymbol(t *testing.T) {
	_, err := Run(context.Background(), Request{SourceText: `
function test(a: number) {
  if (a > b) { return 1; }
}`})
	require.Error(t, err)
	var unknown *model.UnknownSymbolError
	assert.ErrorAs(t, err, &unknown)
}

func TestRunEmptyFunctionBodyYieldsNoNotes(t *testing.T) {
	resp, err := Run(context.Background(), Request{SourceText: `function test(a: number) { }`})
	require.NoError(t, err)
	assert.Empty(t, resp.Notes)
}

func TestRunDeterministic(t *testing.T) {
	src := `
function test(a: number) {
  if (a > 0) { if (a < 0) { return 1; } }
}`
	r1, err := Run(context.Background(), Request{SourceText: src})
	require.NoError(t, err)
	r2, err := Run(context.Background(), Request{SourceText: src})
	require.NoError(t, err)
	assert.Equal(t, r1.Notes, r2.Notes)
}

func TestRunWithWarningsAndTrace(t *testing.T) {
	resp, err := Run(context.Background(), Request{
		SourceText: `
function test(a: number) {
  if (a > 0) { return 1; }
}`,
		Warnings: true,
		Logging:  true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Trace)
}
