package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathreach/analyzer/model"
)

func TestParseSimpleIfElse(t *testing.T) {
	src := `
function test(a: number, b: number) {
  if (a > b) { return 1; } else { return 2; }
}`
	prog, err := Parse(src)
	require.NoError(t, err)
	require.NotNil(t, prog)
	assert.Equal(t, "test", prog.FunctionName)
	require.Len(t, prog.Params, 2)
	assert.Equal(t, model.TypeInt, prog.Params[0].Type)
	require.NotNil(t, prog.Body)
	require.Len(t, prog.Body.Children, 1)
	assert.Equal(t, model.KindIfStatement, prog.Body.Children[0].Kind)
}

func TestParseNestedIf(t *testing.T) {
	src := `
function test(a: number) {
  if (a > 0) { if (a < 0) { return 1; } }
}`
	prog, err := Parse(src)
	require.NoError(t, err)
	ifStmt := prog.Body.Children[0]
	then := ifStmt.Child(1)
	require.Len(t, then.Children, 1)
	assert.Equal(t, model.KindIfStatement, then.Children[0].Kind)
}

func TestParseConstAndAssignment(t *testing.T) {
	src := `
function test(a: number) {
  const x = 5;
  if (a == x) { if (a != 5) { return 1; } }
}`
	prog, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, prog.Body.Children, 2)
	assert.Equal(t, model.KindFirstStatement, prog.Body.Children[0].Kind)
	assert.Equal(t, model.KindIfStatement, prog.Body.Children[1].Kind)
}

func TestParseRejectsFloatingPointLiteral(t *testing.T) {
	src := `
function test(a: number) {
  const x = 1.5;
  return a;
}`
	_, err := Parse(src)
	require.Error(t, err)
	var precheck *model.PrecheckFailedError
	require.ErrorAs(t, err, &precheck)
}

func TestParseRejectsUnsupportedType(t *testing.T) {
	src := `function test(a: string) { return a; }`
	_, err := Parse(src)
	require.Error(t, err)
}

func TestParseRejectsTernary(t *testing.T) {
	src := `
function test(a: number) {
  const x = a > 0 ? 1 : 2;
  return x;
}`
	_, err := Parse(src)
	require.Error(t, err)
}

func TestParseAcceptsBitwiseAndShiftOperators(t *testing.T) {
	// Per §4.F/S5, an unsupported operator is a non-fatal Condition
	// Evaluator concern, not a Source Validator rejection: it must parse.
	for _, op := range []string{"&", "|", "^", "<<", ">>"} {
		src := `
function test(a: number) {
  if (a ` + op + ` 1) { return 1; }
}`
		prog, err := Parse(src)
		require.NoError(t, err, "operator %q", op)
		ifStmt := prog.Body.Children[0]
		cond := ifStmt.Child(0)
		require.Equal(t, model.KindBinaryExpression, cond.Kind)
		assert.Equal(t, op, cond.Operator)
	}
}

func TestParseRejectsLoop(t *testing.T) {
	src := `
function test(a: number) {
  while (a > 0) { a = a - 1; }
  return a;
}`
	_, err := Parse(src)
	require.Error(t, err)
}

func TestParseRejectsCallInsideExpression(t *testing.T) {
	src := `
function test(a: number) {
  const x = helper(a);
  return x;
}`
	_, err := Parse(src)
	require.Error(t, err)
}

func TestParseEmptyFunctionBody(t *testing.T) {
	src := `function test(a: number) { }`
	prog, err := Parse(src)
	require.NoError(t, err)
	assert.Empty(t, prog.Body.Children)
}

func TestParseBooleanParameter(t *testing.T) {
	src := `
function test(flag: boolean) {
  if (flag) { return 1; }
}`
	prog, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, prog.Params, 1)
	assert.Equal(t, model.TypeBool, prog.Params[0].Type)
}

func TestParseClassArrowMethod(t *testing.T) {
	src := `
class Checker {
  run = (a: number): number => {
    if (a > 0) { return 1; } else { return 0; }
  };
}`
	prog, err := Parse(src)
	require.NoError(t, err)
	assert.Equal(t, "Checker.run", prog.FunctionName)
	require.Len(t, prog.Params, 1)
	require.NotNil(t, prog.Body)
}
