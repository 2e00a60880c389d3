package smt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckSimpleSatisfiable(t *testing.T) {
	// a > b is satisfiable.
	f := Compare{Op: OpGT, Left: Var("a"), Right: Var("b")}
	assert.Equal(t, Sat, Check(context.Background(), f))
}

func TestCheckContradiction(t *testing.T) {
	// a > 0 && a < 0 is unsatisfiable.
	f := And{Args: []Formula{
		Compare{Op: OpGT, Left: Var("a"), Right: Const(0)},
		Compare{Op: OpLT, Left: Var("a"), Right: Const(0)},
	}}
	assert.Equal(t, Unsat, Check(context.Background(), f))
}

func TestCheckEqualityAndNegation(t *testing.T) {
	// a == 5 && a != 5 is unsatisfiable.
	f := And{Args: []Formula{
		Compare{Op: OpEQ, Left: Var("a"), Right: Const(5)},
		Compare{Op: OpNE, Left: Var("a"), Right: Const(5)},
	}}
	assert.Equal(t, Unsat, Check(context.Background(), f))
}

func TestCheckDisjunctionSatisfiableViaEitherClause(t *testing.T) {
	// (a > 0 && a < 0) || a == a: the second disjunct is trivially sat.
	f := Or{Args: []Formula{
		And{Args: []Formula{
			Compare{Op: OpGT, Left: Var("a"), Right: Const(0)},
			Compare{Op: OpLT, Left: Var("a"), Right: Const(0)},
		}},
		Compare{Op: OpEQ, Left: Var("a"), Right: Var("a")},
	}}
	assert.Equal(t, Sat, Check(context.Background(), f))
}

func TestCheckNegatedComparison(t *testing.T) {
	// !(a > b) with polarity false applied is a <= b, satisfiable alone.
	f := Not{Arg: Compare{Op: OpGT, Left: Var("a"), Right: Var("b")}}
	assert.Equal(t, Sat, Check(context.Background(), f))
}

func TestCheckBoolVarConsistency(t *testing.T) {
	f := And{Args: []Formula{BoolVar{Name: "flag"}, Not{Arg: BoolVar{Name: "flag"}}}}
	assert.Equal(t, Unsat, Check(context.Background(), f))
}

func TestCheckBoolConst(t *testing.T) {
	assert.Equal(t, Unsat, Check(context.Background(), BoolConst(false)))
	assert.Equal(t, Sat, Check(context.Background(), BoolConst(true)))
}

func TestCheckTransitiveChainUnsat(t *testing.T) {
	// a < b && b < c && c < a is unsatisfiable (a negative cycle).
	f := And{Args: []Formula{
		Compare{Op: OpLT, Left: Var("a"), Right: Var("b")},
		Compare{Op: OpLT, Left: Var("b"), Right: Var("c")},
		Compare{Op: OpLT, Left: Var("c"), Right: Var("a")},
	}}
	assert.Equal(t, Unsat, Check(context.Background(), f))
}
