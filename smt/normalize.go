package smt

// diffAtom is a primitive difference-logic literal: value(U) - value(V) <= Bound.
// One of U, V may be the synthetic "ZERO" node standing in for a bare
// constant; see solver.go for how that node is used in the graph.
type diffAtom struct {
	U, V  string
	Bound int64
}

const zeroNode = "ZERO"

func termNode(t Term) string {
	if t.IsConst {
		return zeroNode
	}
	return t.Name
}

func termOffset(t Term) int64 {
	if t.IsConst {
		return t.Value
	}
	return 0
}

// boolLit is a primitive boolean literal: a named free variable, possibly
// negated, or a resolved constant.
type boolLit struct {
	Name     string
	Negated  bool
	IsConst  bool
	ConstVal bool
}

// nnf is a formula in negation normal form: only And/Or/diffAtom/boolLit
// remain; Not has been pushed down to the leaves.
type nnf interface{ isNNF() }

type nnfAnd struct{ Args []nnf }

func (nnfAnd) isNNF() {}

type nnfOr struct{ Args []nnf }

func (nnfOr) isNNF() {}

type nnfDiff struct{ Atom diffAtom }

func (nnfDiff) isNNF() {}

type nnfBool struct{ Lit boolLit }

func (nnfBool) isNNF() {}

// toNNF lowers a Formula to negation-normal form, translating each
// comparison operator into one or two primitive difference atoms (`==`
// becomes a conjunction of two `<=` atoms, `!=` a disjunction of two
// strict atoms) and pushing negation down via De Morgan's laws.
func toNNF(f Formula) nnf {
	return nnfOf(f, false)
}

func nnfOf(f Formula, negate bool) nnf {
	switch v := f.(type) {
	case BoolConst:
		b := bool(v)
		if negate {
			b = !b
		}
		return nnfBool{Lit: boolLit{IsConst: true, ConstVal: b}}
	case BoolVar:
		return nnfBool{Lit: boolLit{Name: v.Name, Negated: negate}}
	case Not:
		return nnfOf(v.Arg, !negate)
	case And:
		args := make([]nnf, len(v.Args))
		for i, a := range v.Args {
			args[i] = nnfOf(a, negate)
		}
		if negate {
			return nnfOr{Args: args}
		}
		return nnfAnd{Args: args}
	case Or:
		args := make([]nnf, len(v.Args))
		for i, a := range v.Args {
			args[i] = nnfOf(a, negate)
		}
		if negate {
			return nnfAnd{Args: args}
		}
		return nnfOr{Args: args}
	case Compare:
		return compareToNNF(v, negate)
	default:
		return nnfBool{Lit: boolLit{IsConst: true, ConstVal: true}}
	}
}

// compareToNNF expands one comparison into its difference-atom form (or
// the negation's form, directly, rather than negating afterward).
func compareToNNF(c Compare, negate bool) nnf {
	op := c.Op
	if negate {
		op = negateOp(op)
	}
	u, v := termNode(c.Left), termNode(c.Right)
	uoff, voff := termOffset(c.Left), termOffset(c.Right)

	atom := func(a, b string, aoff, boff, bound int64) diffAtom {
		// a - b <= bound, adjusted for any constant offsets folded into
		// the ZERO node.
		return diffAtom{U: a, V: b, Bound: bound - aoff + boff}
	}

	switch op {
	case OpLT: // u < v  =>  u - v <= -1
		return nnfDiff{Atom: atom(u, v, uoff, voff, -1)}
	case OpLE: // u - v <= 0
		return nnfDiff{Atom: atom(u, v, uoff, voff, 0)}
	case OpGT: // u > v  =>  v - u <= -1
		return nnfDiff{Atom: atom(v, u, voff, uoff, -1)}
	case OpGE: // v - u <= 0
		return nnfDiff{Atom: atom(v, u, voff, uoff, 0)}
	case OpEQ: // u - v <= 0 AND v - u <= 0
		return nnfAnd{Args: []nnf{
			nnfDiff{Atom: atom(u, v, uoff, voff, 0)},
			nnfDiff{Atom: atom(v, u, voff, uoff, 0)},
		}}
	case OpNE: // u - v <= -1 OR v - u <= -1
		return nnfOr{Args: []nnf{
			nnfDiff{Atom: atom(u, v, uoff, voff, -1)},
			nnfDiff{Atom: atom(v, u, voff, uoff, -1)},
		}}
	default:
		return nnfBool{Lit: boolLit{IsConst: true, ConstVal: true}}
	}
}

func negateOp(op CompareOp) CompareOp {
	switch op {
	case OpLT:
		return OpGE
	case OpLE:
		return OpGT
	case OpGT:
		return OpLE
	case OpGE:
		return OpLT
	case OpEQ:
		return OpNE
	case OpNE:
		return OpEQ
	default:
		return op
	}
}

// clause is one DNF disjunct: a conjunction of primitive literals.
type clause struct {
	diffAtoms []diffAtom
	boolLits  []boolLit
}

// toDNF expands an NNF formula into its disjunctive normal form, as a
// list of clauses. Each And distributes over the Or subtrees of its
// arguments; this is exponential in the worst case, which is acceptable
// here since a single function's branch predicates are small.
func toDNF(f nnf) []clause {
	switch v := f.(type) {
	case nnfDiff:
		return []clause{{diffAtoms: []diffAtom{v.Atom}}}
	case nnfBool:
		return []clause{{boolLits: []boolLit{v.Lit}}}
	case nnfOr:
		var out []clause
		for _, a := range v.Args {
			out = append(out, toDNF(a)...)
		}
		return out
	case nnfAnd:
		clauses := []clause{{}}
		for _, a := range v.Args {
			sub := toDNF(a)
			var next []clause
			for _, c1 := range clauses {
				for _, c2 := range sub {
					next = append(next, mergeClause(c1, c2))
				}
			}
			clauses = next
		}
		return clauses
	default:
		return []clause{{boolLits: []boolLit{{IsConst: true, ConstVal: true}}}}
	}
}

func mergeClause(a, b clause) clause {
	out := clause{
		diffAtoms: append(append([]diffAtom{}, a.diffAtoms...), b.diffAtoms...),
		boolLits:  append(append([]boolLit{}, a.boolLits...), b.boolLits...),
	}
	return out
}
