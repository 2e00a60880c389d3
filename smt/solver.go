package smt

import "context"

// Verdict is the three-valued outcome of a satisfiability check.
type Verdict int

const (
	Unsat Verdict = iota
	Sat
	Unknown
)

// Check decides satisfiability of f by converting it to DNF and testing
// each clause independently: f is satisfiable iff at least one clause is.
// ctx cancellation or deadline expiry between clauses yields Unknown
// rather than a possibly-wrong answer.
func Check(ctx context.Context, f Formula) Verdict {
	clauses := toDNF(toNNF(f))
	for _, cl := range clauses {
		select {
		case <-ctx.Done():
			return Unknown
		default:
		}
		if clauseSatisfiable(cl) {
			return Sat
		}
	}
	return Unsat
}

// clauseSatisfiable checks one conjunctive clause: its boolean literals
// must be self-consistent, and its difference atoms must not induce a
// negative cycle in the constraint graph.
func clauseSatisfiable(cl clause) bool {
	seen := make(map[string]bool)
	for _, lit := range cl.boolLits {
		if lit.IsConst {
			if !lit.ConstVal {
				return false
			}
			continue
		}
		key := lit.Name
		if prev, ok := seen[key]; ok {
			if prev != !lit.Negated {
				return false // the same variable asserted both true and false
			}
		}
		seen[key] = !lit.Negated
	}
	return !hasNegativeCycle(cl.diffAtoms)
}

// hasNegativeCycle runs a Bellman-Ford relaxation over the difference
// constraint graph: each atom U - V <= Bound becomes an edge V -> U of
// weight Bound (the standard shortest-paths encoding of a difference
// constraint system). A system of difference constraints is satisfiable
// iff its constraint graph has no negative-weight cycle.
func hasNegativeCycle(atoms []diffAtom) bool {
	if len(atoms) == 0 {
		return false
	}

	nodes := map[string]bool{zeroNode: true}
	type edge struct {
		from, to string
		weight   int64
	}
	edges := make([]edge, 0, len(atoms))
	for _, a := range atoms {
		nodes[a.U] = true
		nodes[a.V] = true
		edges = append(edges, edge{from: a.V, to: a.U, weight: a.Bound})
	}

	dist := make(map[string]int64, len(nodes))
	for n := range nodes {
		dist[n] = 0 // a virtual source with a zero-weight edge to every node
	}

	n := len(nodes)
	for i := 0; i < n-1; i++ {
		changed := false
		for _, e := range edges {
			if dist[e.from]+e.weight < dist[e.to] {
				dist[e.to] = dist[e.from] + e.weight
				changed = true
			}
		}
		if !changed {
			return false
		}
	}

	for _, e := range edges {
		if dist[e.from]+e.weight < dist[e.to] {
			return true
		}
	}
	return false
}
