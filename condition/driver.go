package condition

import (
	"context"
	"fmt"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/pathreach/analyzer/model"
	"github.com/pathreach/analyzer/smt"
)

// Driver is the SMT Driver (spec component G): for each ConditionList it
// declares symbols from the Root's type table, threads assignments
// through as SSA-at-usage substitutions, conjoins the path's branch
// predicates, and asks the solver for a verdict.
type Driver struct {
	cache *lru.Cache[string, smt.Verdict]
}

// NewDriver builds a Driver with a verdict cache of the given size,
// keyed on the structural hash of a ConditionList's conjunction so that
// two paths with an identical constraint shape (independent of source
// line numbers) are solved once.
func NewDriver(cacheSize int) *Driver {
	c, _ := lru.New[string, smt.Verdict](cacheSize)
	return &Driver{cache: c}
}

// PathOutcome is the Driver's per-path result: the note to emit (nil when
// the path is reachable and no note is surfaced) plus any non-fatal
// warnings collected while evaluating it.
type PathOutcome struct {
	Note     *model.PathNote
	Warnings []string
}

// Drive evaluates one path's ConditionList against the Root symbol
// table and returns its outcome, or a fatal error (UnknownSymbol,
// UnsupportedType, or a wrapped SolverError).
func (d *Driver) Drive(ctx context.Context, types map[string]model.SymbolType, cl model.ConditionList) (*PathOutcome, error) {
	for name, typ := range types {
		if typ != model.TypeInt && typ != model.TypeBool {
			return nil, &model.UnsupportedTypeError{Symbol: name, Type: string(typ)}
		}
	}

	env := NewEnv(types)
	var warnings []string
	env.Warn = func(format string, args ...interface{}) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	var conjuncts []smt.Formula
	var deepest *model.Condition

	for _, c := range cl {
		switch c.Kind {
		case model.ConditionAssign:
			// Preferred substitution form: later references to Variable
			// expand to Expression instead of being treated as free.
			env.Bindings[c.Variable] = c.Expression

		case model.ConditionBranch:
			f, err := EvalBool(c.Predicate, env)
			if err != nil {
				return nil, err
			}
			if !c.Polarity {
				f = smt.Not{Arg: f}
			}
			conjuncts = append(conjuncts, f)
			deepest = c
		}
	}

	formula := smt.Conjunction(conjuncts...)
	key := cacheKey(types, cl)

	verdict, ok := d.cache.Get(key)
	if !ok {
		verdict = smt.Check(ctx, formula)
		if verdict == smt.Unknown && ctx.Err() != nil {
			// The deadline or a cancellation cut the check short.
			return nil, &model.SolverError{Cause: ctx.Err()}
		}
		d.cache.Add(key, verdict)
	}

	switch verdict {
	case smt.Sat:
		return &PathOutcome{Warnings: warnings}, nil
	case smt.Unsat:
		if deepest == nil {
			// No branch predicate at all means an empty conjunction,
			// which is trivially satisfiable; this case is unreachable
			// in practice but guarded defensively.
			return &PathOutcome{Warnings: warnings}, nil
		}
		return &PathOutcome{
			Note: &model.PathNote{
				StartLine: deepest.LineStart,
				EndLine:   deepest.LineEnd,
				Reachable: false,
			},
			Warnings: warnings,
		}, nil
	default: // smt.Unknown
		var startLine, endLine int
		if deepest != nil {
			startLine, endLine = deepest.LineStart, deepest.LineEnd
		}
		return &PathOutcome{
			Note: &model.PathNote{
				StartLine:   startLine,
				EndLine:     endLine,
				Reachable:   true,
				Explanation: "solver returned unknown",
			},
			Warnings: warnings,
		}, nil
	}
}

func cacheKey(types map[string]model.SymbolType, cl model.ConditionList) string {
	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s:%s;", name, types[name])
	}
	b.WriteString("|")
	for _, c := range cl {
		switch c.Kind {
		case model.ConditionAssign:
			fmt.Fprintf(&b, "A(%s=%s);", c.Variable, renderNode(c.Expression))
		case model.ConditionBranch:
			fmt.Fprintf(&b, "B(%v,%s);", c.Polarity, renderNode(c.Predicate))
		}
	}
	return b.String()
}

func renderNode(n *model.Node) string {
	if n == nil {
		return "_"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s", n.Kind)
	if n.Operator != "" {
		fmt.Fprintf(&b, "[%s]", n.Operator)
	}
	if n.Text != "" {
		fmt.Fprintf(&b, "{%s}", n.Text)
	}
	if n.Kind == model.KindNumericLiteral {
		fmt.Fprintf(&b, "(%d)", n.Int)
	}
	for _, c := range n.Children {
		b.WriteString("(")
		b.WriteString(renderNode(c))
		b.WriteString(")")
	}
	return b.String()
}
