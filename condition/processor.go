// Package condition implements the Statement Processor (spec component E)
// and the Condition Evaluator (spec component F): turning Paths into
// normalized ConditionLists, then translating their expression fragments
// into SMT terms.
package condition

import "github.com/pathreach/analyzer/model"

// BuildConditionList converts one Path into its normalized ConditionList.
// Root steps contribute nothing; Assignment and Conditional steps each
// become one Condition, in path order.
func BuildConditionList(path model.Path) model.ConditionList {
	var list model.ConditionList
	for _, step := range path {
		c := step.Context
		switch c.Kind {
		case model.ContextAssignmentKind:
			list = append(list, &model.Condition{
				Kind:           model.ConditionAssign,
				Variable:       c.Variable,
				Expression:     c.Expression,
				ReferencedVars: collectIdentifiers(c.Expression),
			})
		case model.ContextConditionalKind:
			list = append(list, &model.Condition{
				Kind:           model.ConditionBranch,
				Predicate:      c.Predicate,
				Polarity:       step.Polarity,
				LineStart:      c.LineStart,
				LineEnd:        c.LineEnd,
				ReferencedVars: collectIdentifiers(c.Predicate),
			})
		case model.ContextRootKind:
			// Contributes only its symbol table, carried separately.
		}
	}
	return list
}

// collectIdentifiers walks an expression fragment and returns the set of
// identifier names it mentions.
func collectIdentifiers(n *model.Node) map[string]struct{} {
	out := make(map[string]struct{})
	var visit func(n *model.Node)
	visit = func(n *model.Node) {
		if n == nil {
			return
		}
		if n.Kind == model.KindIdentifier {
			out[n.Text] = struct{}{}
		}
		for _, c := range n.Children {
			visit(c)
		}
	}
	visit(n)
	return out
}
