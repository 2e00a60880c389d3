// Package pathenum implements the Path Enumerator (spec component D): a
// depth-first extraction of every root-to-leaf sequence of Contexts.
package pathenum

import "github.com/pathreach/analyzer/model"

// Enumerate returns every Path through root in natural DFS pre-order. For
// any Conditional with both polarities, the true-polarity path always
// precedes the false-polarity path, per the ordering guarantee in the
// external contract.
func Enumerate(root *model.Context) []model.Path {
	var paths []model.Path
	walk(root, nil, &paths)
	return paths
}

func walk(c *model.Context, prefix model.Path, paths *[]model.Path) {
	switch c.Kind {
	case model.ContextConditionalKind:
		step := model.PathStep{Context: c, Polarity: true}
		walkChildren(c.Then, appendStep(prefix, step), paths)

		falseStep := model.PathStep{Context: c, Polarity: false}
		walkChildren(c.Else, appendStep(prefix, falseStep), paths)

	default: // Root, Assignment
		step := model.PathStep{Context: c}
		next := appendStep(prefix, step)
		if c.IsLinearLeaf() {
			*paths = append(*paths, next)
			return
		}
		walkChildren(c.Children, next, paths)
	}
}

// appendStep extends prefix with step into a freshly allocated backing
// array. A plain append(prefix, step) would, once prefix has spare
// capacity, let two branches computed from the same prefix (a
// Conditional's true/false steps, or two siblings in walkChildren's
// loop) write into the same backing-array slot: whichever branch's
// recursion stores its Path into *paths first would then have that
// slot silently overwritten by the other branch's step. Every
// extension of a shared prefix must get its own backing array.
func appendStep(prefix model.Path, step model.PathStep) model.Path {
	next := make(model.Path, len(prefix), len(prefix)+1)
	copy(next, prefix)
	return append(next, step)
}

// walkChildren descends into an ordered child list. An empty list is
// itself a leaf continuation: this is what lets an else-less `if` still
// yield a false-polarity path with no body statements under it.
func walkChildren(children []*model.Context, prefix model.Path, paths *[]model.Path) {
	if len(children) == 0 {
		*paths = append(*paths, prefix)
		return
	}
	for _, child := range children {
		walk(child, prefix, paths)
	}
}
