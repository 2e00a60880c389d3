// Package result implements the Result Assembler (spec component H):
// merging per-path verdicts into the final ordered response.
package result

import (
	"golang.org/x/exp/slices"

	"github.com/pathreach/analyzer/model"
)

// Assemble merges notes, one slice per Path in path-enumeration order,
// into the final list: concatenated in that order, then de-duplicated by
// PathNote.Key() keeping the first occurrence.
func Assemble(perPath [][]*model.PathNote) []model.PathNote {
	var out []model.PathNote

	for _, notes := range perPath {
		for _, n := range notes {
			if n == nil {
				continue
			}
			key := n.Key()
			if slices.ContainsFunc(out, func(existing model.PathNote) bool { return existing.Key() == key }) {
				continue
			}
			out = append(out, *n)
		}
	}

	return out
}
