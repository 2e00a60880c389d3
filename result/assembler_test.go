package result

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pathreach/analyzer/model"
)

func TestAssembleDedupesPreservingFirstOccurrence(t *testing.T) {
	n1 := &model.PathNote{StartLine: 2, EndLine: 4, Reachable: false}
	n2 := &model.PathNote{StartLine: 2, EndLine: 4, Reachable: false, Explanation: "duplicate, should be dropped"}
	n3 := &model.PathNote{StartLine: 6, EndLine: 8, Reachable: true, Explanation: "solver returned unknown"}

	out := Assemble([][]*model.PathNote{
		{n1},
		nil,
		{n2, n3},
	})

	assert.Len(t, out, 2)
	assert.Equal(t, n1.StartLine, out[0].StartLine)
	assert.Empty(t, out[0].Explanation) // n1's form wins, not n2's
	assert.Equal(t, n3.StartLine, out[1].StartLine)
}

func TestAssembleEmpty(t *testing.T) {
	out := Assemble(nil)
	assert.Empty(t, out)
}
