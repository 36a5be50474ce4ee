package graphview_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/latticeforge/absint/graphview"
)

func buildDiamond() *graphview.SimpleGraph {
	g := graphview.NewSimpleGraph(0, 3, 4)
	g.AddEdge(0, 1)
	g.AddEdge(0, 2)
	g.AddEdge(1, 3)
	g.AddEdge(2, 3)
	return g
}

func TestSimpleGraphSuccessorsAndPredecessors(t *testing.T) {
	g := buildDiamond()
	assert.Equal(t, uint32(0), g.Entry())
	assert.Equal(t, uint32(3), g.Exit())
	assert.Equal(t, 4, g.Size())

	succs := g.Successors(0)
	assert.Len(t, succs, 2)
	for _, e := range succs {
		assert.Equal(t, uint32(0), g.Source(e))
	}

	preds := g.Predecessors(3)
	assert.Len(t, preds, 2)
	for _, e := range preds {
		assert.Equal(t, uint32(3), g.Target(e))
	}
}

func TestReversedSwapsEntryExitAndEdges(t *testing.T) {
	g := buildDiamond()
	rev := graphview.Reverse[uint32, uint32](g)

	assert.Equal(t, g.Exit(), rev.Entry())
	assert.Equal(t, g.Entry(), rev.Exit())

	// in the reversed view, node 3's successors are node 3's predecessors
	// in the original graph.
	assert.ElementsMatch(t, g.Predecessors(3), rev.Successors(3))
	assert.ElementsMatch(t, g.Successors(0), rev.Predecessors(0))

	for _, e := range rev.Successors(3) {
		assert.Equal(t, uint32(3), rev.Source(e))
	}
}
