package graphview

// SimpleGraph is a naive, edge-list-backed Graph implementation keyed
// by uint32 node and edge ids. It exists to build the small example
// control flow graphs exercised by the graphview, wpo and fixpoint
// tests; production clients are expected to implement Graph directly
// over their own IR instead.
type SimpleGraph struct {
	succs    map[uint32][]uint32
	preds    map[uint32][]uint32
	edgeFrom []uint32
	edgeTo   []uint32
	entry    uint32
	exit     uint32
	size     int
}

// NewSimpleGraph creates an empty graph with the given entry and exit
// node ids.
func NewSimpleGraph(entry, exit uint32, size int) *SimpleGraph {
	return &SimpleGraph{
		succs: make(map[uint32][]uint32),
		preds: make(map[uint32][]uint32),
		entry: entry,
		exit:  exit,
		size:  size,
	}
}

// AddEdge records an edge from source to target, matching the
// reference fixture's "duplicate edges are counted too" behavior (no
// deduplication).
func (g *SimpleGraph) AddEdge(source, target uint32) uint32 {
	edgeID := uint32(len(g.edgeFrom))
	g.edgeFrom = append(g.edgeFrom, source)
	g.edgeTo = append(g.edgeTo, target)
	g.succs[source] = append(g.succs[source], edgeID)
	g.preds[target] = append(g.preds[target], edgeID)
	return edgeID
}

func (g *SimpleGraph) Entry() uint32 { return g.entry }
func (g *SimpleGraph) Exit() uint32  { return g.exit }
func (g *SimpleGraph) Size() int     { return g.size }

func (g *SimpleGraph) Successors(n uint32) []uint32   { return g.succs[n] }
func (g *SimpleGraph) Predecessors(n uint32) []uint32 { return g.preds[n] }

func (g *SimpleGraph) Source(e uint32) uint32 { return g.edgeFrom[e] }
func (g *SimpleGraph) Target(e uint32) uint32 { return g.edgeTo[e] }
