// Package fixpoint drives a monotonic fixpoint computation over a graph
// view using a weak partial ordering as its iteration schedule.
package fixpoint

import (
	"github.com/latticeforge/absint/domain"
	"github.com/latticeforge/absint/graphview"
	"github.com/latticeforge/absint/wpo"
)

// Transformer supplies the node/edge semantics a MonotonicFixpointIterator
// schedules. AnalyzeNode mutates current in place to turn a node's entry
// state into its exit state. AnalyzeEdge transforms the exit state of an
// edge's source into the contribution it carries across e.
type Transformer[NodeID any, EdgeID any, D any] interface {
	AnalyzeNode(n NodeID, current *D)
	AnalyzeEdge(e EdgeID, exitStateAtSource D) D
}

// MonotonicFixpointIterator computes, for every node of g, the least
// fixpoint of the equations induced by t, using w as the iteration
// schedule: loop heads are revisited and widened until their exit
// stabilizes, instead of being visited once in a fixed topological
// order.
//
// D's zero value must be Bottom: the entry-state fold and the state
// getters start from it. Every domain.AbstractDomain implementation in
// this module (powerset, lifted, environment.HashMap, partition.HashMap,
// disjointunion) meets this. The Patricia-backed environment and
// partition take an extra argument in LessEqual and so cannot be used as
// D.
type MonotonicFixpointIterator[NodeID comparable, EdgeID comparable, D domain.AbstractDomain[D]] struct {
	g           graphview.Graph[NodeID, EdgeID]
	w           *wpo.WeakPartialOrdering[NodeID]
	transformer Transformer[NodeID, EdgeID, D]

	entryStates map[NodeID]D
	exitStates  map[NodeID]D

	globalIterations map[NodeID]uint32
	localIterations  map[NodeID]uint32
}

// New builds an iterator over g, scheduled by w, analyzed by t.
func New[NodeID comparable, EdgeID comparable, D domain.AbstractDomain[D]](
	g graphview.Graph[NodeID, EdgeID],
	w *wpo.WeakPartialOrdering[NodeID],
	t Transformer[NodeID, EdgeID, D],
) *MonotonicFixpointIterator[NodeID, EdgeID, D] {
	return &MonotonicFixpointIterator[NodeID, EdgeID, D]{
		g:                g,
		w:                w,
		transformer:      t,
		entryStates:      make(map[NodeID]D),
		exitStates:       make(map[NodeID]D),
		globalIterations: make(map[NodeID]uint32),
		localIterations:  make(map[NodeID]uint32),
	}
}

// GetEntryStateAt returns the entry (pre-) state computed for n, or
// Bottom if n was never reached.
func (it *MonotonicFixpointIterator[NodeID, EdgeID, D]) GetEntryStateAt(n NodeID) D {
	return it.entryStates[n]
}

// GetExitStateAt returns the exit (post-) state computed for n, or
// Bottom if n was never reached.
func (it *MonotonicFixpointIterator[NodeID, EdgeID, D]) GetExitStateAt(n NodeID) D {
	return it.exitStates[n]
}

// Clear discards every computed state and iteration counter, leaving
// the iterator ready for a fresh Run.
func (it *MonotonicFixpointIterator[NodeID, EdgeID, D]) Clear() {
	it.entryStates = make(map[NodeID]D)
	it.exitStates = make(map[NodeID]D)
	it.globalIterations = make(map[NodeID]uint32)
	it.localIterations = make(map[NodeID]uint32)
}

// SetAllToBottom stores bottom as the entry and exit state of every node
// in nodes, so that GetEntryStateAt/GetExitStateAt return that explicit
// value rather than D's zero value for nodes a later Run does not reach.
func (it *MonotonicFixpointIterator[NodeID, EdgeID, D]) SetAllToBottom(nodes []NodeID, bottom D) {
	for _, n := range nodes {
		it.entryStates[n] = bottom
		it.exitStates[n] = bottom
	}
}

// GetLocalIterations returns the number of extrapolation rounds the
// current stabilization attempt at n (a loop head) has gone through
// since it last stabilized.
func (it *MonotonicFixpointIterator[NodeID, EdgeID, D]) GetLocalIterations(n NodeID) uint32 {
	return it.localIterations[n]
}

// GetGlobalIterations returns the total number of extrapolation rounds
// n (a loop head) has gone through over the lifetime of the iterator.
func (it *MonotonicFixpointIterator[NodeID, EdgeID, D]) GetGlobalIterations(n NodeID) uint32 {
	return it.globalIterations[n]
}

// Run computes the fixpoint, seeding the graph's entry node with init.
func (it *MonotonicFixpointIterator[NodeID, EdgeID, D]) Run(init D) {
	size := it.w.Size()
	counters := make([]uint32, size)
	worklist := make([]wpo.Idx, 0, size)
	worklist = append(worklist, it.w.GetEntry())

	for len(worklist) > 0 {
		v := worklist[0]
		worklist = worklist[1:]
		counters[v] = 0

		if it.w.IsExit(v) {
			worklist = it.processExit(v, init, counters, worklist)
		} else {
			worklist = it.processPlainOrHead(v, init, counters, worklist)
		}
	}
}

// computeEntryState folds init (if n is the graph's entry) and every
// predecessor edge's transformed exit state into a fresh candidate
// entry value for n.
func (it *MonotonicFixpointIterator[NodeID, EdgeID, D]) computeEntryState(n NodeID, init D) D {
	var entry D
	if n == it.g.Entry() {
		entry = entry.Join(init)
	}
	for _, e := range it.g.Predecessors(n) {
		src := it.g.Source(e)
		entry = entry.Join(it.transformer.AnalyzeEdge(e, it.exitStates[src]))
	}
	return entry
}

// release increments the ready-counter of every WPO successor of v,
// enqueuing those that have now heard from all of their predecessors.
func (it *MonotonicFixpointIterator[NodeID, EdgeID, D]) release(v wpo.Idx, counters []uint32, worklist []wpo.Idx) []wpo.Idx {
	for _, s := range it.w.GetSuccessors(v) {
		counters[s]++
		if counters[s] == it.w.GetNumPreds(s) {
			worklist = append(worklist, s)
		}
	}
	return worklist
}

// processPlainOrHead handles the case where v is a Plain node or a loop
// Head. Its entry/exit states are recomputed from scratch and its WPO
// successors are released unconditionally.
func (it *MonotonicFixpointIterator[NodeID, EdgeID, D]) processPlainOrHead(v wpo.Idx, init D, counters []uint32, worklist []wpo.Idx) []wpo.Idx {
	n := it.w.GetNode(v)
	entry := it.computeEntryState(n, init)
	it.entryStates[n] = entry

	exit := entry
	it.transformer.AnalyzeNode(n, &exit)
	it.exitStates[n] = exit

	return it.release(v, counters, worklist)
}

// processExit handles the case where v is the synthetic Exit of a loop,
// paired with the Head at v+1. A fresh candidate entry state
// for the head is recomputed and compared against the head's current
// entry state. If it is already covered, the loop has stabilized and
// v's own successors (leaving the loop) are released; otherwise the
// head's state is extrapolated (joined on its first round, widened
// afterward) and the loop body is re-run by releasing the head's own
// successors instead, plus any components owed extra credit for being
// reached from outside this component.
func (it *MonotonicFixpointIterator[NodeID, EdgeID, D]) processExit(v wpo.Idx, init D, counters []uint32, worklist []wpo.Idx) []wpo.Idx {
	h := it.w.GetHeadOfExit(v)
	n := it.w.GetNode(h)

	candidate := it.computeEntryState(n, init)
	current := it.entryStates[n]

	if candidate.LessEqual(current) {
		it.localIterations[n] = 0
		it.entryStates[n] = candidate

		exit := candidate
		it.transformer.AnalyzeNode(n, &exit)
		it.exitStates[n] = exit

		return it.release(v, counters, worklist)
	}

	if it.globalIterations[n] == 0 {
		current = current.Join(candidate)
	} else {
		current = current.Widen(candidate)
	}
	it.entryStates[n] = current
	it.globalIterations[n]++
	it.localIterations[n]++

	exit := current
	it.transformer.AnalyzeNode(n, &exit)
	it.exitStates[n] = exit

	worklist = it.release(h, counters, worklist)

	for comp, k := range it.w.GetNumOuterPreds(v) {
		counters[comp] += k
		if counters[comp] == it.w.GetNumPreds(comp) {
			worklist = append(worklist, comp)
		}
	}

	return worklist
}
