package wpo

import "github.com/latticeforge/absint/graphview"

// Build constructs the weak partial ordering of g, rooted at g.Entry().
//
// Stage 1 runs an iterative DFS from the entry, assigning each
// reachable vertex a 1-based preorder number (its DFN) and classifying
// every non-tree edge as back (target active on the DFS stack),
// forward (target already finished, discovered after the source in
// DFN order) or cross (target already finished, discovered before the
// source), resolving cross edges to their lowest common ancestor with
// an offline union-find.
//
// Stage 2 walks DFNs from N down to 1. At each h it closes the
// strongly connected component headed at h (if any) by a backward
// worklist search through non-back predecessors, bounded by h; emits
// either a single Plain node or a synthesized Exit/Head pair; wires
// the component's internal scheduling edges; and collapses nested
// members into h's representative via a second union-find.
//
// Stage 3 collects the remaining top-level representatives and
// resolves deferred outer-predecessor counts by walking each deferred
// vertex's chain of enclosing components.
func Build[NodeID comparable, EdgeID comparable](g graphview.Graph[NodeID, EdgeID]) *WeakPartialOrdering[NodeID] {
	n := g.Size()
	b := &builder[NodeID, EdgeID]{
		g:             g,
		dfn:           make(map[NodeID]int, n),
		dfnToNode:     make([]NodeID, n+1),
		parentDFN:     make([]int, n+1),
		nonBackPreds:  make([][]int, n+1),
		backPreds:     make([][]int, n+1),
		pendingOrigin: make([][]originPair, n+1),
		origin:        make([][]originPair, n+1),
		wpoParent:     make([]int, n+1),
		exitWpoIdx:    make([]Idx, n+1),
		nodeWpoIdx:    make([]Idx, n+1),
		lca:           newUFLCA(n + 1),
		rep:           newUFRep(n + 1),
	}
	b.dfs()
	return b.collapse()
}

type originPair struct {
	u, v int // DFNs
}

type dfsFrame[NodeID comparable] struct {
	node    NodeID
	dfn     int
	succIdx int
	succs   []NodeID
}

type builder[NodeID comparable, EdgeID comparable] struct {
	g graphview.Graph[NodeID, EdgeID]

	dfn       map[NodeID]int
	dfnToNode []NodeID
	parentDFN []int

	nonBackPreds [][]int
	backPreds    [][]int

	pendingOrigin [][]originPair
	origin        [][]originPair

	wpoParent  []int
	exitWpoIdx []Idx
	nodeWpoIdx []Idx

	lca *ufLCA
	rep *ufRep

	nodes []wpoNode[NodeID]

	deferredOuterPreds []deferredOuterPred
}

type deferredOuterPred struct {
	v    int // DFN of the vertex reached from outside
	xMax Idx // the outermost component exit this pair was attached to
}

func (b *builder[NodeID, EdgeID]) succNodes(u NodeID) []NodeID {
	edges := b.g.Successors(u)
	out := make([]NodeID, len(edges))
	for i, e := range edges {
		out[i] = b.g.Target(e)
	}
	return out
}

func (b *builder[NodeID, EdgeID]) dfs() {
	root := b.g.Entry()
	counter := 0

	b.dfn[root] = 1
	counter = 1
	b.dfnToNode[1] = root
	b.parentDFN[1] = 0

	stack := []*dfsFrame[NodeID]{{node: root, dfn: 1, succs: b.succNodes(root)}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.succIdx >= len(top.succs) {
			// finish top.node
			if parent := b.parentDFN[top.dfn]; parent != 0 {
				b.lca.finish(top.dfn, parent)
			}
			stack = stack[:len(stack)-1]
			continue
		}

		v := top.succs[top.succIdx]
		top.succIdx++

		if vDFN, seen := b.dfn[v]; !seen {
			counter++
			b.dfn[v] = counter
			b.dfnToNode[counter] = v
			b.parentDFN[counter] = top.dfn
			b.nonBackPreds[counter] = append(b.nonBackPreds[counter], top.dfn)
			stack = append(stack, &dfsFrame[NodeID]{node: v, dfn: counter, succs: b.succNodes(v)})
		} else if b.onStack(vDFN, stack) {
			b.backPreds[vDFN] = append(b.backPreds[vDFN], top.dfn)
		} else if vDFN > top.dfn {
			// forward edge into an already-finished descendant: no
			// scheduling information needed beyond what the tree edge
			// chain already carries.
		} else {
			target := b.lca.lca(vDFN)
			b.pendingOrigin[target] = append(b.pendingOrigin[target], originPair{u: top.dfn, v: vDFN})
		}
	}
}

// onStack reports whether the vertex at dfn is still active (an
// ancestor of the current DFS path), i.e. present among the stack
// frames. N is small enough in practice (control flow graphs) that a
// linear scan here is cheaper than maintaining a separate boolean
// table kept in lockstep with push/pop.
func (b *builder[NodeID, EdgeID]) onStack(dfn int, stack []*dfsFrame[NodeID]) bool {
	for _, f := range stack {
		if f.dfn == dfn {
			return true
		}
	}
	return false
}

// schedulingSource resolves the WPO source node for a tree edge
// p->v: it walks p up its chain of enclosing components until it
// finds one at the same nesting depth as v (a sibling, scheduled from
// its own exit) or the component v is directly nested in (scheduled
// from its Head, since that is the loop's entry point).
func (b *builder[NodeID, EdgeID]) schedulingSource(p, v int) Idx {
	x := p
	for {
		if b.wpoParent[v] == x {
			return b.nodeWpoIdx[x]
		}
		if b.wpoParent[x] == b.wpoParent[v] {
			return b.exitWpoIdx[x]
		}
		if b.wpoParent[x] == 0 {
			return b.exitWpoIdx[b.rep.find(p)]
		}
		x = b.wpoParent[x]
	}
}

func (b *builder[NodeID, EdgeID]) addEdge(from, to Idx) {
	if !containsIdx(b.nodes[from].successors, to) {
		b.nodes[from].successors = append(b.nodes[from].successors, to)
	}
	if !containsIdx(b.nodes[to].predecessors, from) {
		b.nodes[to].predecessors = append(b.nodes[to].predecessors, from)
	}
}

func containsIdx(s []Idx, v Idx) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func (b *builder[NodeID, EdgeID]) collapse() *WeakPartialOrdering[NodeID] {
	n := len(b.dfn)

	for h := n; h >= 1; h-- {
		// Step 1: reattach cross/forward edges whose LCA is h.
		for _, p := range b.pendingOrigin[h] {
			target := b.rep.find(p.v)
			b.nonBackPreds[target] = append(b.nonBackPreds[target], p.u)
			b.origin[target] = append(b.origin[target], p)
		}

		// Step 2: resolve back-edge sources to their current reps.
		var backRoots []int
		seen := make(map[int]bool)
		for _, p := range b.backPreds[h] {
			r := b.rep.find(p)
			if !seen[r] {
				seen[r] = true
				backRoots = append(backRoots, r)
			}
		}
		hasSCC := len(backRoots) > 0

		// Step 3: close the nested SCC via a backward worklist through
		// non-back predecessors, bounded by h.
		nested := make(map[int]bool)
		var nestedOrder []int
		if hasSCC {
			worklist := append([]int{}, backRoots...)
			for len(worklist) > 0 {
				p := worklist[len(worklist)-1]
				worklist = worklist[:len(worklist)-1]
				if p == h || nested[p] {
					continue
				}
				nested[p] = true
				nestedOrder = append(nestedOrder, p)
				for _, pred := range b.nonBackPreds[p] {
					r := b.rep.find(pred)
					if r != h && !nested[r] {
						worklist = append(worklist, r)
					}
				}
			}
		}

		if !hasSCC {
			// Step 4: plain node.
			idx := Idx(len(b.nodes))
			b.nodes = append(b.nodes, wpoNode[NodeID]{kind: kindPlain, node: b.dfnToNode[h], size: 1})
			b.nodeWpoIdx[h] = idx
			b.exitWpoIdx[h] = idx
		} else {
			// Step 5: synthesize Exit then Head.
			size := len(nestedOrder) + 1
			exitIdx := Idx(len(b.nodes))
			b.nodes = append(b.nodes, wpoNode[NodeID]{kind: kindExit, node: b.dfnToNode[h], size: size, numOuterPreds: make(map[Idx]uint32)})
			headIdx := Idx(len(b.nodes))
			b.nodes = append(b.nodes, wpoNode[NodeID]{kind: kindHead, node: b.dfnToNode[h], size: size})
			b.nodeWpoIdx[h] = headIdx
			b.exitWpoIdx[h] = exitIdx

			// Step 6: scheduling edges inside the component.
			var externalBackRoots []int
			for _, r := range backRoots {
				if r != h {
					externalBackRoots = append(externalBackRoots, r)
				}
			}
			if len(externalBackRoots) == 0 {
				b.addEdge(headIdx, exitIdx)
			} else {
				for _, p := range externalBackRoots {
					b.addEdge(b.exitWpoIdx[p], exitIdx)
				}
			}

			// Step 7: scheduling edges between nested SCCs, reattaching
			// cross/forward edges whose origin landed on a nested member.
			for _, v := range nestedOrder {
				for _, p := range b.origin[v] {
					srcRep := b.rep.find(p.u)
					b.addEdge(b.exitWpoIdx[srcRep], b.nodeWpoIdx[p.v])
					if b.exitWpoIdx[v] != b.nodeWpoIdx[v] {
						b.deferredOuterPreds = append(b.deferredOuterPreds, deferredOuterPred{v: p.v, xMax: b.exitWpoIdx[v]})
					}
				}
			}

			// Step 8: union nested members into h.
			for _, v := range nestedOrder {
				b.rep.union(v, h)
				b.wpoParent[v] = h
			}
		}
	}

	// Stage 3: toplevel collection, reattaching any origin pairs left
	// on top-level representatives.
	var toplevel []Idx
	for v := 1; v <= n; v++ {
		if b.rep.find(v) != v {
			continue
		}
		toplevel = append(toplevel, b.nodeWpoIdx[v])
		for _, p := range b.origin[v] {
			srcRep := b.rep.find(p.u)
			b.addEdge(b.exitWpoIdx[srcRep], b.nodeWpoIdx[p.v])
		}
	}

	// Generic scheduling edges for DFS-tree parent/child pairs. Back
	// edges and reattached cross/forward edges are wired above as part
	// of component discovery; a plain tree edge p->v still needs a
	// scheduling edge, sourced from whichever of p's enclosing
	// components sits at the same nesting depth as v (or from p's
	// direct Head, when p itself is the component v is nested in).
	for v := 1; v <= n; v++ {
		p := b.parentDFN[v]
		if p == 0 {
			continue
		}
		b.addEdge(b.schedulingSource(p, v), b.nodeWpoIdx[v])
	}

	// Resolve deferred outer-predecessor counts by walking each
	// pending vertex's chain of enclosing components up to (but not
	// including) the component the pair was originally attached to.
	for _, dp := range b.deferredOuterPreds {
		cur := b.wpoParent[dp.v]
		for cur != 0 {
			x := b.exitWpoIdx[cur]
			if x == dp.xMax {
				break
			}
			b.nodes[x].numOuterPreds[b.nodeWpoIdx[dp.v]]++
			cur = b.wpoParent[cur]
		}
	}

	return &WeakPartialOrdering[NodeID]{nodes: b.nodes, toplevel: toplevel}
}
