// Package absint is a library for building abstract interpreters: a
// lattice-algebra toolkit (powerset, lifted, environment, partition,
// disjoint-union domains over an AbstractDomain capability) paired with
// a monotonic fixpoint iterator driven by a Weak Partial Ordering, so
// chaotic iteration terminates on arbitrary — including irreducible —
// control flow graphs.
//
// Subpackages, one per concern:
//
//	bitvec/      — fixed-width bit vectors keying the Patricia trie
//	patricia/    — persistent trie-backed Map[K,V]/Set[K]
//	domain/      — the AbstractDomain[D] lattice contract
//	powerset/    — the powerset-of-sets domain
//	lifted/      — a strict new bottom injected below any domain
//	environment/ — implicit-Top maps from variables to a domain
//	partition/   — implicit-Bottom maps from labels to a domain
//	disjointunion/ — tagged sums of two or three domains
//	graphview/   — the minimal Graph view wpo and fixpoint consume
//	wpo/         — Weak Partial Ordering construction
//	fixpoint/    — MonotonicFixpointIterator
package absint
