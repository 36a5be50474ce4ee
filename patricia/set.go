package patricia

import "github.com/latticeforge/absint/bitvec"

// Set is a typed, persistent set of K backed by a Tree[K] — the trie
// value at each leaf is the element itself, so that Each can recover the
// original K (the BitVec key is one-way: Keyer does not need an inverse).
type Set[K any] struct {
	tree Tree[K]
	key  Keyer[K]
}

// NewSet creates an empty Set using key to route elements through the
// trie.
func NewSet[K any](key Keyer[K]) Set[K] {
	return Set[K]{key: key}
}

// IsEmpty reports whether s has no elements.
func (s Set[K]) IsEmpty() bool { return s.tree.IsEmpty() }

// Len counts the elements in s.
func (s Set[K]) Len() int { return s.tree.Len() }

// Contains reports whether k is a member of s.
func (s Set[K]) Contains(k K) bool { return s.tree.ContainsKey(s.key(k)) }

// Insert returns a new Set with k added.
func (s Set[K]) Insert(k K) Set[K] {
	s.tree = s.tree.Insert(s.key(k), k)
	return s
}

// Remove returns a new Set with k removed.
func (s Set[K]) Remove(k K) Set[K] {
	s.tree = s.tree.Remove(s.key(k))
	return s
}

// UnionWith returns the union of s and other.
func (s Set[K]) UnionWith(other Set[K]) Set[K] {
	s.tree = s.tree.UnionWith(other.tree, func(a, _ K) K { return a })
	return s
}

// IntersectWith returns the intersection of s and other.
func (s Set[K]) IntersectWith(other Set[K]) Set[K] {
	s.tree = s.tree.IntersectWith(other.tree, func(a, _ K) K { return a })
	return s
}

// SubsetOf reports whether s is a subset of other.
func (s Set[K]) SubsetOf(other Set[K]) bool { return s.tree.SubsetOf(other.tree) }

// Each calls visit for every element, stopping early if visit returns
// false.
func (s Set[K]) Each(visit func(k K) bool) {
	s.tree.Each(func(_ bitvec.BitVec, k K) bool {
		return visit(k)
	})
}
