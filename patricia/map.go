package patricia

import "github.com/latticeforge/absint/bitvec"

// Keyer converts a typed key into the BitVec that routes it through the
// trie. Callers supply this once per key type (e.g. a fixed-width integer
// encoding, or a string's byte representation truncated to bitvec.MaxLen
// bits).
type Keyer[K any] func(K) bitvec.BitVec

// Map is a typed, persistent map from K to V backed by a Tree[entry[K,V]].
// Equality, union, and intersection are delegated to the underlying
// Tree, so cloning a Map remains O(1) and union/intersection over maps
// that share structure remain sublinear.
type Map[K any, V any] struct {
	tree Tree[entry[K, V]]
	key  Keyer[K]
}

type entry[K any, V any] struct {
	k K
	v V
}

// NewMap creates an empty Map using key to route keys through the trie.
func NewMap[K any, V any](key Keyer[K]) Map[K, V] {
	return Map[K, V]{key: key}
}

// IsEmpty reports whether m has no bindings.
func (m Map[K, V]) IsEmpty() bool { return m.tree.IsEmpty() }

// Len counts the bindings in m.
func (m Map[K, V]) Len() int { return m.tree.Len() }

// Get returns the value bound to k, if any.
func (m Map[K, V]) Get(k K) (V, bool) {
	e, ok := m.tree.Get(m.key(k))
	return e.v, ok
}

// ContainsKey reports whether k is bound in m.
func (m Map[K, V]) ContainsKey(k K) bool {
	return m.tree.ContainsKey(m.key(k))
}

// Insert returns a new Map with k bound to v.
func (m Map[K, V]) Insert(k K, v V) Map[K, V] {
	m.tree = m.tree.Insert(m.key(k), entry[K, V]{k: k, v: v})
	return m
}

// Remove returns a new Map with k unbound.
func (m Map[K, V]) Remove(k K) Map[K, V] {
	m.tree = m.tree.Remove(m.key(k))
	return m
}

// UnionWith returns the union of m and other, resolving keys present in
// both via combine(mValue, otherValue).
func (m Map[K, V]) UnionWith(other Map[K, V], combine func(a, b V) V) Map[K, V] {
	m.tree = m.tree.UnionWith(other.tree, func(a, b entry[K, V]) entry[K, V] {
		return entry[K, V]{k: a.k, v: combine(a.v, b.v)}
	})
	return m
}

// IntersectWith returns the intersection of m and other, resolving
// matches via combine(mValue, otherValue).
func (m Map[K, V]) IntersectWith(other Map[K, V], combine func(a, b V) V) Map[K, V] {
	m.tree = m.tree.IntersectWith(other.tree, func(a, b entry[K, V]) entry[K, V] {
		return entry[K, V]{k: a.k, v: combine(a.v, b.v)}
	})
	return m
}

// SubsetOf reports whether every key in m is also a key in other, with
// equal or identical structure shared (no value comparison).
func (m Map[K, V]) SubsetOf(other Map[K, V]) bool {
	return m.tree.SubsetOf(other.tree)
}

// Each calls visit for every binding, stopping early if visit returns
// false.
func (m Map[K, V]) Each(visit func(k K, v V) bool) {
	m.tree.Each(func(_ bitvec.BitVec, e entry[K, V]) bool {
		return visit(e.k, e.v)
	})
}

// Equal reports whether m and other contain the same bindings, comparing
// values with eq.
func (m Map[K, V]) Equal(other Map[K, V], eq func(a, b V) bool) bool {
	return m.tree.Equal(other.tree, func(a, b entry[K, V]) bool { return eq(a.v, b.v) })
}

// LessEqual reports whether m is pointwise dominated by other under leq,
// treating a key absent from m as bound to top and a key absent from
// other as bound to top as well — the convention map-as-environment
// constructors build on (see package environment).
func (m Map[K, V]) LessEqual(other Map[K, V], top V, leq func(a, b V) bool) bool {
	ok := true
	m.Each(func(k K, v V) bool {
		ov, found := other.Get(k)
		if !found {
			ov = top
		}
		if !leq(v, ov) {
			ok = false
			return false
		}
		return true
	})
	if !ok {
		return false
	}
	// every key only in other must be satisfiable by m's implicit top
	other.Each(func(k K, ov V) bool {
		if !m.ContainsKey(k) {
			if !leq(top, ov) {
				ok = false
				return false
			}
		}
		return true
	})
	return ok
}
