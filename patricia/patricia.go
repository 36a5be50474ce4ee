// Package patricia implements a persistent, structurally-shared big-endian
// binary trie keyed on bitvec.BitVec, after Okasaki & Gill's "Fast
// Mergeable Integer Maps". Trees are immutable once built: insert and
// remove return a new root that shares every subtree unaffected by the
// edit, and cloning a tree is an O(1) pointer copy (Go's garbage
// collector reclaims shared subtrees once their last referencing root
// is gone).
//
// Invariants (checked informally by the tests, not at runtime): for every
// branch, both subtrees' keys begin with the branch's prefix; the bit at
// prefix.Len() is 0 in every leaf under left and 1 under right; no branch
// has fewer than two distinct leaves beneath it.
package patricia

import (
	"fmt"

	"github.com/latticeforge/absint/bitvec"
)

// node is either a leaf carrying a key/value pair, or a branch carrying the
// common prefix of its two subtrees. A nil *node represents the empty tree.
type node[V any] struct {
	// leaf fields
	isLeaf bool
	key    bitvec.BitVec
	value  V

	// branch fields
	prefix      bitvec.BitVec
	left, right *node[V]
}

func newLeaf[V any](key bitvec.BitVec, value V) *node[V] {
	return &node[V]{isLeaf: true, key: key, value: value}
}

// keyOrPrefix returns the key of a leaf, or the prefix of a branch — the
// BitVec used to decide which side of a new branch a node falls on.
func (n *node[V]) keyOrPrefix() bitvec.BitVec {
	if n.isLeaf {
		return n.key
	}
	return n.prefix
}

// makeBranch builds the branch node for two nodes with distinct
// keys/prefixes. It panics if the two nodes have the same key or prefix —
// callers must never call it with an existing key.
func makeBranch[V any](a, b *node[V]) *node[V] {
	v1, v2 := a.keyOrPrefix(), b.keyOrPrefix()
	if v1.Equal(v2) {
		panic("patricia: makeBranch requires distinct keys")
	}
	common := bitvec.CommonPrefix(v1, v2)
	branchingBit := common.Len()

	b1 := v1.Bit(branchingBit)
	b2 := v2.Bit(branchingBit)
	if b1 == b2 {
		panic(fmt.Sprintf("patricia: makeBranch: branching bit %d agrees for both keys", branchingBit))
	}

	left, right := a, b
	if b1 {
		left, right = b, a
	}
	return &node[V]{prefix: common, left: left, right: right}
}

// updateByKey is the core recursive algorithm behind insert/remove/upsert.
// op is invoked with the existing leaf (if key is already present) or nil
// (if absent); its return value replaces the leaf (nil removes it).
func updateByKey[V any](n *node[V], key bitvec.BitVec, op func(existing *node[V]) *node[V]) *node[V] {
	if n == nil {
		return op(nil)
	}
	if n.isLeaf {
		if n.key.Equal(key) {
			return op(n)
		}
		newNode := op(nil)
		if newNode == nil {
			return n
		}
		return makeBranch(newNode, n)
	}

	// branch
	if key.BeginsWith(n.prefix) {
		if !key.Bit(n.prefix.Len()) {
			newLeft := updateByKey(n.left, key, op)
			if newLeft == nil {
				return n.right
			}
			return &node[V]{prefix: n.prefix, left: newLeft, right: n.right}
		}
		newRight := updateByKey(n.right, key, op)
		if newRight == nil {
			return n.left
		}
		return &node[V]{prefix: n.prefix, left: n.left, right: newRight}
	}

	// the key diverges above this branch: splice in a new branch
	newNode := op(nil)
	if newNode == nil {
		return n
	}
	return makeBranch(newNode, n)
}

func findNodeByKey[V any](n *node[V], key bitvec.BitVec) *node[V] {
	if n == nil {
		return nil
	}
	if n.isLeaf {
		if n.key.Equal(key) {
			return n
		}
		return nil
	}
	if n.prefix.Len() < key.Len() {
		if !key.Bit(n.prefix.Len()) {
			return findNodeByKey(n.left, key)
		}
		return findNodeByKey(n.right, key)
	}
	if n.prefix.Equal(key) {
		return n
	}
	return nil
}

func findLeafByKey[V any](n *node[V], key bitvec.BitVec) *node[V] {
	found := findNodeByKey(n, key)
	if found != nil && found.isLeaf {
		return found
	}
	return nil
}

func containsLeafWithKey[V any](n *node[V], key bitvec.BitVec) bool {
	return findLeafByKey(n, key) != nil
}

// leafCombine reconciles two leaves sharing the same key during a merge or
// intersect; it returns the new leaf to use, or nil to drop the key.
type leafCombine[V any] func(left, right *node[V]) *node[V]

func combineLeavesByKey[V any](n *node[V], key bitvec.BitVec, other *node[V], combine leafCombine[V]) *node[V] {
	updated := updateByKey(n, key, func(existing *node[V]) *node[V] {
		if existing != nil {
			return combine(existing, other)
		}
		return other
	})
	if updated == nil {
		panic("patricia: combineLeavesByKey must not delete")
	}
	return updated
}

// mergeTrees computes the union of s and t, resolving duplicate keys with
// combine(leafInS, leafInT). Pointer-equality short-circuits recursion when
// subtrees are shared.
func mergeTrees[V any](s, t *node[V], combine leafCombine[V]) *node[V] {
	if s == t {
		return s
	}

	if t.isLeaf {
		return combineLeavesByKey(s, t.key, t, combine)
	}
	if s.isLeaf {
		return combineLeavesByKey(t, s.key, s, func(inT, inS *node[V]) *node[V] { return combine(inS, inT) })
	}

	// both are branches
	if s.prefix.Equal(t.prefix) {
		newLeft := mergeTrees(s.left, t.left, combine)
		newRight := mergeTrees(s.right, t.right, combine)
		if newLeft == s.left && newRight == s.right {
			return s
		}
		if newLeft == t.left && newRight == t.right {
			return t
		}
		return &node[V]{prefix: s.prefix, left: newLeft, right: newRight}
	}
	if t.prefix.BeginsWith(s.prefix) {
		if !t.prefix.Bit(s.prefix.Len()) {
			newLeft := mergeTrees(s.left, t, combine)
			if newLeft == s.left {
				return s
			}
			return &node[V]{prefix: s.prefix, left: newLeft, right: s.right}
		}
		newRight := mergeTrees(s.right, t, combine)
		if newRight == s.right {
			return s
		}
		return &node[V]{prefix: s.prefix, left: s.left, right: newRight}
	}
	if s.prefix.BeginsWith(t.prefix) {
		if !s.prefix.Bit(t.prefix.Len()) {
			newLeft := mergeTrees(s, t.left, combine)
			if newLeft == t.left {
				return t
			}
			return &node[V]{prefix: t.prefix, left: newLeft, right: t.right}
		}
		newRight := mergeTrees(s, t.right, combine)
		if newRight == t.right {
			return t
		}
		return &node[V]{prefix: t.prefix, left: t.left, right: newRight}
	}
	return makeBranch(s, t)
}

// intersectTrees computes the intersection of s and t, resolving matches
// with combine(leafInS, leafInT). Returns nil if the intersection is empty.
func intersectTrees[V any](s, t *node[V], combine leafCombine[V]) *node[V] {
	if s == t {
		return s
	}

	if s.isLeaf {
		if tLeaf := findLeafByKey(t, s.key); tLeaf != nil {
			return combine(s, tLeaf)
		}
		return nil
	}
	if t.isLeaf {
		if sLeaf := findLeafByKey(s, t.key); sLeaf != nil {
			return combine(sLeaf, t)
		}
		return nil
	}

	if s.prefix.Equal(t.prefix) {
		newLeft := intersectTrees(s.left, t.left, combine)
		newRight := intersectTrees(s.right, t.right, combine)
		switch {
		case newLeft == nil:
			return newRight
		case newRight == nil:
			return newLeft
		default:
			return &node[V]{prefix: s.prefix, left: newLeft, right: newRight}
		}
	}
	if t.prefix.BeginsWith(s.prefix) {
		if !t.prefix.Bit(s.prefix.Len()) {
			return intersectTrees(s.left, t, combine)
		}
		return intersectTrees(s.right, t, combine)
	}
	if s.prefix.BeginsWith(t.prefix) {
		if !s.prefix.Bit(t.prefix.Len()) {
			return intersectTrees(s, t.left, combine)
		}
		return intersectTrees(s, t.right, combine)
	}
	return nil
}

// isSubsetOf reports whether every key in s is also a key in t.
func isSubsetOf[V any](s, t *node[V]) bool {
	if s == t {
		return true
	}
	if s.isLeaf {
		return containsLeafWithKey(t, s.key)
	}
	if t.isLeaf {
		return false
	}

	if s.prefix.Equal(t.prefix) {
		return isSubsetOf(s.left, t.left) && isSubsetOf(s.right, t.right)
	}
	if s.prefix.BeginsWith(t.prefix) {
		if !s.prefix.Bit(t.prefix.Len()) {
			return isSubsetOf(s.left, t.left) && isSubsetOf(s.right, t.left)
		}
		return isSubsetOf(s.left, t.right) && isSubsetOf(s.right, t.right)
	}
	return false
}

// Tree is a persistent, structurally-shared Patricia trie mapping
// bitvec.BitVec keys to values of type V. The zero value is the empty
// tree. Cloning a Tree (simple Go assignment) is O(1): both copies share
// the same root until one of them is mutated, at which point only the
// root-to-leaf spine along the edited path is rebuilt.
type Tree[V any] struct {
	root *node[V]
}

// IsEmpty reports whether t has no bindings.
func (t Tree[V]) IsEmpty() bool { return t.root == nil }

// Len counts the bindings in t. It is O(n): this trie does not cache a
// size alongside each node.
func (t Tree[V]) Len() int {
	n := 0
	t.Each(func(bitvec.BitVec, V) bool { n++; return true })
	return n
}

// Get looks up key, returning its value and true if present.
func (t Tree[V]) Get(key bitvec.BitVec) (V, bool) {
	leaf := findLeafByKey(t.root, key)
	if leaf == nil {
		var zero V
		return zero, false
	}
	return leaf.value, true
}

// ContainsKey reports whether key is bound in t.
func (t Tree[V]) ContainsKey(key bitvec.BitVec) bool {
	return containsLeafWithKey(t.root, key)
}

// Insert returns a new tree with key bound to value, replacing any
// existing binding for key. Subtrees unaffected by the edit are shared
// with t.
func (t Tree[V]) Insert(key bitvec.BitVec, value V) Tree[V] {
	leaf := newLeaf(key, value)
	newRoot := updateByKey(t.root, key, func(_ *node[V]) *node[V] { return leaf })
	return Tree[V]{root: newRoot}
}

// Remove returns a new tree with key unbound. If key is absent, the
// returned tree shares its root with t.
func (t Tree[V]) Remove(key bitvec.BitVec) Tree[V] {
	newRoot := updateByKey(t.root, key, func(*node[V]) *node[V] { return nil })
	return Tree[V]{root: newRoot}
}

// UnionWith returns the union of t and other. combine(a, b) resolves a key
// present in both trees, receiving t's value as a and other's as b.
func (t Tree[V]) UnionWith(other Tree[V], combine func(a, b V) V) Tree[V] {
	switch {
	case t.root == nil:
		return other
	case other.root == nil:
		return t
	default:
		merged := mergeTrees(t.root, other.root, leafCombineOf(combine))
		return Tree[V]{root: merged}
	}
}

// IntersectWith returns the intersection of t and other. combine(a, b)
// resolves a key present in both trees, receiving t's value as a and
// other's as b.
func (t Tree[V]) IntersectWith(other Tree[V], combine func(a, b V) V) Tree[V] {
	switch {
	case t.root == nil:
		return Tree[V]{}
	case other.root == nil:
		return Tree[V]{}
	default:
		return Tree[V]{root: intersectTrees(t.root, other.root, leafCombineOf(combine))}
	}
}

// SubsetOf reports whether every key in t is also a key in other.
func (t Tree[V]) SubsetOf(other Tree[V]) bool {
	switch {
	case t.root == nil:
		return true
	case other.root == nil:
		return false
	default:
		return isSubsetOf(t.root, other.root)
	}
}

func leafCombineOf[V any](combine func(a, b V) V) leafCombine[V] {
	return func(left, right *node[V]) *node[V] {
		return newLeaf(left.key, combine(left.value, right.value))
	}
}

// Each calls visit for every (key, value) binding in post-order (left
// subtree, then right), stopping early if visit returns false.
func (t Tree[V]) Each(visit func(key bitvec.BitVec, value V) bool) {
	it := newIterator(t)
	for it.hasNext() {
		k, v := it.next()
		if !visit(k, v) {
			return
		}
	}
}

// Equal reports whether t and other contain exactly the same set of
// (key, value) pairs, using eq to compare values.
func (t Tree[V]) Equal(other Tree[V], eq func(a, b V) bool) bool {
	if t.Len() != other.Len() {
		return false
	}
	ok := true
	t.Each(func(k bitvec.BitVec, v V) bool {
		ov, found := other.Get(k)
		if !found || !eq(v, ov) {
			ok = false
			return false
		}
		return true
	})
	return ok
}

// iterator walks a Tree in post-order using an explicit stack of branch
// nodes whose right subtree has not yet been descended, mirroring the
// reference's PatriciaTreePostOrderIterator.
type iterator[V any] struct {
	stack   []*node[V]
	current *node[V]
}

func newIterator[V any](t Tree[V]) *iterator[V] {
	it := &iterator[V]{}
	if t.root != nil {
		it.descendToLeaf(t.root)
	}
	return it
}

func (it *iterator[V]) descendToLeaf(n *node[V]) {
	for !n.isLeaf {
		it.stack = append(it.stack, n)
		n = n.left
	}
	it.current = n
}

func (it *iterator[V]) hasNext() bool { return it.current != nil }

func (it *iterator[V]) next() (bitvec.BitVec, V) {
	cur := it.current
	it.current = nil
	if len(it.stack) > 0 {
		top := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]
		it.descendToLeaf(top.right)
	}
	return cur.key, cur.value
}
