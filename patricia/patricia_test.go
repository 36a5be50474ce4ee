package patricia_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticeforge/absint/bitvec"
	"github.com/latticeforge/absint/patricia"
)

func intKey(v int) bitvec.BitVec { return bitvec.FromUint64(uint64(v), 32) }

func TestInsertGetRoundTrips(t *testing.T) {
	var tr patricia.Tree[string]
	tr = tr.Insert(intKey(1), "one")
	tr = tr.Insert(intKey(22), "twenty-two")
	tr = tr.Insert(intKey(42), "forty-two")
	tr = tr.Insert(intKey(13), "thirteen")

	v, ok := tr.Get(intKey(1))
	require.True(t, ok)
	assert.Equal(t, "one", v)

	_, ok = tr.Get(intKey(2))
	assert.False(t, ok)

	assert.Equal(t, 4, tr.Len())
}

func TestInsertExistingKeyReplaces(t *testing.T) {
	var tr patricia.Tree[int]
	tr = tr.Insert(intKey(5), 1)
	tr = tr.Insert(intKey(5), 2)
	assert.Equal(t, 1, tr.Len())
	v, _ := tr.Get(intKey(5))
	assert.Equal(t, 2, v)
}

func TestCloneIsIndependent(t *testing.T) {
	var tr patricia.Tree[int]
	tr = tr.Insert(intKey(1), 1)
	clone := tr
	clone = clone.Insert(intKey(2), 2)

	assert.Equal(t, 1, tr.Len())
	assert.Equal(t, 2, clone.Len())
	assert.True(t, tr.ContainsKey(intKey(1)))
	assert.False(t, tr.ContainsKey(intKey(2)))
}

func TestRemove(t *testing.T) {
	var tr patricia.Tree[int]
	for _, k := range []int{1, 22, 42, 13, 55} {
		tr = tr.Insert(intKey(k), k)
	}
	tr = tr.Remove(intKey(1))
	assert.False(t, tr.ContainsKey(intKey(1)))
	assert.Equal(t, 4, tr.Len())

	// removing an absent key is a no-op
	tr2 := tr.Remove(intKey(1))
	assert.Equal(t, 4, tr2.Len())
}

func TestUnionWith(t *testing.T) {
	var a, b patricia.Tree[int]
	a = a.Insert(intKey(1), 10).Insert(intKey(2), 20)
	b = b.Insert(intKey(2), 200).Insert(intKey(3), 30)

	u := a.UnionWith(b, func(x, y int) int { return x + y })
	assert.Equal(t, 3, u.Len())
	v, _ := u.Get(intKey(2))
	assert.Equal(t, 220, v)
	v, _ = u.Get(intKey(1))
	assert.Equal(t, 10, v)
}

func TestIntersectWith(t *testing.T) {
	var a, b patricia.Tree[int]
	a = a.Insert(intKey(1), 10).Insert(intKey(2), 20)
	b = b.Insert(intKey(2), 200).Insert(intKey(3), 30)

	i := a.IntersectWith(b, func(x, y int) int { return x + y })
	assert.Equal(t, 1, i.Len())
	v, ok := i.Get(intKey(2))
	require.True(t, ok)
	assert.Equal(t, 220, v)
}

func TestSubsetOf(t *testing.T) {
	var a, b patricia.Tree[int]
	a = a.Insert(intKey(1), 1)
	b = b.Insert(intKey(1), 1).Insert(intKey(2), 2)

	assert.True(t, a.SubsetOf(b))
	assert.False(t, b.SubsetOf(a))

	// equal trees: share structure, short-circuits on pointer identity
	assert.True(t, a.SubsetOf(a))
}

func TestEqual(t *testing.T) {
	var a, b patricia.Tree[int]
	a = a.Insert(intKey(1), 1).Insert(intKey(2), 2)
	b = b.Insert(intKey(2), 2).Insert(intKey(1), 1)
	assert.True(t, a.Equal(b, func(x, y int) bool { return x == y }))

	b = b.Insert(intKey(1), 99)
	assert.False(t, a.Equal(b, func(x, y int) bool { return x == y }))
}

func TestEachVisitsAllLeaves(t *testing.T) {
	var tr patricia.Tree[int]
	want := map[int]bool{}
	for _, k := range []int{1, 22, 42, 13, 55, 7, 1000} {
		tr = tr.Insert(intKey(k), k)
		want[k] = true
	}
	got := map[int]bool{}
	tr.Each(func(_ bitvec.BitVec, v int) bool {
		got[v] = true
		return true
	})
	assert.Equal(t, want, got)
}

func TestRandomizedInsertGetRemove(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	var tr patricia.Tree[int]
	present := map[int]int{}

	for i := 0; i < 2000; i++ {
		k := rng.Intn(500)
		v := rng.Int()
		tr = tr.Insert(intKey(k), v)
		present[k] = v
	}
	for k, v := range present {
		got, ok := tr.Get(intKey(k))
		require.True(t, ok)
		assert.Equal(t, v, got)
	}
	assert.Equal(t, len(present), tr.Len())

	for k := range present {
		tr = tr.Remove(intKey(k))
		assert.False(t, tr.ContainsKey(intKey(k)))
	}
	assert.Equal(t, 0, tr.Len())
}

func TestMapAndSet(t *testing.T) {
	m := patricia.NewMap[int, string](intKey)
	m = m.Insert(1, "a").Insert(2, "b")
	v, ok := m.Get(1)
	require.True(t, ok)
	assert.Equal(t, "a", v)
	assert.Equal(t, 2, m.Len())

	s := patricia.NewSet[int](intKey)
	s = s.Insert(1).Insert(2).Insert(3)
	assert.True(t, s.Contains(2))
	assert.Equal(t, 3, s.Len())

	seen := map[int]bool{}
	s.Each(func(k int) bool { seen[k] = true; return true })
	assert.Equal(t, map[int]bool{1: true, 2: true, 3: true}, seen)
}

func TestMapLessEqual(t *testing.T) {
	const top = -1
	leq := func(a, b int) bool {
		if b == top {
			return true
		}
		if a == top {
			return false
		}
		return a <= b
	}

	m1 := patricia.NewMap[int, int](intKey).Insert(1, 5)
	m2 := patricia.NewMap[int, int](intKey).Insert(1, 10).Insert(2, 3)

	// m2 binds key 2 explicitly while m1 leaves it at the implicit top,
	// so neither map is below the other.
	assert.False(t, m1.LessEqual(m2, top, leq))
	assert.False(t, m2.LessEqual(m1, top, leq))
}
