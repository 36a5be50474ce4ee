package environment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/latticeforge/absint/environment"
	"github.com/latticeforge/absint/powerset"
)

type intSetLattice = powerset.Lattice[powerset.HashSet[int64]]
type hashEnv = environment.HashMap[string, intSetLattice]

func setL(vals ...int64) intSetLattice {
	return powerset.Value(powerset.NewHashSet[int64](vals...))
}

func TestHashMapImplicitTopBinding(t *testing.T) {
	top := environment.Top[string, intSetLattice]()
	assert.True(t, top.IsTop())
	assert.Equal(t, 0, top.Len())

	bottomOfD := powerset.Bottom[powerset.HashSet[int64]]()
	topOfD := powerset.Top[powerset.HashSet[int64]]()
	assert.True(t, top.Get("x", bottomOfD, topOfD).IsTop())
}

func TestHashMapSetTopRemovesBinding(t *testing.T) {
	env := environment.Top[string, intSetLattice]()
	env.Set("x", setL(1, 2))
	assert.Equal(t, 1, env.Len())

	topOfD := powerset.Top[powerset.HashSet[int64]]()
	env.Set("x", topOfD)
	assert.True(t, env.IsTop())
}

func TestHashMapSetBottomCollapsesEnvironment(t *testing.T) {
	env := environment.Top[string, intSetLattice]()
	env.Set("x", setL(1))
	env.Set("y", powerset.Bottom[powerset.HashSet[int64]]())
	assert.True(t, env.IsBottom())
}

func TestHashMapUpdate(t *testing.T) {
	env := environment.Top[string, intSetLattice]()
	topOfD := powerset.Top[powerset.HashSet[int64]]()
	env.Update("x", topOfD, func(d intSetLattice) intSetLattice {
		return d.Meet(setL(1, 2, 3))
	})
	bottomOfD := powerset.Bottom[powerset.HashSet[int64]]()
	got := env.Get("x", bottomOfD, topOfD)
	elems, ok := got.Elements()
	assert.True(t, ok)
	assert.True(t, elems.Equal(powerset.NewHashSet[int64](1, 2, 3)))
}

func TestHashMapLessEqual(t *testing.T) {
	bottom := environment.Bottom[string, intSetLattice]()
	top := environment.Top[string, intSetLattice]()
	assert.True(t, bottom.LessEqual(top))
	assert.False(t, top.LessEqual(bottom))

	a := environment.Top[string, intSetLattice]()
	a.Set("x", setL(1, 2))
	b := environment.Top[string, intSetLattice]()
	b.Set("x", setL(1, 2, 3))
	assert.True(t, a.LessEqual(b))
	assert.False(t, b.LessEqual(a))
}

func TestHashMapJoinAndMeet(t *testing.T) {
	a := environment.Top[string, intSetLattice]()
	a.Set("x", setL(1, 2))
	a.Set("y", setL(9))

	b := environment.Top[string, intSetLattice]()
	b.Set("x", setL(2, 3))

	joined := a.Join(b)
	bottomOfD := powerset.Bottom[powerset.HashSet[int64]]()
	topOfD := powerset.Top[powerset.HashSet[int64]]()
	xj := joined.Get("x", bottomOfD, topOfD)
	elems, ok := xj.Elements()
	assert.True(t, ok)
	assert.True(t, elems.Equal(powerset.NewHashSet[int64](1, 2, 3)))
	// y was only bound on the left, so join (restricted to common vars)
	// leaves it implicitly Top.
	assert.True(t, joined.Get("y", bottomOfD, topOfD).IsTop())

	met := a.Meet(b)
	xm := met.Get("x", bottomOfD, topOfD)
	melems, ok := xm.Elements()
	assert.True(t, ok)
	assert.True(t, melems.Equal(powerset.NewHashSet[int64](2)))
	ym := met.Get("y", bottomOfD, topOfD)
	yelems, ok := ym.Elements()
	assert.True(t, ok)
	assert.True(t, yelems.Equal(powerset.NewHashSet[int64](9)))
}
