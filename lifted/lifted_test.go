package lifted_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/latticeforge/absint/domain"
	"github.com/latticeforge/absint/lifted"
	"github.com/latticeforge/absint/powerset"
)

type intSetLattice = powerset.Lattice[powerset.HashSet[int64]]
type liftedIntSet = lifted.Domain[intSetLattice]

func TestBasicLiftOps(t *testing.T) {
	bottom := lifted.Bottom[intSetLattice]()
	value1 := lifted.Lift[intSetLattice](powerset.Value(powerset.NewHashSet[int64](1, 2, 3)))
	value2 := lifted.Lift[intSetLattice](powerset.Value(powerset.NewHashSet[int64](2, 3, 4)))

	assert.True(t, bottom.IsBottom())
	assert.False(t, value1.IsBottom())

	assert.True(t, bottom.LessEqual(value1))
	assert.False(t, value1.LessEqual(bottom))

	joined := value1.Join(value2)
	assert.False(t, joined.IsBottom())
	elems, ok := joined.Lowered().Elements()
	assert.True(t, ok)
	assert.True(t, elems.Equal(powerset.NewHashSet[int64](1, 2, 3, 4)))

	met := value1.Meet(value2)
	metElems, ok := met.Lowered().Elements()
	assert.True(t, ok)
	assert.True(t, metElems.Equal(powerset.NewHashSet[int64](2, 3)))

	assert.True(t, bottom.Join(value1).LessEqual(value1))
	assert.True(t, value1.LessEqual(bottom.Join(value1)))
	assert.True(t, bottom.Meet(value1).IsBottom())
}

func TestBottomLowered(t *testing.T) {
	bottom := lifted.Bottom[intSetLattice]()
	assert.Panics(t, func() {
		_ = bottom.Lowered()
	})
}

func TestBottomLoweredMut(t *testing.T) {
	bottom := lifted.Bottom[intSetLattice]()
	assert.Panics(t, func() {
		_ = bottom.LoweredMut()
	})
}

func TestBottomIntoLowered(t *testing.T) {
	bottom := lifted.Bottom[intSetLattice]()
	assert.Panics(t, func() {
		_ = bottom.IntoLowered()
	})
}

func TestLiftedSatisfiesLatticeLaws(t *testing.T) {
	underlyingTop := powerset.Top[powerset.HashSet[int64]]()
	bottom := lifted.Bottom[intSetLattice]()
	top := lifted.Top[intSetLattice](underlyingTop)

	samples := []liftedIntSet{
		lifted.Bottom[intSetLattice](),
		lifted.Lift[intSetLattice](powerset.Value(powerset.NewHashSet[int64]())),
		lifted.Lift[intSetLattice](powerset.Value(powerset.NewHashSet[int64](1, 2))),
		lifted.Lift[intSetLattice](powerset.Value(powerset.NewHashSet[int64](2, 3))),
		top,
	}

	for _, s := range samples {
		assert.True(t, bottom.LessEqual(s))
		assert.True(t, s.LessEqual(top))
	}

	var failures []string
	domain.CheckLaws[liftedIntSet](bottom, top, samples, func(msg string) {
		failures = append(failures, msg)
	})
	assert.Empty(t, failures)
}
