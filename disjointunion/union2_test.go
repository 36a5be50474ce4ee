package disjointunion_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/latticeforge/absint/disjointunion"
	"github.com/latticeforge/absint/powerset"
)

type intSet = powerset.Lattice[powerset.HashSet[int64]]
type myUnion = disjointunion.Union2[intSet, intSet]

func hs(vals ...int64) intSet {
	return powerset.Value(powerset.NewHashSet[int64](vals...))
}

func TestBasicUnionTopBottomLessEqual(t *testing.T) {
	top := disjointunion.Top2[intSet, intSet]()
	bot := disjointunion.Bottom2[intSet, intSet]()
	assert.True(t, top.IsTop())
	assert.True(t, disjointunion.Second[intSet, intSet](powerset.Top[powerset.HashSet[int64]]()).IsTop())
	assert.True(t, disjointunion.Second[intSet, intSet](powerset.Bottom[powerset.HashSet[int64]]()).IsBottom())

	assert.True(t, bot.LessEqual(top))

	hsdom1 := hs(1, 2)
	hsdom2 := hs(1, 2, 3)
	assert.True(t, hsdom1.LessEqual(hsdom2))
	assert.True(t, disjointunion.First[intSet, intSet](hsdom1).LessEqual(disjointunion.First[intSet, intSet](hsdom2)))
}

func TestDiffArmsNoLessEqual(t *testing.T) {
	mudom1 := disjointunion.First[intSet, intSet](hs(1, 2))
	mudom2 := disjointunion.Second[intSet, intSet](hs(1, 2, 3))

	assert.False(t, mudom1.LessEqual(mudom2))
	assert.False(t, mudom2.LessEqual(mudom1))
}

func TestJoinSameArm(t *testing.T) {
	mudom1 := disjointunion.First[intSet, intSet](hs(1, 2))
	mudom2 := disjointunion.First[intSet, intSet](hs(2, 3))

	joined := mudom1.Join(mudom2)
	inner, ok := joined.FirstValue()
	assert.True(t, ok)
	elems, ok := inner.Elements()
	assert.True(t, ok)
	assert.True(t, elems.Equal(powerset.NewHashSet[int64](1, 2, 3)))
}

func TestMeetSameArm(t *testing.T) {
	mudom1 := disjointunion.First[intSet, intSet](hs(1, 2))
	mudom2 := disjointunion.First[intSet, intSet](hs(2, 3))

	met := mudom1.Meet(mudom2)
	inner, ok := met.FirstValue()
	assert.True(t, ok)
	elems, ok := inner.Elements()
	assert.True(t, ok)
	assert.True(t, elems.Equal(powerset.NewHashSet[int64](2)))
}

func TestJoinDiffArm(t *testing.T) {
	mudom1 := disjointunion.First[intSet, intSet](hs(1, 2))
	mudom2 := disjointunion.Second[intSet, intSet](hs(2, 3))

	assert.True(t, mudom1.Join(mudom2).IsTop())
}

func TestMeetDiffArm(t *testing.T) {
	mudom1 := disjointunion.First[intSet, intSet](hs(1, 2))
	mudom2 := disjointunion.Second[intSet, intSet](hs(2, 3))

	assert.True(t, mudom1.Meet(mudom2).IsBottom())
}
