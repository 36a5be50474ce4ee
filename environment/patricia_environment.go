package environment

import (
	"github.com/latticeforge/absint/domain"
	"github.com/latticeforge/absint/patricia"
)

// Patricia is an abstract environment backed by a persistent Patricia
// tree map. Structural sharing between successive Set/Update calls
// makes this the preferred environment representation for variables
// keyed by dense integer ids (register numbers, SSA names) in hot
// fixpoint loops. The zero value is Bottom: the nonBottom flag (rather
// than a bottom flag) carries the distinction precisely so the zero
// value falls out as Bottom, mirroring package environment's HashMap.
type Patricia[K any, D domain.AbstractDomain[D]] struct {
	nonBottom bool
	m         patricia.Map[K, D]
	key       patricia.Keyer[K]
}

// BottomPatricia returns the unsatisfiable environment keyed by key.
func BottomPatricia[K any, D domain.AbstractDomain[D]](key patricia.Keyer[K]) Patricia[K, D] {
	return Patricia[K, D]{key: key}
}

// TopPatricia returns the environment binding every variable implicitly
// to D's Top (the empty map).
func TopPatricia[K any, D domain.AbstractDomain[D]](key patricia.Keyer[K]) Patricia[K, D] {
	return Patricia[K, D]{nonBottom: true, m: patricia.NewMap[K, D](key), key: key}
}

// IsBottom reports whether e is Bottom.
func (e Patricia[K, D]) IsBottom() bool { return !e.nonBottom }

// IsTop reports whether e has no explicit bindings.
func (e Patricia[K, D]) IsTop() bool { return e.nonBottom && e.m.IsEmpty() }

// Len returns the number of explicit bindings. It panics on Bottom.
func (e Patricia[K, D]) Len() int {
	if !e.nonBottom {
		panic("environment: Bottom has no length")
	}
	return e.m.Len()
}

// IsEmpty reports whether e has no explicit bindings, treating Bottom
// as empty.
func (e Patricia[K, D]) IsEmpty() bool { return !e.nonBottom || e.m.IsEmpty() }

// Get returns the value bound to variable, or topOfD if unbound, or
// bottomOfD if e is Bottom.
func (e Patricia[K, D]) Get(variable K, bottomOfD, topOfD D) D {
	if !e.nonBottom {
		return bottomOfD
	}
	if d, ok := e.m.Get(variable); ok {
		return d
	}
	return topOfD
}

// Set binds variable to value, applying the same Top/Bottom collapsing
// rule as HashMap.Set.
func (e *Patricia[K, D]) Set(variable K, value D) {
	if !e.nonBottom {
		return
	}
	switch {
	case value.IsTop():
		e.m = e.m.Remove(variable)
	case value.IsBottom():
		e.nonBottom = false
	default:
		e.m = e.m.Insert(variable, value)
	}
}

// Update applies op to the current binding of variable (synthesizing
// Top if unbound), then re-applies Set's collapsing rule.
func (e *Patricia[K, D]) Update(variable K, topOfD D, op func(D) D) {
	if !e.nonBottom {
		return
	}
	current, ok := e.m.Get(variable)
	if !ok {
		current = topOfD
	}
	e.Set(variable, op(current))
}

// LessEqual delegates to Map.LessEqual with D's top as the implicit
// binding for variables missing from either side.
func (e Patricia[K, D]) LessEqual(other Patricia[K, D], topOfD D) bool {
	switch {
	case !e.nonBottom:
		return true
	case !other.nonBottom:
		return false
	}
	return e.m.LessEqual(other.m, topOfD, func(a, b D) bool { return a.LessEqual(b) })
}

// Join intersects the two explicit-binding maps and joins pointwise,
// dropping any result that collapses back to Top.
func (e Patricia[K, D]) Join(other Patricia[K, D]) Patricia[K, D] {
	return e.joinLike(other, func(a, b D) D { return a.Join(b) })
}

// Widen mirrors Join's structure, delegating pointwise to D.Widen.
func (e Patricia[K, D]) Widen(other Patricia[K, D]) Patricia[K, D] {
	return e.joinLike(other, func(a, b D) D { return a.Widen(b) })
}

// Meet unions the two explicit-binding maps and meets pointwise,
// collapsing to Bottom if any combined binding becomes Bottom.
func (e Patricia[K, D]) Meet(other Patricia[K, D]) Patricia[K, D] {
	return e.meetLike(other, func(a, b D) D { return a.Meet(b) })
}

// Narrow mirrors Meet's structure, delegating pointwise to D.Narrow.
func (e Patricia[K, D]) Narrow(other Patricia[K, D]) Patricia[K, D] {
	return e.meetLike(other, func(a, b D) D { return a.Narrow(b) })
}

func (e Patricia[K, D]) joinLike(other Patricia[K, D], op func(a, b D) D) Patricia[K, D] {
	switch {
	case !e.nonBottom:
		return other
	case !other.nonBottom:
		return e
	}
	merged := e.m.IntersectWith(other.m, func(s, t D) D { return op(s, t) })
	out := merged
	merged.Each(func(k K, v D) bool {
		if v.IsTop() {
			out = out.Remove(k)
		}
		return true
	})
	return Patricia[K, D]{nonBottom: true, m: out, key: e.key}
}

func (e Patricia[K, D]) meetLike(other Patricia[K, D], op func(a, b D) D) Patricia[K, D] {
	switch {
	case !e.nonBottom:
		return e
	case !other.nonBottom:
		return other
	}
	merged := e.m.UnionWith(other.m, func(s, t D) D { return op(s, t) })
	collapsed := false
	merged.Each(func(_ K, v D) bool {
		if v.IsBottom() {
			collapsed = true
			return false
		}
		return true
	})
	if collapsed {
		return Patricia[K, D]{key: e.key}
	}
	return Patricia[K, D]{nonBottom: true, m: merged, key: e.key}
}
