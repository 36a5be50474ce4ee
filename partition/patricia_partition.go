package partition

import (
	"github.com/latticeforge/absint/domain"
	"github.com/latticeforge/absint/patricia"
)

// Patricia is an abstract partition backed by a persistent Patricia
// tree map. The zero value is unusable; construct with BottomPatricia
// or TopPatricia.
type Patricia[K any, D domain.AbstractDomain[D]] struct {
	top bool
	m   patricia.Map[K, D]
	key patricia.Keyer[K]
}

// BottomPatricia returns the partition with no explicit bindings.
func BottomPatricia[K any, D domain.AbstractDomain[D]](key patricia.Keyer[K]) Patricia[K, D] {
	return Patricia[K, D]{m: patricia.NewMap[K, D](key), key: key}
}

// TopPatricia returns the absorbing Top partition.
func TopPatricia[K any, D domain.AbstractDomain[D]](key patricia.Keyer[K]) Patricia[K, D] {
	return Patricia[K, D]{top: true, key: key}
}

// IsBottom reports whether p has no explicit bindings.
func (p Patricia[K, D]) IsBottom() bool { return !p.top && p.m.IsEmpty() }

// IsTop reports whether p is the absorbing Top partition.
func (p Patricia[K, D]) IsTop() bool { return p.top }

// Len returns the number of explicit bindings. It panics on Top.
func (p Patricia[K, D]) Len() int {
	if p.top {
		panic("partition: Top has no length")
	}
	return p.m.Len()
}

// IsEmpty reports whether p has no explicit bindings, treating Top as
// non-empty.
func (p Patricia[K, D]) IsEmpty() bool { return !p.top && p.m.IsEmpty() }

// Get returns the value bound to label, or topOfD if p is Top, or
// bottomOfD if label has no explicit binding.
func (p Patricia[K, D]) Get(label K, bottomOfD, topOfD D) D {
	if p.top {
		return topOfD
	}
	if d, ok := p.m.Get(label); ok {
		return d
	}
	return bottomOfD
}

// Set binds label to value, dropping the binding if value is Bottom. A
// no-op if p is Top.
func (p *Patricia[K, D]) Set(label K, value D) {
	if p.top {
		return
	}
	if value.IsBottom() {
		p.m = p.m.Remove(label)
	} else {
		p.m = p.m.Insert(label, value)
	}
}

// Update applies op to the current binding of label (synthesizing
// Bottom if unbound), storing the result per Set's rule. A no-op if p
// is Top.
func (p *Patricia[K, D]) Update(label K, bottomOfD D, op func(D) D) {
	if p.top {
		return
	}
	current, ok := p.m.Get(label)
	if !ok {
		current = bottomOfD
	}
	p.Set(label, op(current))
}

// LessEqual delegates to Map.LessEqual with D's bottom as the implicit
// binding for labels missing from either side.
func (p Patricia[K, D]) LessEqual(other Patricia[K, D], bottomOfD D) bool {
	switch {
	case p.top:
		return other.top
	case other.top:
		return true
	}
	return p.m.LessEqual(other.m, bottomOfD, func(a, b D) bool { return a.LessEqual(b) })
}

// Join unions the two explicit-binding maps and joins pointwise; Top
// absorbs.
func (p Patricia[K, D]) Join(other Patricia[K, D]) Patricia[K, D] {
	return p.joinLike(other, func(a, b D) D { return a.Join(b) })
}

// Widen mirrors Join's structure, delegating pointwise to D.Widen.
func (p Patricia[K, D]) Widen(other Patricia[K, D]) Patricia[K, D] {
	return p.joinLike(other, func(a, b D) D { return a.Widen(b) })
}

// Meet intersects the two explicit-binding maps and meets pointwise;
// Top is the identity.
func (p Patricia[K, D]) Meet(other Patricia[K, D]) Patricia[K, D] {
	return p.meetLike(other, func(a, b D) D { return a.Meet(b) })
}

// Narrow mirrors Meet's structure, delegating pointwise to D.Narrow.
func (p Patricia[K, D]) Narrow(other Patricia[K, D]) Patricia[K, D] {
	return p.meetLike(other, func(a, b D) D { return a.Narrow(b) })
}

func (p Patricia[K, D]) joinLike(other Patricia[K, D], op func(a, b D) D) Patricia[K, D] {
	switch {
	case p.top:
		return p
	case other.top:
		return other
	}
	merged := p.m.UnionWith(other.m, func(s, t D) D { return op(s, t) })
	return Patricia[K, D]{m: merged, key: p.key}
}

func (p Patricia[K, D]) meetLike(other Patricia[K, D], op func(a, b D) D) Patricia[K, D] {
	switch {
	case p.top:
		return other
	case other.top:
		return p
	}
	merged := p.m.IntersectWith(other.m, func(s, t D) D { return op(s, t) })
	return Patricia[K, D]{m: merged, key: p.key}
}
