// Package partition implements the abstract partition domain: a map
// from labels to elements of a common abstract domain, denoting a union
// of properties.
//
// A partition uses an implicit-Bottom binding convention: a label absent
// from the underlying map is implicitly bound to D's Bottom, the
// opposite convention from package environment. The Top partition is
// absorbing — its labels cannot be rebound to anything but Top, which
// keeps Set/Update trivial once Top is reached.
package partition

import "github.com/latticeforge/absint/domain"

// HashMap is an abstract partition backed by a Go map, mirroring the
// reference's HashMapAbstractPartition. The zero value is Bottom (the
// empty map), not Top.
type HashMap[L comparable, D domain.AbstractDomain[D]] struct {
	top      bool
	bindings map[L]D
}

// Bottom returns the partition with no explicit bindings (all labels
// implicitly Bottom).
func Bottom[L comparable, D domain.AbstractDomain[D]]() HashMap[L, D] {
	return HashMap[L, D]{bindings: make(map[L]D)}
}

// Top returns the absorbing partition.
func Top[L comparable, D domain.AbstractDomain[D]]() HashMap[L, D] {
	return HashMap[L, D]{top: true}
}

// IsBottom reports whether p has no explicit bindings.
func (p HashMap[L, D]) IsBottom() bool { return !p.top && len(p.bindings) == 0 }

// IsTop reports whether p is the absorbing Top partition.
func (p HashMap[L, D]) IsTop() bool { return p.top }

// Len returns the number of explicit bindings. It panics on Top, which
// has no meaningful length.
func (p HashMap[L, D]) Len() int {
	if p.top {
		panic("partition: Top has no length")
	}
	return len(p.bindings)
}

// IsEmpty reports whether p has no explicit bindings, treating Top as
// non-empty (it binds every label to Top).
func (p HashMap[L, D]) IsEmpty() bool { return !p.top && len(p.bindings) == 0 }

// Bindings returns the explicit bindings map and true, or (nil, false)
// if p is Top.
func (p HashMap[L, D]) Bindings() (map[L]D, bool) {
	if p.top {
		return nil, false
	}
	return p.bindings, true
}

// Get returns the value bound to label, or topOfD if p is Top, or
// bottomOfD if label has no explicit binding.
func (p HashMap[L, D]) Get(label L, bottomOfD, topOfD D) D {
	if p.top {
		return topOfD
	}
	if d, ok := p.bindings[label]; ok {
		return d
	}
	return bottomOfD
}

// Set binds label to value, dropping the binding (falling back to
// implicit Bottom) if value is Bottom. A no-op if p is Top.
func (p *HashMap[L, D]) Set(label L, value D) {
	if p.top {
		return
	}
	if value.IsBottom() {
		delete(p.bindings, label)
	} else {
		if p.bindings == nil {
			p.bindings = make(map[L]D)
		}
		p.bindings[label] = value
	}
}

// Update applies op to the current binding of label (synthesizing
// Bottom if unbound), storing the result unless it is Bottom. A no-op
// if p is Top.
func (p *HashMap[L, D]) Update(label L, bottomOfD D, op func(D) D) {
	if p.top {
		return
	}
	current, ok := p.bindings[label]
	if !ok {
		current = bottomOfD
	}
	p.Set(label, op(current))
}

// LessEqual implements the pointwise order: Top is greatest, and
// otherwise every explicit binding on the left must be leq the
// corresponding (explicit or implicit-Bottom) binding on the right.
func (p HashMap[L, D]) LessEqual(other HashMap[L, D]) bool {
	switch {
	case p.top:
		return other.top
	case other.top:
		return true
	}
	if len(p.bindings) > len(other.bindings) {
		return false
	}
	for k, lv := range p.bindings {
		rv, ok := other.bindings[k]
		if !ok {
			return false
		}
		if !lv.LessEqual(rv) {
			return false
		}
	}
	return true
}

// Join computes the pointwise join over the union of both sides'
// explicit bindings; Top absorbs.
func (p HashMap[L, D]) Join(other HashMap[L, D]) HashMap[L, D] {
	return p.joinLike(other, func(a, b D) D { return a.Join(b) })
}

// Widen mirrors Join's structure, delegating pointwise to D.Widen.
func (p HashMap[L, D]) Widen(other HashMap[L, D]) HashMap[L, D] {
	return p.joinLike(other, func(a, b D) D { return a.Widen(b) })
}

// Meet computes the pointwise meet, restricted to labels bound
// explicitly on both sides; Top is the identity.
func (p HashMap[L, D]) Meet(other HashMap[L, D]) HashMap[L, D] {
	return p.meetLike(other, func(a, b D) D { return a.Meet(b) })
}

// Narrow mirrors Meet's structure, delegating pointwise to D.Narrow.
func (p HashMap[L, D]) Narrow(other HashMap[L, D]) HashMap[L, D] {
	return p.meetLike(other, func(a, b D) D { return a.Narrow(b) })
}

func (p HashMap[L, D]) joinLike(other HashMap[L, D], op func(a, b D) D) HashMap[L, D] {
	switch {
	case p.top:
		return p
	case other.top:
		return other
	}
	out := make(map[L]D, len(p.bindings)+len(other.bindings))
	for k, lv := range p.bindings {
		out[k] = lv
	}
	for k, rv := range other.bindings {
		if lv, ok := out[k]; ok {
			out[k] = op(lv, rv)
		} else {
			out[k] = rv
		}
	}
	return HashMap[L, D]{bindings: out}
}

func (p HashMap[L, D]) meetLike(other HashMap[L, D], op func(a, b D) D) HashMap[L, D] {
	switch {
	case p.top:
		return other
	case other.top:
		return p
	}
	out := make(map[L]D, len(p.bindings))
	for k, lv := range p.bindings {
		if rv, ok := other.bindings[k]; ok {
			combined := op(lv, rv)
			if !combined.IsBottom() {
				out[k] = combined
			}
		}
	}
	return HashMap[L, D]{bindings: out}
}
