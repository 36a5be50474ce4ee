// Package lifted injects a strict new bottom below an existing
// AbstractDomain D. D's own bottom becomes a non-bottom (but still
// minimal among non-Bottom) element of the lifted domain.
package lifted

import "github.com/latticeforge/absint/domain"

// Domain is D, lifted with a new strict bottom. The zero value is
// Bottom.
type Domain[D domain.AbstractDomain[D]] struct {
	lifted bool
	value  D
}

// Bottom returns the new strict bottom, strictly below every lifted
// value, including D's own bottom.
func Bottom[D domain.AbstractDomain[D]]() Domain[D] {
	return Domain[D]{}
}

// Lift wraps an underlying D value.
func Lift[D domain.AbstractDomain[D]](underlying D) Domain[D] {
	return Domain[D]{lifted: true, value: underlying}
}

// Top returns Lift(D's own Top). Unlike Bottom, the lifted domain has a
// single greatest element coinciding with the underlying domain's top.
func Top[D domain.AbstractDomain[D]](underlyingTop D) Domain[D] {
	return Lift[D](underlyingTop)
}

// IsBottom reports whether d is the strict new bottom (not D's own
// bottom, which is lifted and thus IsBottom()==false).
func (d Domain[D]) IsBottom() bool { return !d.lifted }

// IsLifted reports whether d wraps an underlying D value.
func (d Domain[D]) IsLifted() bool { return d.lifted }

// IsTop reports whether d is a lifted D that is itself top.
func (d Domain[D]) IsTop() bool { return d.lifted && d.value.IsTop() }

// Lowered returns the wrapped D value. It panics if d is Bottom.
func (d Domain[D]) Lowered() D {
	if !d.lifted {
		panic("lifted: value is Bottom and cannot be lowered")
	}
	return d.value
}

// LoweredMut returns a pointer to the wrapped D value for in-place
// mutation by the caller. It panics if d is Bottom.
func (d *Domain[D]) LoweredMut() *D {
	if !d.lifted {
		panic("lifted: value is Bottom and cannot be lowered")
	}
	return &d.value
}

// IntoLowered consumes d and returns the wrapped D value. It panics if d
// is Bottom.
func (d Domain[D]) IntoLowered() D {
	return d.Lowered()
}

// LessEqual orders Bottom strictly below everything; two lifted values
// compare via the underlying domain's LessEqual.
func (d Domain[D]) LessEqual(other Domain[D]) bool {
	switch {
	case !d.lifted:
		return true
	case !other.lifted:
		return false
	default:
		return d.value.LessEqual(other.value)
	}
}

// Join treats Bottom as the identity, otherwise delegates to D.Join.
func (d Domain[D]) Join(other Domain[D]) Domain[D] {
	switch {
	case !d.lifted:
		return other
	case !other.lifted:
		return d
	default:
		return Lift[D](d.value.Join(other.value))
	}
}

// Meet lifts meet_with: Bottom absorbs, otherwise delegates to D.Meet.
func (d Domain[D]) Meet(other Domain[D]) Domain[D] {
	switch {
	case !d.lifted:
		return d
	case !other.lifted:
		return other
	default:
		return Lift[D](d.value.Meet(other.value))
	}
}

// Widen mirrors Join's structure, delegating to D.Widen when both sides
// are lifted.
func (d Domain[D]) Widen(other Domain[D]) Domain[D] {
	switch {
	case !d.lifted:
		return other
	case !other.lifted:
		return d
	default:
		return Lift[D](d.value.Widen(other.value))
	}
}

// Narrow mirrors Meet's structure, delegating to D.Narrow when both
// sides are lifted.
func (d Domain[D]) Narrow(other Domain[D]) Domain[D] {
	switch {
	case !d.lifted:
		return d
	case !other.lifted:
		return other
	default:
		return Lift[D](d.value.Narrow(other.value))
	}
}
