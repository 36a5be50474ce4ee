// Package environment implements the abstract environment domain: a map
// from program variables to a common abstract domain D.
//
// An environment uses an implicit-Top binding convention: a variable
// absent from the underlying map is implicitly bound to D's Top. This
// keeps the map sparse — only variables whose value is strictly more
// precise than Top are stored explicitly. Binding a variable to Bottom
// collapses the entire environment to Bottom, since no concrete program
// state can satisfy an unsatisfiable binding for any one variable.
package environment

import "github.com/latticeforge/absint/domain"

// HashMap is an abstract environment backed by a Go map, mirroring the
// reference's HashMapAbstractEnvironment. The zero value is Bottom: the
// nonBottom flag (rather than a bottom flag) carries the Bottom/non-Bottom
// distinction precisely so the zero value falls out as Bottom, the
// opposite polarity from package partition's top flag.
type HashMap[V comparable, D domain.AbstractDomain[D]] struct {
	nonBottom bool
	bindings  map[V]D
}

// Bottom returns the unsatisfiable environment.
func Bottom[V comparable, D domain.AbstractDomain[D]]() HashMap[V, D] {
	return HashMap[V, D]{}
}

// Top returns the environment binding every variable implicitly to
// D's Top (the empty map).
func Top[V comparable, D domain.AbstractDomain[D]]() HashMap[V, D] {
	return HashMap[V, D]{nonBottom: true, bindings: make(map[V]D)}
}

// IsBottom reports whether e is Bottom.
func (e HashMap[V, D]) IsBottom() bool { return !e.nonBottom }

// IsTop reports whether e has no explicit bindings.
func (e HashMap[V, D]) IsTop() bool { return e.nonBottom && len(e.bindings) == 0 }

// Len returns the number of explicit bindings. It panics on Bottom,
// which has no meaningful length.
func (e HashMap[V, D]) Len() int {
	if !e.nonBottom {
		panic("environment: Bottom has no length")
	}
	return len(e.bindings)
}

// IsEmpty reports whether e has no explicit bindings, treating Bottom
// as empty.
func (e HashMap[V, D]) IsEmpty() bool { return !e.nonBottom || len(e.bindings) == 0 }

// Bindings returns the explicit bindings map and true, or (nil, false)
// if e is Bottom.
func (e HashMap[V, D]) Bindings() (map[V]D, bool) {
	if !e.nonBottom {
		return nil, false
	}
	return e.bindings, true
}

// Get returns the value bound to variable, topOfD when variable has no
// explicit binding, or bottomOfD when e is Bottom. Callers pass D's
// bottom and top explicitly since Go generics cannot synthesize a D
// value without one.
func (e HashMap[V, D]) Get(variable V, bottomOfD, topOfD D) D {
	if !e.nonBottom {
		return bottomOfD
	}
	if d, ok := e.bindings[variable]; ok {
		return d
	}
	return topOfD
}

// Set binds variable to value, collapsing e to Bottom if value is
// Bottom, or clearing any explicit binding if value is Top. A no-op on
// an already-Bottom environment.
func (e *HashMap[V, D]) Set(variable V, value D) {
	if !e.nonBottom {
		return
	}
	switch {
	case value.IsTop():
		delete(e.bindings, variable)
	case value.IsBottom():
		e.nonBottom = false
		e.bindings = nil
	default:
		e.bindings[variable] = value
	}
}

// Update applies op to the current binding of variable (synthesizing
// Top if unbound), then re-applies the Top/Bottom collapsing rule. A
// no-op on an already-Bottom environment.
func (e *HashMap[V, D]) Update(variable V, topOfD D, op func(D) D) {
	if !e.nonBottom {
		return
	}
	current, ok := e.bindings[variable]
	if !ok {
		current = topOfD
	}
	updated := op(current)
	e.Set(variable, updated)
}

// LessEqual implements the pointwise order: Bottom is least; otherwise
// every explicit binding on the left must be leq the corresponding
// (explicit or implicit-Top) binding on the right, and every variable
// explicit on the right must also be explicit (or equal) on the left.
func (e HashMap[V, D]) LessEqual(other HashMap[V, D]) bool {
	switch {
	case !e.nonBottom:
		return true
	case !other.nonBottom:
		return false
	}
	if len(e.bindings) < len(other.bindings) {
		return false
	}
	for k, lv := range e.bindings {
		if rv, ok := other.bindings[k]; ok {
			if !lv.LessEqual(rv) {
				return false
			}
		}
	}
	for k := range other.bindings {
		if _, ok := e.bindings[k]; !ok {
			return false
		}
	}
	return true
}

// Join computes the pointwise join, restricted (per the implicit-Top
// convention) to variables bound explicitly on both sides.
func (e HashMap[V, D]) Join(other HashMap[V, D]) HashMap[V, D] {
	return e.combine(other, func(a, b D) D { return a.Join(b) }, true)
}

// Meet computes the pointwise meet over the union of both sides'
// explicit bindings.
func (e HashMap[V, D]) Meet(other HashMap[V, D]) HashMap[V, D] {
	return e.combine(other, func(a, b D) D { return a.Meet(b) }, false)
}

// Widen computes the pointwise widen, restricted to variables bound on
// both sides (mirrors Join's structure).
func (e HashMap[V, D]) Widen(other HashMap[V, D]) HashMap[V, D] {
	return e.combine(other, func(a, b D) D { return a.Widen(b) }, true)
}

// Narrow computes the pointwise narrow over the union of both sides'
// explicit bindings (mirrors Meet's structure).
func (e HashMap[V, D]) Narrow(other HashMap[V, D]) HashMap[V, D] {
	return e.combine(other, func(a, b D) D { return a.Narrow(b) }, false)
}

// combine implements both the join-like case (restrictToCommon=true,
// Bottom is identity) and the meet-like case (restrictToCommon=false,
// Bottom absorbs) through one shared helper.
func (e HashMap[V, D]) combine(other HashMap[V, D], op func(a, b D) D, restrictToCommon bool) HashMap[V, D] {
	switch {
	case !e.nonBottom:
		if restrictToCommon {
			return other
		}
		return e
	case !other.nonBottom:
		if restrictToCommon {
			return e
		}
		return other
	}

	out := make(map[V]D, len(e.bindings))
	if restrictToCommon {
		for k, lv := range e.bindings {
			if rv, ok := other.bindings[k]; ok {
				combined := op(lv, rv)
				if !combined.IsTop() {
					out[k] = combined
				}
			}
		}
		return HashMap[V, D]{nonBottom: true, bindings: out}
	}

	for k, lv := range e.bindings {
		out[k] = lv
	}
	for k, rv := range other.bindings {
		if lv, ok := out[k]; ok {
			combined := op(lv, rv)
			if combined.IsBottom() {
				return HashMap[V, D]{}
			}
			out[k] = combined
		} else {
			out[k] = rv
		}
	}
	return HashMap[V, D]{nonBottom: true, bindings: out}
}
