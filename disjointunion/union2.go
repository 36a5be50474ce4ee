// Package disjointunion implements the disjoint-union abstract domain:
// a tagged sum of two or three independent abstract domains, where
// values from different arms are incomparable (their join is Top, their
// meet is Bottom).
//
// Go has no generic derive facility, so Union2/Union3 are hand-written
// generic tagged sums covering the 2- and 3-arm cases.
package disjointunion

import "github.com/latticeforge/absint/domain"

type tag2 int

const (
	tag2Bottom tag2 = iota
	tag2Top
	tag2First
	tag2Second
)

// Union2 is a disjoint union of two abstract domains A and B. Besides
// the First/Second arms, it carries its own canonical Top and Bottom
// states that are not tied to either arm — the values returned by
// Bottom2/Top2. The zero value is Bottom.
type Union2[A domain.AbstractDomain[A], B domain.AbstractDomain[B]] struct {
	t      tag2
	first  A
	second B
}

// Bottom2 returns the canonical least element.
func Bottom2[A domain.AbstractDomain[A], B domain.AbstractDomain[B]]() Union2[A, B] {
	return Union2[A, B]{t: tag2Bottom}
}

// Top2 returns the canonical greatest element.
func Top2[A domain.AbstractDomain[A], B domain.AbstractDomain[B]]() Union2[A, B] {
	return Union2[A, B]{t: tag2Top}
}

// First wraps a value from the first arm.
func First[A domain.AbstractDomain[A], B domain.AbstractDomain[B]](a A) Union2[A, B] {
	return Union2[A, B]{t: tag2First, first: a}
}

// Second wraps a value from the second arm.
func Second[A domain.AbstractDomain[A], B domain.AbstractDomain[B]](b B) Union2[A, B] {
	return Union2[A, B]{t: tag2Second, second: b}
}

// IsBottom reports whether u is the canonical Bottom, or a wrapped arm
// value that is itself bottom.
func (u Union2[A, B]) IsBottom() bool {
	switch u.t {
	case tag2Bottom:
		return true
	case tag2First:
		return u.first.IsBottom()
	case tag2Second:
		return u.second.IsBottom()
	default:
		return false
	}
}

// IsTop reports whether u is the canonical Top, or a wrapped arm value
// that is itself top.
func (u Union2[A, B]) IsTop() bool {
	switch u.t {
	case tag2Top:
		return true
	case tag2First:
		return u.first.IsTop()
	case tag2Second:
		return u.second.IsTop()
	default:
		return false
	}
}

// FirstValue returns the wrapped first-arm value and true, if u
// currently holds one.
func (u Union2[A, B]) FirstValue() (A, bool) {
	if u.t == tag2First {
		return u.first, true
	}
	var zero A
	return zero, false
}

// SecondValue returns the wrapped second-arm value and true, if u
// currently holds one.
func (u Union2[A, B]) SecondValue() (B, bool) {
	if u.t == tag2Second {
		return u.second, true
	}
	var zero B
	return zero, false
}

// LessEqual orders the canonical Bottom/Top as usual; within the same
// arm it delegates to that arm's order; across different arms (neither
// side bottom or top) the two are incomparable.
func (u Union2[A, B]) LessEqual(other Union2[A, B]) bool {
	switch {
	case u.IsBottom():
		return true
	case other.IsTop():
		return true
	case other.IsBottom():
		return false
	case u.IsTop():
		return false
	}
	if u.t != other.t {
		return false
	}
	switch u.t {
	case tag2First:
		return u.first.LessEqual(other.first)
	case tag2Second:
		return u.second.LessEqual(other.second)
	default:
		return false
	}
}

// Join combines same-arm values with that arm's Join; Bottom is the
// identity, Top absorbs, and different arms collapse to Top (there is
// no shared upper bound across arms).
func (u Union2[A, B]) Join(other Union2[A, B]) Union2[A, B] {
	switch {
	case u.t == tag2Bottom:
		return other
	case other.t == tag2Bottom:
		return u
	case u.t == tag2Top || other.t == tag2Top:
		return Top2[A, B]()
	case u.t != other.t:
		return Top2[A, B]()
	}
	switch u.t {
	case tag2First:
		return First[A, B](u.first.Join(other.first))
	default:
		return Second[A, B](u.second.Join(other.second))
	}
}

// Meet combines same-arm values with that arm's Meet; Top is the
// identity, Bottom absorbs, and different arms collapse to Bottom.
func (u Union2[A, B]) Meet(other Union2[A, B]) Union2[A, B] {
	switch {
	case u.t == tag2Top:
		return other
	case other.t == tag2Top:
		return u
	case u.t == tag2Bottom || other.t == tag2Bottom:
		return Bottom2[A, B]()
	case u.t != other.t:
		return Bottom2[A, B]()
	}
	switch u.t {
	case tag2First:
		return First[A, B](u.first.Meet(other.first))
	default:
		return Second[A, B](u.second.Meet(other.second))
	}
}

// Widen mirrors Join's structure, delegating pointwise to the shared
// arm's Widen.
func (u Union2[A, B]) Widen(other Union2[A, B]) Union2[A, B] {
	switch {
	case u.t == tag2Bottom:
		return other
	case other.t == tag2Bottom:
		return u
	case u.t == tag2Top || other.t == tag2Top:
		return Top2[A, B]()
	case u.t != other.t:
		return Top2[A, B]()
	}
	switch u.t {
	case tag2First:
		return First[A, B](u.first.Widen(other.first))
	default:
		return Second[A, B](u.second.Widen(other.second))
	}
}

// Narrow mirrors Meet's structure, delegating pointwise to the shared
// arm's Narrow.
func (u Union2[A, B]) Narrow(other Union2[A, B]) Union2[A, B] {
	switch {
	case u.t == tag2Top:
		return other
	case other.t == tag2Top:
		return u
	case u.t == tag2Bottom || other.t == tag2Bottom:
		return Bottom2[A, B]()
	case u.t != other.t:
		return Bottom2[A, B]()
	}
	switch u.t {
	case tag2First:
		return First[A, B](u.first.Narrow(other.first))
	default:
		return Second[A, B](u.second.Narrow(other.second))
	}
}
