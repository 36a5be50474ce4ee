package disjointunion

import "github.com/latticeforge/absint/domain"

type tag3 int

const (
	tag3Bottom tag3 = iota
	tag3Top
	tag3First
	tag3Second
	tag3Third
)

// Union3 is the three-arm generalization of Union2, covering enums with
// a third variant (seen frequently in multi-case register/value
// domains). The zero value is Bottom.
type Union3[A domain.AbstractDomain[A], B domain.AbstractDomain[B], C domain.AbstractDomain[C]] struct {
	t      tag3
	first  A
	second B
	third  C
}

// Bottom3 returns the canonical least element.
func Bottom3[A domain.AbstractDomain[A], B domain.AbstractDomain[B], C domain.AbstractDomain[C]]() Union3[A, B, C] {
	return Union3[A, B, C]{t: tag3Bottom}
}

// Top3 returns the canonical greatest element.
func Top3[A domain.AbstractDomain[A], B domain.AbstractDomain[B], C domain.AbstractDomain[C]]() Union3[A, B, C] {
	return Union3[A, B, C]{t: tag3Top}
}

// First3 wraps a value from the first arm.
func First3[A domain.AbstractDomain[A], B domain.AbstractDomain[B], C domain.AbstractDomain[C]](a A) Union3[A, B, C] {
	return Union3[A, B, C]{t: tag3First, first: a}
}

// Second3 wraps a value from the second arm.
func Second3[A domain.AbstractDomain[A], B domain.AbstractDomain[B], C domain.AbstractDomain[C]](b B) Union3[A, B, C] {
	return Union3[A, B, C]{t: tag3Second, second: b}
}

// Third3 wraps a value from the third arm.
func Third3[A domain.AbstractDomain[A], B domain.AbstractDomain[B], C domain.AbstractDomain[C]](c C) Union3[A, B, C] {
	return Union3[A, B, C]{t: tag3Third, third: c}
}

// IsBottom reports whether u is the canonical Bottom, or a wrapped arm
// value that is itself bottom.
func (u Union3[A, B, C]) IsBottom() bool {
	switch u.t {
	case tag3Bottom:
		return true
	case tag3First:
		return u.first.IsBottom()
	case tag3Second:
		return u.second.IsBottom()
	case tag3Third:
		return u.third.IsBottom()
	default:
		return false
	}
}

// IsTop reports whether u is the canonical Top, or a wrapped arm value
// that is itself top.
func (u Union3[A, B, C]) IsTop() bool {
	switch u.t {
	case tag3Top:
		return true
	case tag3First:
		return u.first.IsTop()
	case tag3Second:
		return u.second.IsTop()
	case tag3Third:
		return u.third.IsTop()
	default:
		return false
	}
}

// FirstValue returns the wrapped first-arm value and true, if present.
func (u Union3[A, B, C]) FirstValue() (A, bool) {
	if u.t == tag3First {
		return u.first, true
	}
	var zero A
	return zero, false
}

// SecondValue returns the wrapped second-arm value and true, if present.
func (u Union3[A, B, C]) SecondValue() (B, bool) {
	if u.t == tag3Second {
		return u.second, true
	}
	var zero B
	return zero, false
}

// ThirdValue returns the wrapped third-arm value and true, if present.
func (u Union3[A, B, C]) ThirdValue() (C, bool) {
	if u.t == tag3Third {
		return u.third, true
	}
	var zero C
	return zero, false
}

// LessEqual orders the canonical Bottom/Top as usual; within the same
// arm it delegates to that arm's order; across different arms the two
// are incomparable.
func (u Union3[A, B, C]) LessEqual(other Union3[A, B, C]) bool {
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
	case tag3First:
		return u.first.LessEqual(other.first)
	case tag3Second:
		return u.second.LessEqual(other.second)
	case tag3Third:
		return u.third.LessEqual(other.third)
	default:
		return false
	}
}

// Join combines same-arm values with that arm's Join; Bottom is the
// identity, Top absorbs, different arms collapse to Top.
func (u Union3[A, B, C]) Join(other Union3[A, B, C]) Union3[A, B, C] {
	switch {
	case u.t == tag3Bottom:
		return other
	case other.t == tag3Bottom:
		return u
	case u.t == tag3Top || other.t == tag3Top:
		return Top3[A, B, C]()
	case u.t != other.t:
		return Top3[A, B, C]()
	}
	switch u.t {
	case tag3First:
		return First3[A, B, C](u.first.Join(other.first))
	case tag3Second:
		return Second3[A, B, C](u.second.Join(other.second))
	default:
		return Third3[A, B, C](u.third.Join(other.third))
	}
}

// Meet combines same-arm values with that arm's Meet; Top is the
// identity, Bottom absorbs, different arms collapse to Bottom.
func (u Union3[A, B, C]) Meet(other Union3[A, B, C]) Union3[A, B, C] {
	switch {
	case u.t == tag3Top:
		return other
	case other.t == tag3Top:
		return u
	case u.t == tag3Bottom || other.t == tag3Bottom:
		return Bottom3[A, B, C]()
	case u.t != other.t:
		return Bottom3[A, B, C]()
	}
	switch u.t {
	case tag3First:
		return First3[A, B, C](u.first.Meet(other.first))
	case tag3Second:
		return Second3[A, B, C](u.second.Meet(other.second))
	default:
		return Third3[A, B, C](u.third.Meet(other.third))
	}
}

// Widen mirrors Join's structure, delegating pointwise to the shared
// arm's Widen.
func (u Union3[A, B, C]) Widen(other Union3[A, B, C]) Union3[A, B, C] {
	switch {
	case u.t == tag3Bottom:
		return other
	case other.t == tag3Bottom:
		return u
	case u.t == tag3Top || other.t == tag3Top:
		return Top3[A, B, C]()
	case u.t != other.t:
		return Top3[A, B, C]()
	}
	switch u.t {
	case tag3First:
		return First3[A, B, C](u.first.Widen(other.first))
	case tag3Second:
		return Second3[A, B, C](u.second.Widen(other.second))
	default:
		return Third3[A, B, C](u.third.Widen(other.third))
	}
}

// Narrow mirrors Meet's structure, delegating pointwise to the shared
// arm's Narrow.
func (u Union3[A, B, C]) Narrow(other Union3[A, B, C]) Union3[A, B, C] {
	switch {
	case u.t == tag3Top:
		return other
	case other.t == tag3Top:
		return u
	case u.t == tag3Bottom || other.t == tag3Bottom:
		return Bottom3[A, B, C]()
	case u.t != other.t:
		return Bottom3[A, B, C]()
	}
	switch u.t {
	case tag3First:
		return First3[A, B, C](u.first.Narrow(other.first))
	case tag3Second:
		return Second3[A, B, C](u.second.Narrow(other.second))
	default:
		return Third3[A, B, C](u.third.Narrow(other.third))
	}
}
