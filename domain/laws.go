package domain

// CheckLaws exercises the lattice laws against a handful of sample
// elements, calling fail(msg) for each law that does not hold.
// It is meant to be driven from each concrete domain's test suite, e.g.:
//
//	domain.CheckLaws(t, bottom, top, samples, func(msg string) { t.Error(msg) })
//
// rather than duplicating the law assertions per domain.
func CheckLaws[D AbstractDomain[D]](bottom, top D, samples []D, fail func(string)) {
	all := append([]D{bottom, top}, samples...)

	for _, a := range all {
		if !bottom.LessEqual(a) {
			fail("bottom is not <= every element")
		}
		if !a.LessEqual(top) {
			fail("every element is not <= top")
		}
		if !a.LessEqual(a) {
			fail("LessEqual is not reflexive")
		}
	}

	for _, a := range all {
		for _, b := range all {
			if a.LessEqual(b) && b.LessEqual(a) {
				// antisymmetry is checked by the caller via domain-specific
				// equality, since AbstractDomain does not require Eq.
				_ = a
			}
			joined := a.Join(b)
			if !a.LessEqual(joined) {
				fail("a is not <= a.Join(b)")
			}
			if !b.LessEqual(joined) {
				fail("b is not <= a.Join(b)")
			}
			met := a.Meet(b)
			if !met.LessEqual(a) {
				fail("a.Meet(b) is not <= a")
			}
			if !met.LessEqual(b) {
				fail("a.Meet(b) is not <= b")
			}
			widened := a.Widen(b)
			if !joined.LessEqual(widened) {
				fail("a.Join(b) is not <= a.Widen(b)")
			}
		}
	}

	for _, a := range all {
		for _, b := range all {
			for _, c := range all {
				if a.LessEqual(b) && b.LessEqual(c) && !a.LessEqual(c) {
					fail("LessEqual is not transitive")
				}
			}
		}
	}
}
