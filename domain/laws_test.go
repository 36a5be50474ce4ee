package domain_test

import (
	"testing"

	"github.com/latticeforge/absint/domain"
)

// boolDomain is the two-point lattice {false <= true}, used only to
// smoke-test CheckLaws itself.
type boolDomain bool

func (b boolDomain) IsBottom() bool             { return !bool(b) }
func (b boolDomain) IsTop() bool                { return bool(b) }
func (b boolDomain) LessEqual(o boolDomain) bool { return !bool(b) || bool(o) }
func (b boolDomain) Join(o boolDomain) boolDomain  { return b || o }
func (b boolDomain) Meet(o boolDomain) boolDomain  { return b && o }
func (b boolDomain) Widen(o boolDomain) boolDomain { return b || o }
func (b boolDomain) Narrow(o boolDomain) boolDomain { return b && o }

func TestCheckLawsOnTwoPointLattice(t *testing.T) {
	var failures []string
	domain.CheckLaws[boolDomain](false, true, []boolDomain{false, true}, func(msg string) {
		failures = append(failures, msg)
	})
	if len(failures) != 0 {
		t.Fatalf("unexpected law failures: %v", failures)
	}
}
