package backbone

import (
	"github.com/pkg/errors"

	"github.com/limaJavier/backbone/internal/sat"
)

// Verifier replays every resolution on an independent fork of the oracle's
// clause database. The fork is taken right after the first satisfiable call,
// so it reflects exactly the input formula.
type Verifier struct {
	oracle sat.Oracle
	stats  *Statistics
}

func NewVerifier(oracle sat.Oracle, stats *Statistics) *Verifier {
	return &Verifier{oracle: oracle, stats: stats}
}

// Backbone checks a confirmation: the formula admits no model falsifying
// the literal.
func (v *Verifier) Backbone(literal int) error {
	if v == nil {
		return nil
	}
	v.stats.Start(bucketCheck)
	defer v.stats.Stop()
	v.oracle.Assume(-literal)
	if result := v.oracle.Solve(); result != sat.StatusUnsatisfiable {
		return errors.Errorf("claimed backbone %d has a counter-model (checker returned %v)", literal, result)
	}
	v.stats.AddChecked()
	return nil
}

// Dropped checks a refutation: the formula admits a model falsifying the
// candidate literal.
func (v *Verifier) Dropped(literal int) error {
	if v == nil {
		return nil
	}
	v.stats.Start(bucketCheck)
	defer v.stats.Stop()
	v.oracle.Assume(-literal)
	if result := v.oracle.Solve(); result != sat.StatusSatisfiable {
		return errors.Errorf("dropped candidate %d has no counter-model (checker returned %v)", literal, result)
	}
	v.stats.AddChecked()
	return nil
}
