package backbone

import "fmt"

// filterModel drops every candidate from index on whose polarity disagrees
// with the oracle's current model. After it returns no remaining candidate
// disagrees with that model.
func (e *Engine) filterModel(from int) error {
	if e.config.NoFilter {
		return nil
	}
	n := e.table.Vars()
	for i := from; i <= n; i++ {
		literal := e.table.Lit(i)
		if literal == 0 || e.oracle.Val(i) == literal {
			continue
		}
		if err := e.drop(i, e.stats.AddFiltered); err != nil {
			return err
		}
	}
	return nil
}

// dropFirstCandidate drops the smallest index >= from whose candidate
// disagrees with the model and returns that index. The caller guarantees
// existence: the model satisfied a disjunction of candidate negations.
func (e *Engine) dropFirstCandidate(from int) (int, error) {
	n := e.table.Vars()
	for i := from; i <= n; i++ {
		literal := e.table.Lit(i)
		if literal == 0 || e.oracle.Val(i) == literal {
			continue
		}
		return i, e.drop(i, nil)
	}
	panic(fmt.Sprintf("backbone: constrained model refutes no candidate from %d", from))
}
