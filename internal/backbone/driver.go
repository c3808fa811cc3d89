package backbone

import (
	"github.com/limaJavier/backbone/internal/sat"
)

type constrainOutcome int

const (
	constrainFallThrough constrainOutcome = iota // one candidate left, use a plain assumption
	constrainRetry                               // model refuted at least one candidate
	constrainFinished                            // every remaining candidate confirmed
)

// Run performs the extraction and returns the formula's status. On
// StatusSatisfiable the reporter has emitted the complete backbone.
func (e *Engine) Run() (sat.Status, error) {
	result := e.solve()
	if result == sat.StatusUnknown {
		return result, errUnknown
	}
	if result == sat.StatusUnsatisfiable {
		e.reporter.Status(result)
		return result, nil
	}

	e.logger.Infof("solver determined first model after %.2f seconds", e.stats.Snapshot().First)
	line(e.logger)

	if e.config.Check {
		// Fork before any assumption-driven solving so the checker sees
		// exactly the input formula.
		e.verifier = NewVerifier(e.oracle.Copy(), e.stats)
	}
	e.table = NewTableFromModel(e.oracle, e.stats)

	if err := e.flipCandidates(1); err != nil {
		return result, err
	}
	if err := e.iterate(); err != nil {
		return result, err
	}

	e.reporter.Terminate()
	line(e.logger)
	e.reporter.Status(sat.StatusSatisfiable)
	return sat.StatusSatisfiable, nil
}

// iterate visits the variables in ascending index order. The inner loop
// keeps working on index i until it is confirmed, refuted, or handled by a
// branch that continues with the next index.
func (e *Engine) iterate() error {
	n := e.table.Vars()
	for i := 1; i <= n; i++ {
		e.phase(i)
		for e.table.Lit(i) != 0 {
			literal := e.table.Lit(i)

			resolved, err := e.fixate(i)
			if err != nil {
				return err
			}
			if resolved {
				break
			}

			if !e.config.OneByOne && e.last == sat.StatusUnsatisfiable {
				outcome, err := e.constrainStep(i, literal)
				if err != nil {
					return err
				}
				switch outcome {
				case constrainFinished:
					return nil
				case constrainRetry:
					continue
				}
				// constrainFallThrough: only this candidate is left
			}

			if err := e.assumeStep(i, literal); err != nil {
				return err
			}
		}
	}
	return nil
}

// constrainStep disjoins the negations of every remaining candidate from
// index i on into a one-shot clause. An unsatisfiable answer proves all of
// them backbones at once; a model is guaranteed to refute at least one.
func (e *Engine) constrainStep(i, literal int) (constrainOutcome, error) {
	n := e.table.Vars()
	buf := e.buf[:0]
	buf = append(buf, -literal)
	for other := i + 1; other <= n; other++ {
		candidate := e.table.Lit(other)
		if candidate == 0 {
			continue
		}
		if !e.config.NoFixed {
			switch e.oracle.Fixed(candidate) {
			case 1:
				// A root-forced candidate is already known to be a backbone,
				// so its negation contributes nothing to the disjunction.
				// It stays in the table: confirming here would emit its 'b'
				// line ahead of smaller indices still being decided, and the
				// outer loop confirms it in ascending order anyway.
				continue
			case -1:
				if err := e.drop(other, e.stats.AddFixed); err != nil {
					return 0, err
				}
				continue
			}
		}
		buf = append(buf, -candidate)
	}
	e.buf = buf

	if len(buf) <= 1 {
		return constrainFallThrough, nil
	}

	e.logger.Debugf("constraining disjunction of %d remaining candidate negations", len(buf))
	for _, m := range buf {
		e.oracle.Constrain(m)
	}
	e.oracle.Constrain(0)

	switch result := e.solve(); result {
	case sat.StatusUnknown:
		return 0, errUnknown
	case sat.StatusUnsatisfiable:
		for j := i; j <= n; j++ {
			if e.table.Lit(j) == 0 {
				continue
			}
			if err := e.confirm(j, nil); err != nil {
				return 0, err
			}
		}
		return constrainFinished, nil
	}

	first, err := e.dropFirstCandidate(i)
	if err != nil {
		return 0, err
	}
	if err := e.filterModel(first + 1); err != nil {
		return 0, err
	}
	if err := e.flipCandidates(i); err != nil {
		return 0, err
	}
	return constrainRetry, nil
}

// assumeStep decides a single candidate by assuming its negation.
func (e *Engine) assumeStep(i, literal int) error {
	e.logger.Debugf("assuming negation %d of backbone candidate %d", -literal, literal)
	e.oracle.Assume(-literal)

	switch result := e.solve(); result {
	case sat.StatusUnknown:
		return errUnknown
	case sat.StatusUnsatisfiable:
		return e.confirm(i, nil)
	}

	// The model satisfies the assumed negation, refuting the candidate
	if err := e.drop(i, nil); err != nil {
		return err
	}
	if err := e.filterModel(i + 1); err != nil {
		return err
	}
	return e.flipCandidates(i + 1)
}
