package backbone

// flipCandidates tries to refute candidates from index on without a new
// solve: each successful flip exhibits a second model in which the
// candidate is false. Rounds repeat until a full pass drops nothing, since
// a flip can unlock flips of variables scanned earlier in the pass.
func (e *Engine) flipCandidates(from int) error {
	if e.config.NoFlip || !e.oracle.HasFlip() {
		return nil
	}
	e.stats.Start(bucketFlip)
	defer e.stats.Stop()

	n := e.table.Vars()
	for {
		flipped := false
		for i := from; i <= n; i++ {
			literal := e.table.Lit(i)
			if literal == 0 || !e.oracle.Flip(literal) {
				continue
			}
			e.logger.Debugf("flipped backbone candidate %d in the current model", literal)
			if err := e.drop(i, e.stats.AddFlipped); err != nil {
				return err
			}
			flipped = true
		}
		if !flipped {
			return nil
		}
	}
}
