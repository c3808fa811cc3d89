package backbone

// fixate resolves the candidate at index from the oracle's root-level
// knowledge when possible: a candidate forced at the root is a backbone, a
// candidate whose negation is forced is refuted (its opposite literal would
// be the backbone of that variable, but it was never a candidate here).
func (e *Engine) fixate(index int) (bool, error) {
	if e.config.NoFixed {
		return false, nil
	}
	literal := e.table.Lit(index)
	switch e.oracle.Fixed(literal) {
	case 1:
		e.logger.Debugf("backbone candidate %d fixed at the root", literal)
		return true, e.confirm(index, e.stats.AddFixed)
	case -1:
		e.logger.Debugf("negation of backbone candidate %d fixed at the root", literal)
		return true, e.drop(index, e.stats.AddFixed)
	default:
		return false, nil
	}
}
