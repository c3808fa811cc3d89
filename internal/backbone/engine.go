package backbone

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/limaJavier/backbone/internal/sat"
)

var errUnknown = errors.New("SAT oracle returned unknown")

// Engine drives the backbone extraction: it owns the candidate table, the
// oracle and the statistics, and routes every resolution through the
// reporter and the optional verifier.
type Engine struct {
	config   Config
	oracle   sat.Oracle
	reporter *Reporter
	logger   *logrus.Logger
	stats    *Statistics

	table    *Table
	verifier *Verifier
	buf      []int      // scratch for the constraint clause literals
	last     sat.Status // verdict of the most recent solve
}

func New(config Config, oracle sat.Oracle, reporter *Reporter, logger *logrus.Logger, stats *Statistics) *Engine {
	return &Engine{
		config:   config,
		oracle:   oracle,
		reporter: reporter,
		logger:   logger,
		stats:    stats,
		last:     sat.StatusSatisfiable,
	}
}

// solve times one oracle call and attributes the interval to the verdict's
// buckets.
func (e *Engine) solve() sat.Status {
	e.stats.Start(bucketSolving)
	result := e.oracle.Solve()
	delta := e.stats.Stop()
	if result != sat.StatusUnknown {
		e.stats.RecordSolve(result == sat.StatusSatisfiable, delta)
		e.last = result
	}
	return result
}

// drop refutes the candidate at index. attribute, when given, bumps the
// counter of the optimization responsible for the refutation.
func (e *Engine) drop(index int, attribute func()) error {
	literal := e.table.Drop(index)
	if attribute != nil {
		attribute()
	}
	e.unphase(index)
	e.logger.Debugf("dropping backbone candidate %d", literal)
	return e.verifier.Dropped(literal)
}

// confirm promotes the candidate at index to a backbone and streams it out.
func (e *Engine) confirm(index int, attribute func()) error {
	literal := e.table.Confirm(index)
	if attribute != nil {
		attribute()
	}
	e.unphase(index)
	e.logger.Debugf("found backbone literal %d", literal)
	e.reporter.Backbone(literal)
	return e.verifier.Backbone(literal)
}

func (e *Engine) phase(index int) {
	if !e.config.SetPhase || !e.oracle.HasPhase() {
		return
	}
	if literal := e.table.Lit(index); literal != 0 {
		e.oracle.Phase(-literal)
	}
}

func (e *Engine) unphase(index int) {
	if !e.config.SetPhase || !e.oracle.HasPhase() {
		return
	}
	e.oracle.Unphase(index)
}
