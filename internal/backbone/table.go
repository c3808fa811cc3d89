package backbone

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/limaJavier/backbone/internal/sat"
)

// Table is the authoritative per-variable candidate state. For every
// variable index at most one of candidates[i] and fixedOut[i] is nonzero:
// candidates[i] holds the literal still hypothesized as a backbone,
// fixedOut[i] holds the literal proven to be one, and both zero means the
// variable was refuted by some model.
type Table struct {
	variables  int
	candidates []int
	fixedOut   []int
	remaining  int
	stats      *Statistics
}

// NewTableFromModel seeds every variable's candidate with its polarity in
// the oracle's current model.
func NewTableFromModel(oracle sat.Oracle, stats *Statistics) *Table {
	variables := oracle.Vars()
	table := &Table{
		variables:  variables,
		candidates: make([]int, variables+1),
		fixedOut:   make([]int, variables+1),
		remaining:  variables,
		stats:      stats,
	}
	for i := 1; i <= variables; i++ {
		table.candidates[i] = oracle.Val(i)
	}
	return table
}

// Vars is the number of variables tracked.
func (t *Table) Vars() int {
	return t.variables
}

// Lit is the candidate literal at index, 0 when the index was resolved.
func (t *Table) Lit(index int) int {
	return t.candidates[index]
}

// Backbone is the confirmed backbone literal at index, 0 when none.
func (t *Table) Backbone(index int) int {
	return t.fixedOut[index]
}

// Remaining counts still unresolved candidates.
func (t *Table) Remaining() int {
	return t.remaining
}

// Drop refutes the candidate at index.
func (t *Table) Drop(index int) int {
	literal := t.candidates[index]
	if literal == 0 {
		panic(fmt.Sprintf("backbone: dropping resolved variable %d", index))
	}
	t.candidates[index] = 0
	t.remaining--
	t.stats.AddDropped()
	return literal
}

// Confirm moves the candidate at index to the fixed side.
func (t *Table) Confirm(index int) int {
	literal := t.candidates[index]
	if literal == 0 {
		panic(fmt.Sprintf("backbone: confirming resolved variable %d", index))
	}
	t.candidates[index] = 0
	t.fixedOut[index] = literal
	t.remaining--
	t.stats.AddBackbone()
	return literal
}

// Backbones lists the confirmed literals in ascending variable order.
func (t *Table) Backbones() []int {
	return lo.Filter(t.fixedOut, func(literal int, _ int) bool { return literal != 0 })
}
