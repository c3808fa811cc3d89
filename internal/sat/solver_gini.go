package sat

import (
	"maps"
	"slices"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

// giniOracle implements Oracle on top of the gini CDCL solver.
//
// gini has no native constrain, fixed or flip primitives, so the oracle
// keeps its own copy of the clause database next to the solver:
//
//   - constraint clauses are armed with a fresh selector variable above the
//     problem variables, assumed for one Solve and retired with a unit
//     clause afterwards;
//   - root-fixed literals are harvested after every Solve from a
//     Test/Untest probe at decision level 0;
//   - flip walks the occurrence list of the flipped literal over the stored
//     clauses, checking every clause stays satisfied by the cached model.
type giniOracle struct {
	solver    *gini.Gini
	variables int

	clauses     [][]int // committed problem clauses, selector clauses excluded
	occurrences [][]int // z.Lit-coded literal -> indices into clauses

	model     []int8 // cached model, +1/-1 per variable, 0 before the first model
	rootFixed []int8 // polarity forced at the root, 0 if none known

	adding          []int // clause under construction via Add
	constraint      []int // pending one-shot clause via Constrain
	constraintReady bool
	nextSelector    int

	testBuf []z.Lit
	options map[string]int
}

// NewGiniOracle loads the instance into a fresh gini solver.
func NewGiniOracle(instance *SAT) Oracle {
	o := &giniOracle{
		solver:       gini.NewVc(instance.Variables+1, len(instance.Clauses)+1),
		variables:    instance.Variables,
		model:        make([]int8, instance.Variables+1),
		rootFixed:    make([]int8, instance.Variables+1),
		nextSelector: instance.Variables + 1,
		testBuf:      make([]z.Lit, 0, instance.Variables+2),
		options:      map[string]int{},
	}
	for _, clause := range instance.Clauses {
		for _, literal := range clause {
			o.Add(literal)
		}
		o.Add(0)
	}
	return o
}

func (o *giniOracle) Add(literal int) {
	if literal != 0 {
		o.adding = append(o.adding, literal)
		return
	}
	index := len(o.clauses)
	o.clauses = append(o.clauses, o.adding)
	for _, m := range o.adding {
		o.addOccurrence(m, index)
		o.solver.Add(z.Dimacs2Lit(m))
	}
	o.solver.Add(z.LitNull)
	o.adding = nil
}

func (o *giniOracle) Assume(literal int) {
	o.solver.Assume(z.Dimacs2Lit(literal))
}

func (o *giniOracle) Constrain(literal int) {
	if literal != 0 {
		o.constraint = append(o.constraint, literal)
		return
	}
	o.constraintReady = true
}

func (o *giniOracle) Solve() Status {
	if o.constraintReady {
		selector := o.nextSelector
		o.nextSelector++
		// The constraint clause goes straight to the solver, bypassing the
		// stored clause database: it must not survive this Solve.
		o.solver.Add(z.Dimacs2Lit(-selector))
		for _, literal := range o.constraint {
			o.solver.Add(z.Dimacs2Lit(literal))
		}
		o.solver.Add(z.LitNull)
		o.solver.Assume(z.Dimacs2Lit(selector))
		o.constraint = o.constraint[:0]
		o.constraintReady = false
		defer o.retire(selector)
	}

	switch o.solver.Solve() {
	case 1:
		for i := 1; i <= o.variables; i++ {
			if o.solver.Value(z.Dimacs2Lit(i)) {
				o.model[i] = 1
			} else {
				o.model[i] = -1
			}
		}
		o.refreshRootFixed()
		return StatusSatisfiable
	case -1:
		o.refreshRootFixed()
		return StatusUnsatisfiable
	default:
		return StatusUnknown
	}
}

func (o *giniOracle) Val(index int) int {
	return int(o.model[index]) * index
}

func (o *giniOracle) Fixed(literal int) int {
	variable := literal
	if variable < 0 {
		variable = -variable
	}
	forced := o.rootFixed[variable]
	if forced == 0 {
		return 0
	}
	if (literal > 0) == (forced > 0) {
		return 1
	}
	return -1
}

func (o *giniOracle) Flip(literal int) bool {
	variable := literal
	if variable < 0 {
		variable = -variable
	}
	if o.Val(variable) != literal {
		return false // only literals satisfied by the current model can flip
	}
	if o.rootFixed[variable] != 0 {
		return false
	}
	occurrence := z.Dimacs2Lit(literal)
	if int(occurrence) < len(o.occurrences) {
		for _, index := range o.occurrences[occurrence] {
			if !o.doublySatisfied(o.clauses[index], literal) {
				return false
			}
		}
	}
	o.model[variable] = -o.model[variable]
	return true
}

func (o *giniOracle) Phase(literal int) {
	// gini exposes no decision-phase hook; HasPhase reports so.
}

func (o *giniOracle) Unphase(index int) {
}

func (o *giniOracle) Copy() Oracle {
	return &giniOracle{
		solver:       o.solver.Copy(),
		variables:    o.variables,
		clauses:      slices.Clone(o.clauses),
		occurrences:  slices.Clone(o.occurrences),
		model:        slices.Clone(o.model),
		rootFixed:    slices.Clone(o.rootFixed),
		nextSelector: o.nextSelector,
		testBuf:      make([]z.Lit, 0, cap(o.testBuf)),
		options:      maps.Clone(o.options),
	}
}

func (o *giniOracle) Set(option string, value int) {
	// gini has no equivalent of the cadical-style option set; the values are
	// recorded so diagnostics can show what was requested.
	o.options[option] = value
}

func (o *giniOracle) Vars() int {
	return o.variables
}

func (o *giniOracle) HasFlip() bool {
	return true
}

func (o *giniOracle) HasPhase() bool {
	return false
}

func (o *giniOracle) addOccurrence(literal int, index int) {
	occurrence := int(z.Dimacs2Lit(literal))
	for occurrence >= len(o.occurrences) {
		o.occurrences = append(o.occurrences, nil)
	}
	o.occurrences[occurrence] = append(o.occurrences[occurrence], index)
}

// doublySatisfied reports whether the clause stays satisfied once flipped
// turns false: some other literal must already be true in the cached model.
func (o *giniOracle) doublySatisfied(clause []int, flipped int) bool {
	for _, m := range clause {
		if m == flipped {
			continue
		}
		variable := m
		if variable < 0 {
			variable = -variable
		}
		if o.Val(variable) == m {
			return true
		}
	}
	return false
}

// refreshRootFixed probes the solver's decision level 0 for forced literals.
// Root implications only grow, so the harvest accumulates across calls.
func (o *giniOracle) refreshRootFixed() {
	result, implied := o.solver.Test(o.testBuf[:0])
	for _, m := range implied {
		d := m.Dimacs()
		variable := d
		if variable < 0 {
			variable = -variable
		}
		if variable < 1 || variable > o.variables {
			continue // selector variables are not problem variables
		}
		if d > 0 {
			o.rootFixed[variable] = 1
		} else {
			o.rootFixed[variable] = -1
		}
	}
	if result != -1 {
		o.solver.Untest()
	}
}

func (o *giniOracle) retire(selector int) {
	o.solver.Add(z.Dimacs2Lit(-selector))
	o.solver.Add(z.LitNull)
}
