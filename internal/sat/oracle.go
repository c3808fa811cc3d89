package sat

// Status is a solver verdict in the classic DIMACS exit-code encoding.
type Status int

const (
	StatusUnknown       Status = 0
	StatusSatisfiable   Status = 10
	StatusUnsatisfiable Status = 20
)

func (s Status) String() string {
	switch s {
	case StatusSatisfiable:
		return "SATISFIABLE"
	case StatusUnsatisfiable:
		return "UNSATISFIABLE"
	default:
		return "UNKNOWN"
	}
}

// Oracle is an incremental SAT decision procedure. It generalizes the
// one-shot SATSolver used elsewhere in this organization's projects: the
// formula stays loaded across calls and each Solve may be qualified by
// assumptions and one-shot constraint clauses.
//
// Literals are signed DIMACS integers throughout.
type Oracle interface {
	// Add appends a literal to the clause under construction; 0 terminates
	// the clause and commits it permanently.
	Add(literal int)

	// Assume asserts a unit literal for the next call to Solve only.
	Assume(literal int)

	// Constrain appends a literal to a clause that is active only during the
	// next call to Solve; 0 terminates it. At most one constraint clause may
	// be pending at a time.
	Constrain(literal int)

	// Solve decides the formula under the pending assumptions and constraint
	// clause, both of which are consumed.
	Solve() Status

	// Val returns the signed literal of index assigned by the most recent
	// satisfiable Solve (or by a subsequent successful Flip).
	Val(index int) int

	// Fixed reports the literal's status at the root decision level:
	// +1 if it is forced, -1 if its negation is forced, 0 if unknown.
	Fixed(literal int) int

	// Flip attempts to turn the current model into another model in which
	// literal is false, without a new Solve. It reports whether it succeeded;
	// on success Val reflects the new model. Only meaningful when the oracle
	// advertises HasFlip.
	Flip(literal int) bool

	// Phase biases the solver to prefer the literal's polarity when it next
	// decides the literal's variable; Unphase clears the bias for index.
	// Only meaningful when the oracle advertises HasPhase.
	Phase(literal int)
	Unphase(index int)

	// Copy forks the oracle's clause database into an independent oracle.
	Copy() Oracle

	// Set forwards a named option (report, inprocessing, quiet, verbose) to
	// the underlying solver; unsupported options are recorded and ignored.
	Set(option string, value int)

	// Vars is the number of problem variables.
	Vars() int

	HasFlip() bool
	HasPhase() bool
}
