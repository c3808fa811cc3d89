package sat

import (
	"fmt"
	"strings"
)

// Solution is a total assignment encoded as signed DIMACS literals.
type Solution []int

// SAT is a propositional formula in conjunctive normal form. Literals are
// signed DIMACS integers: v for a variable, -v for its negation. Variables
// is the largest variable index occurring in any clause or declared by the
// DIMACS header, whichever is greater.
type SAT struct {
	Variables int
	Clauses   [][]int
}

func (s SAT) ToDIMACS() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "p cnf %d %d\n", s.Variables, len(s.Clauses))
	for _, clause := range s.Clauses {
		for _, literal := range clause {
			fmt.Fprintf(&builder, "%d ", literal)
		}
		builder.WriteString("0\n")
	}
	return builder.String()
}
