package sat

import "math/rand/v2"

// GenerateSATInstance builds a random CNF over the given number of variables.
// Every clause keeps each literal with probability 1/2; empty draws are
// patched with a single random literal so no clause is trivially empty.
func GenerateSATInstance(variables, clauses int) *SAT {
	instance := &SAT{
		Variables: variables,
		Clauses:   make([][]int, clauses),
	}

	for i := range clauses {
		instance.Clauses[i] = make([]int, 0, variables)
		for j := range variables {
			if rand.Float32() < 0.5 {
				sign := 1
				if rand.Float32() < 0.5 {
					sign = -1
				}
				instance.Clauses[i] = append(instance.Clauses[i], sign*(1+j))
			}
		}

		if len(instance.Clauses[i]) == 0 {
			sign := 1
			if rand.Float32() < 0.5 {
				sign = -1
			}
			instance.Clauses[i] = append(instance.Clauses[i], sign*(1+rand.IntN(variables)))
		}
	}

	return instance
}

// AssertSolution reports whether the assignment is consistent and satisfies
// every clause of the instance.
func AssertSolution(instance *SAT, solution Solution) bool {
	// Make sure there are no duplicates nor contradictions
	literals := make(map[int]bool)
	for _, literal := range solution {
		if literals[literal] || literals[-literal] {
			return false
		}
		literals[literal] = true
	}

	// Check that all clauses are satisfied
	for _, clause := range instance.Clauses {
		satisfied := false
		for _, literal := range clause {
			if literals[literal] {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}

	return true
}
