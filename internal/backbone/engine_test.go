package backbone

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limaJavier/backbone/internal/sat"
)

func runInstance(t *testing.T, instance *sat.SAT, configure func(*Config)) (sat.Status, string, Snapshot) {
	t.Helper()
	config := Config{Print: true, Verbosity: VerbosityQuiet}
	if configure != nil {
		configure(&config)
	}
	var out bytes.Buffer
	stats := NewStatistics()
	engine := New(config, sat.NewGiniOracle(instance), NewReporter(&out, config), NewLogger(VerbosityQuiet, io.Discard), stats)
	status, err := engine.Run()
	require.NoError(t, err)
	return status, out.String(), stats.Snapshot()
}

func runDIMACS(t *testing.T, dimacs string, configure func(*Config)) (sat.Status, string, Snapshot) {
	t.Helper()
	instance, err := sat.ReadDIMACS(strings.NewReader(dimacs))
	require.NoError(t, err)
	return runInstance(t, instance, configure)
}

// backboneLines extracts the emitted backbone literals, excluding the 'b 0'
// terminator.
func backboneLines(t *testing.T, output string) []int {
	t.Helper()
	literals := []int{}
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if !strings.HasPrefix(line, "b ") {
			continue
		}
		literal, err := strconv.Atoi(strings.TrimPrefix(line, "b "))
		require.NoError(t, err)
		if literal != 0 {
			literals = append(literals, literal)
		}
	}
	return literals
}

// optionCube enumerates every combination of the candidate-set switches.
func optionCube() map[string]func(*Config) {
	cube := map[string]func(*Config){
		"plain": func(c *Config) { *c = c.Plain() },
	}
	for mask := range 16 {
		oneByOne := mask&1 != 0
		noFilter := mask&2 != 0
		noFixed := mask&4 != 0
		noFlip := mask&8 != 0
		name := fmt.Sprintf("one_by_one=%v,no_filter=%v,no_fixed=%v,no_flip=%v",
			oneByOne, noFilter, noFixed, noFlip)
		cube[name] = func(c *Config) {
			c.OneByOne = oneByOne
			c.NoFilter = noFilter
			c.NoFixed = noFixed
			c.NoFlip = noFlip
		}
	}
	return cube
}

func TestScenarios(t *testing.T) {
	scenarios := []struct {
		dimacs   string
		expected string
	}{
		{"p cnf 1 1\n1 0\n", "b 1\nb 0\ns SATISFIABLE\n"},
		{"p cnf 2 2\n1 0\n-2 0\n", "b 1\nb -2\nb 0\ns SATISFIABLE\n"},
		{"p cnf 2 1\n1 2 0\n", "b 0\ns SATISFIABLE\n"},
		{"p cnf 1 2\n1 0\n-1 0\n", "s UNSATISFIABLE\n"},
		{"p cnf 3 3\n1 2 0\n-1 -2 0\n3 0\n", "b 3\nb 0\ns SATISFIABLE\n"},
		{"p cnf 3 2\n1 2 3 0\n-1 -2 -3 0\n", "b 0\ns SATISFIABLE\n"},
		// Backbones decided by resolution (1, 2) interleaved with a
		// root-forced one (3) must still be emitted in ascending order
		{"p cnf 5 5\n1 4 0\n1 -4 0\n2 5 0\n2 -5 0\n3 0\n", "b 1\nb 2\nb 3\nb 0\ns SATISFIABLE\n"},
	}

	for i, scenario := range scenarios {
		for name, configure := range optionCube() {
			_, output, _ := runDIMACS(t, scenario.dimacs, configure)
			assert.Equal(t, scenario.expected, output, "scenario %d under %v", i+1, name)
		}
	}
}

func TestScenariosChecked(t *testing.T) {
	dimacs := "p cnf 3 3\n1 2 0\n-1 -2 0\n3 0\n"
	_, output, snap := runDIMACS(t, dimacs, func(c *Config) { c.Check = true })
	assert.Equal(t, []int{3}, backboneLines(t, output))
	assert.Equal(t, 3, snap.Checked)
}

func TestTerminationCounts(t *testing.T) {
	for range 10 {
		instance := sat.GenerateSATInstance(7, 14)
		status, _, snap := runInstance(t, instance, nil)
		if status == sat.StatusUnsatisfiable {
			continue
		}
		assert.Equal(t, instance.Variables, snap.Backbones+snap.Dropped)
		// dropped is the total across causes, the optimization counters
		// only attribute a share of it
		assert.GreaterOrEqual(t, snap.Dropped, snap.Filtered+snap.Flipped)
	}
}

func TestEmissionOrderIsAscending(t *testing.T) {
	for range 10 {
		instance := sat.GenerateSATInstance(8, 24)
		status, output, _ := runInstance(t, instance, nil)
		if status == sat.StatusUnsatisfiable {
			continue
		}
		previous := 0
		for _, literal := range backboneLines(t, output) {
			variable := literal
			if variable < 0 {
				variable = -variable
			}
			assert.Greater(t, variable, previous)
			previous = variable
		}
	}
}

func TestOutputFraming(t *testing.T) {
	for range 10 {
		instance := sat.GenerateSATInstance(6, 10)
		_, output, _ := runInstance(t, instance, nil)
		lines := strings.Split(strings.TrimSpace(output), "\n")
		last := lines[len(lines)-1]
		if last == "s UNSATISFIABLE" {
			assert.Len(t, lines, 1)
			continue
		}
		require.Equal(t, "s SATISFIABLE", last)
		require.Equal(t, "b 0", lines[len(lines)-2])
		for _, line := range lines[:len(lines)-2] {
			assert.True(t, strings.HasPrefix(line, "b "), line)
		}
	}
}

func TestNoPrintSuppressesBackboneLines(t *testing.T) {
	_, output, snap := runDIMACS(t, "p cnf 2 2\n1 0\n-2 0\n", func(c *Config) { c.Print = false })
	assert.Equal(t, "s SATISFIABLE\n", output)
	assert.Equal(t, 2, snap.Backbones)
}

// phaseOracle pretends to support decision-phase hints so the driver's
// biasing path can be exercised.
type phaseOracle struct {
	sat.Oracle
	phased   []int
	unphased []int
}

func (o *phaseOracle) HasPhase() bool    { return true }
func (o *phaseOracle) Phase(literal int) { o.phased = append(o.phased, literal) }
func (o *phaseOracle) Unphase(index int) { o.unphased = append(o.unphased, index) }

func TestSetPhaseBiasesAndClears(t *testing.T) {
	instance, err := sat.ReadDIMACS(strings.NewReader("p cnf 2 2\n1 0\n-2 0\n"))
	require.NoError(t, err)
	oracle := &phaseOracle{Oracle: sat.NewGiniOracle(instance)}

	config := Config{Print: true, SetPhase: true, Verbosity: VerbosityQuiet}
	var out bytes.Buffer
	engine := New(config, oracle, NewReporter(&out, config), NewLogger(VerbosityQuiet, io.Discard), NewStatistics())
	status, err := engine.Run()
	require.NoError(t, err)
	require.Equal(t, sat.StatusSatisfiable, status)

	// Bias is the negation of the candidate under consideration
	assert.NotEmpty(t, oracle.phased)
	for _, literal := range oracle.phased {
		assert.Contains(t, []int{-1, 2}, literal)
	}
	// Every resolved variable clears its bias
	assert.ElementsMatch(t, []int{1, 2}, oracle.unphased)
}

func TestVerifierRejectsCorruptOracle(t *testing.T) {
	instance, err := sat.ReadDIMACS(strings.NewReader("p cnf 1 1\n1 0\n"))
	require.NoError(t, err)

	// A checker fork that claims everything satisfiable disagrees with the
	// confirmation of backbone 1.
	verifier := NewVerifier(&constantOracle{status: sat.StatusSatisfiable}, NewStatistics())
	assert.Error(t, verifier.Backbone(1))
	assert.NoError(t, verifier.Dropped(1))

	oracle := sat.NewGiniOracle(instance)
	require.Equal(t, sat.StatusSatisfiable, oracle.Solve())
	honest := NewVerifier(oracle.Copy(), NewStatistics())
	assert.NoError(t, honest.Backbone(1))
	assert.Error(t, honest.Dropped(1))
}

// constantOracle answers every Solve with a fixed status.
type constantOracle struct {
	status sat.Status
}

func (o *constantOracle) Add(int)           {}
func (o *constantOracle) Assume(int)        {}
func (o *constantOracle) Constrain(int)     {}
func (o *constantOracle) Solve() sat.Status { return o.status }
func (o *constantOracle) Val(index int) int { return index }
func (o *constantOracle) Fixed(int) int     { return 0 }
func (o *constantOracle) Flip(int) bool     { return false }
func (o *constantOracle) Phase(int)         {}
func (o *constantOracle) Unphase(int)       {}
func (o *constantOracle) Copy() sat.Oracle  { return o }
func (o *constantOracle) Set(string, int)   {}
func (o *constantOracle) Vars() int         { return 1 }
func (o *constantOracle) HasFlip() bool     { return false }
func (o *constantOracle) HasPhase() bool    { return false }
