package backbone

import (
	"fmt"
	"io"

	"github.com/limaJavier/backbone/internal/sat"
)

// Reporter owns the machine-readable part of stdout: the 'b' literal lines,
// the 's' status line and the statistics block. Every line is written
// immediately so partial output survives interruption.
type Reporter struct {
	out     io.Writer
	print   bool
	force   bool // print all profile rows even when zero
	verbose bool
}

func NewReporter(out io.Writer, config Config) *Reporter {
	return &Reporter{
		out:     out,
		print:   config.Print,
		force:   config.Statistics || config.Verbosity > 0,
		verbose: config.Verbosity >= 0,
	}
}

// Backbone emits one confirmed backbone literal.
func (r *Reporter) Backbone(literal int) {
	if r.print {
		fmt.Fprintf(r.out, "b %d\n", literal)
	}
}

// Terminate closes the backbone listing.
func (r *Reporter) Terminate() {
	if r.print {
		fmt.Fprintln(r.out, "b 0")
	}
}

// Status emits the final solution line.
func (r *Reporter) Status(status sat.Status) {
	fmt.Fprintf(r.out, "s %v\n", status)
}

func average(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

func percent(a, b float64) float64 {
	return average(100*a, b)
}

// Statistics renders the counter and profile block as comment lines.
func (r *Reporter) Statistics(snap Snapshot) {
	if !r.verbose {
		return
	}
	comment := func(format string, args ...any) {
		fmt.Fprintf(r.out, "c "+format+"\n", args...)
	}

	fmt.Fprintln(r.out, "c")
	comment("--- [ backbone statistics ] ------------------------------------------------")
	fmt.Fprintln(r.out, "c")
	comment("found %d backbones", snap.Backbones)
	comment("dropped %d candidates (%d filtered, %d flipped)",
		snap.Dropped, snap.Filtered, snap.Flipped)
	if r.force || snap.Fixed > 0 {
		// fixed counts confirmations as well as refutations, so it is not
		// part of the dropped breakdown
		comment("resolved %d candidates by root-level fixed literals", snap.Fixed)
	}
	comment("called SAT solver %d times (%d SAT, %d UNSAT)",
		snap.Calls, snap.SatCalls, snap.UnsatCalls)
	if r.force || snap.Checked > 0 {
		comment("checked %d literals", snap.Checked)
	}
	fmt.Fprintln(r.out, "c")
	comment("--- [ backbone profiling ] -------------------------------------------------")
	fmt.Fprintln(r.out, "c")

	rows := []struct {
		name  string
		value float64
	}{
		{"first", snap.First},
		{"sat", snap.Sat},
		{"satmax", snap.SatMax},
		{"unsat", snap.Unsat},
		{"unsatmax", snap.UnsatMax},
		{"unknown", snap.Unknown},
		{"flip", snap.Flip},
		{"check", snap.Check},
	}
	for _, row := range rows {
		if r.force || row.value != 0 {
			comment("  %10.2f %6.2f %% %v", row.value, percent(row.value, snap.Solving), row.name)
		}
	}
	comment("---------------------------------")
	comment("  %10.2f 100.00 %% solving", snap.Solving)
	fmt.Fprintln(r.out, "c")
}
