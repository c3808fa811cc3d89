package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/samber/lo"

	"github.com/limaJavier/backbone/internal/backbone"
	"github.com/limaJavier/backbone/internal/sat"
)

const instancesPerShape = 5

type shape struct {
	variables int
	clauses   int
}

type result struct {
	shape       shape
	satisfiable bool
	backbones   int
	calls       int
	flipped     int
	filtered    int
	duration    time.Duration
}

func run(instance *sat.SAT, config backbone.Config) (sat.Status, backbone.Snapshot, time.Duration) {
	stats := backbone.NewStatistics()
	reporter := backbone.NewReporter(io.Discard, config)
	logger := backbone.NewLogger(backbone.VerbosityQuiet, io.Discard)
	engine := backbone.New(config, sat.NewGiniOracle(instance), reporter, logger, stats)

	started := time.Now()
	status, err := engine.Run()
	if err != nil {
		log.Fatalf("an error occurred during backbone extraction: %v", err)
	}
	return status, stats.Snapshot(), time.Since(started)
}

func main() {
	shapes := []shape{
		{20, 60},
		{40, 140},
		{60, 240},
		{80, 360},
	}

	results := make([]result, 0, len(shapes)*instancesPerShape)
	config := backbone.Config{Print: false, Verbosity: backbone.VerbosityQuiet}

	for _, s := range shapes {
		fmt.Printf("Benchmarking %v instances with %v variables and %v clauses\n",
			instancesPerShape, s.variables, s.clauses)

		for range instancesPerShape {
			instance := sat.GenerateSATInstance(s.variables, s.clauses)
			status, snap, duration := run(instance, config)

			results = append(results, result{
				shape:       s,
				satisfiable: status == sat.StatusSatisfiable,
				backbones:   snap.Backbones,
				calls:       snap.Calls,
				flipped:     snap.Flipped,
				filtered:    snap.Filtered,
				duration:    duration,
			})
		}
	}

	satisfiable := lo.CountBy(results, func(r result) bool { return r.satisfiable })
	fmt.Printf("Solved %v instances (%v satisfiable)\n", len(results), satisfiable)

	writer := csv.NewWriter(os.Stdout)
	writer.Write([]string{"variables", "clauses", "satisfiable", "backbones", "calls", "flipped", "filtered", "milliseconds"})
	for _, r := range results {
		writer.Write([]string{
			strconv.Itoa(r.shape.variables),
			strconv.Itoa(r.shape.clauses),
			strconv.FormatBool(r.satisfiable),
			strconv.Itoa(r.backbones),
			strconv.Itoa(r.calls),
			strconv.Itoa(r.flipped),
			strconv.Itoa(r.filtered),
			strconv.FormatInt(r.duration.Milliseconds(), 10),
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Fatalf("cannot write benchmark results: %v", err)
	}
}
