package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/limaJavier/backbone/internal/backbone"
	"github.com/limaJavier/backbone/internal/sat"
)

const version = "1.0.0"

const usage = `usage: backbone [ <option> ... ] [ <dimacs> ]

where '<option>' is one of the following

  -h, --help            print this command line option summary
  -V, --version         print version and exit

  -c, --check           confirm each result with a second SAT oracle
  -l, --logging         extensive logging for debugging
  -n, --no-print        do not print backbone
  -q, --quiet           disable all messages
  -r, --report          report what the oracle is doing
  -s, --statistics      always print the full statistics block
  -v, --verbose         increase verbosity (can be repeated)

  --no-filter           do not filter candidates through returned models
  --no-fixed            do not use root-level fixed literal information
  --no-flip             do not try to flip literals in returned models
  --no-inprocessing     disable oracle inprocessing
  --one-by-one          decide candidates with single assumptions only
  --set-phase           bias oracle phases toward negated candidates
  --plain               all of the above disables combined

and '<dimacs>' is a CNF instance for which the backbone literals are
determined and then printed (unless '-n' is specified). If no input file is
given the formula is read from '<stdin>'. Files with a '.gz' suffix are
uncompressed on the fly.
`

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "backbone: error: "+format+"\n", args...)
	os.Exit(1)
}

func main() {
	flags := pflag.NewFlagSet("backbone", pflag.ContinueOnError)
	flags.SetOutput(io.Discard)

	help := flags.BoolP("help", "h", false, "")
	printVersion := flags.BoolP("version", "V", false, "")
	check := flags.BoolP("check", "c", false, "")
	logging := flags.BoolP("logging", "l", false, "")
	noPrint := flags.BoolP("no-print", "n", false, "")
	quiet := flags.BoolP("quiet", "q", false, "")
	report := flags.BoolP("report", "r", false, "")
	statistics := flags.BoolP("statistics", "s", false, "")
	verbose := flags.CountP("verbose", "v", "")
	noFilter := flags.Bool("no-filter", false, "")
	noFixed := flags.Bool("no-fixed", false, "")
	noFlip := flags.Bool("no-flip", false, "")
	noInprocessing := flags.Bool("no-inprocessing", false, "")
	oneByOne := flags.Bool("one-by-one", false, "")
	setPhase := flags.Bool("set-phase", false, "")
	plain := flags.Bool("plain", false, "")

	if err := flags.Parse(os.Args[1:]); err != nil {
		die("%v (try '-h')", err)
	}
	if *help {
		fmt.Print(usage)
		os.Exit(0)
	}
	if *printVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	verbosity := backbone.VerbosityDefault
	switch {
	case *quiet:
		verbosity = backbone.VerbosityQuiet
	case *logging:
		verbosity = backbone.VerbosityLogging
	default:
		verbosity = *verbose
	}

	config, err := backbone.ConfigFromOptions(map[string]any{
		"print":           !*noPrint,
		"check":           *check,
		"no_filter":       *noFilter,
		"no_fixed":        *noFixed,
		"no_flip":         *noFlip,
		"no_inprocessing": *noInprocessing,
		"one_by_one":      *oneByOne,
		"set_phase":       *setPhase,
		"report":          *report,
		"statistics":      *statistics,
		"verbosity":       verbosity,
	})
	if err != nil {
		die("%v", err)
	}
	if *plain {
		config = config.Plain()
	}

	started := time.Now()
	logger := backbone.NewLogger(config.Verbosity, os.Stdout)
	logger.Infof("Backbone CNF analyzer")
	logger.Infof("version %v using gini as SAT oracle", version)
	logger.Info("")

	//** Read the formula
	var instance *sat.SAT
	switch args := flags.Args(); len(args) {
	case 0:
		logger.Infof("reading from '<stdin>'")
		instance, err = sat.ReadDIMACS(os.Stdin)
	case 1:
		logger.Infof("reading from '%v'", args[0])
		instance, err = sat.OpenDIMACS(args[0])
	default:
		die("multiple file arguments '%v' and '%v'", args[0], args[1])
	}
	if err != nil {
		die("%v", err)
	}
	logger.Infof("found %d variables", instance.Variables)
	logger.Info("")

	//** Initialize the oracle
	oracle := sat.NewGiniOracle(instance)
	if *noFlip && !oracle.HasFlip() {
		die("'--no-flip' given but the oracle has no flip support to disable")
	}
	if *setPhase && !oracle.HasPhase() {
		die("'--set-phase' given but the oracle has no phase support")
	}
	if config.Verbosity < 0 {
		oracle.Set("quiet", 1)
	} else if config.Verbosity > 0 && config.Verbosity != backbone.VerbosityLogging {
		oracle.Set("verbose", config.Verbosity-1)
	}
	if config.Report || config.Verbosity > 1 {
		oracle.Set("report", 1)
	}
	if config.NoInprocessing {
		oracle.Set("inprocessing", 0)
	}

	stats := backbone.NewStatistics()
	reporter := backbone.NewReporter(os.Stdout, config)

	//** Print statistics and exit with the signal disposition on interruption
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		received := <-signals
		logger.Infof("caught signal %d", received)
		reporter.Statistics(stats.Interrupt())
		if number, ok := received.(syscall.Signal); ok {
			os.Exit(128 + int(number))
		}
		os.Exit(1)
	}()

	//** Extract the backbone
	engine := backbone.New(config, oracle, reporter, logger, stats)
	logger.Infof("starting solving after %.2f seconds", time.Since(started).Seconds())
	result, err := engine.Run()
	if err != nil {
		die("%v", err)
	}

	reporter.Statistics(stats.Snapshot())
	logger.Infof("exit %d", int(result))
	os.Exit(int(result))
}
