package main

import (
	"fmt"

	flag "github.com/spf13/pflag"

	"zonec/log"
)

type parseResult int // This is a ternary variable
const (
	parseStop     parseResult = iota // No error, but don't continue
	parseContinue                    // No errors and continue
	parseFailed                      // Errors, do not continue
)

// parseOptions fills in the config from the command line. The remaining
// arguments are zone source paths. Like most flag packages, pflag offers
// limited control over usage layout so a few descriptions carry trailing
// newlines purely to space out dense output.
func (t *zoneCompiler) parseOptions(args []string) parseResult {
	var helpFlag, versionFlag bool

	name := programName
	if len(args) > 0 {
		name = args[0]
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Consider '-h' for command-line usage")
	}

	fs.SetOutput(log.Out())

	// Non-config flags

	fs.BoolVarP(&helpFlag, "help", "h", false, "Print command-line usage")
	fs.BoolVarP(&versionFlag, "version", "v", false, "Print version")

	// config flags

	fs.BoolVar(&t.cfg.checkFlag, "check", false,
		"Compile and validate only - no output is written")
	fs.BoolVar(&t.cfg.passthroughFlag, "passthrough", false,
		`Pass record types absent from the grammar table through opaquely
instead of rejecting them.
`)

	fs.BoolVar(&t.cfg.logMajorFlag, "log-major", true, "Log per-zone results to Stdout")
	fs.BoolVar(&t.cfg.logMinorFlag, "log-minor", false,
		"Log per-record statistics to Stdout - this implies --log-major")
	fs.BoolVar(&t.cfg.logDebugFlag, "log-debug", false,
		"Log compiler internals to Stdout - this implies --log-minor")

	// config StringVars

	fs.StringVar(&t.cfg.configPath, "config", "",
		`Path to a YAML config file. The default is 'zonec.yaml' in the
current directory, silently skipped if absent. Command line
options always win over config file settings.
`)
	fs.StringVar(&t.cfg.filterPath, "filter", "",
		`Act as a git clean filter: compile zone source from Stdin to
Stdout. The argument is the blob's repository path, used to
resolve $INCLUDE directives and to position error messages.
`)
	fs.StringVarP(&t.cfg.outputPath, "out", "o", "",
		`Output destination. A directory when compiling multiple zones
(each output is named after its source), otherwise a file. The
default is '<source>.zone' next to each source.
`)
	fs.StringVar(&t.cfg.policyName, "serial-policy", "",
		"SOA serial policy: fixed, autoincrement or datestamp")

	err := fs.Parse(args[1:])
	if err != nil {
		return parseFailed
	}

	if helpFlag {
		fmt.Fprintln(log.Out(), name, "-- compile zone source into canonical zone data")
		fmt.Fprintln(log.Out(), "\nUsage:", name, "[options] zonefile...")
		fs.SetOutput(log.Out())
		fs.PrintDefaults()
		return parseStop
	}

	if versionFlag {
		t.cfg.printVersion()
		return parseStop
	}

	t.cfg.zonePaths = fs.Args()

	return parseContinue
}
