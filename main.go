package main

import (
	"fmt"
	"os"
	"strings"

	"zonec/log"
)

func reportError(severity string, err error, messages ...string) {
	msg := severity
	if len(messages) > 0 {
		msg += ": " + strings.Join(messages, " ")
	}
	if err != nil {
		msg += ": " + err.Error()
	}
	fmt.Fprintln(log.Out(), msg)
}

func fatal(err error, messages ...string) {
	reportError("Fatal", err, messages...)
	os.Exit(1)
}

func warning(err error, messages ...string) {
	reportError("Warning", err, messages...)
}

//////////////////////////////////////////////////////////////////////

func main() {
	zc := newZoneCompiler()
	switch zc.parseOptions(os.Args) {
	case parseStop:
		return
	case parseFailed:
		os.Exit(1)
	case parseContinue:
	}

	// Transfer logging options to the log package

	if zc.cfg.logMajorFlag {
		log.SetLevel(log.MajorLevel)
	}
	if zc.cfg.logMinorFlag {
		log.SetLevel(log.MinorLevel)
	}
	if zc.cfg.logDebugFlag {
		log.SetLevel(log.DebugLevel)
	}

	err := zc.cfg.load() // Merge the config file under the flag values
	if err != nil {
		fatal(err)
	}

	err = zc.ValidateCommandLineOptions()
	if err != nil {
		fatal(err)
	}

	if zc.cfg.filterPath != "" { // Filter mode: stdin to stdout, one zone
		log.SetOut(os.Stderr) // Stdout carries the compiled zone
		if !zc.runFilter(os.Stdin, os.Stdout, zc.cfg.filterPath) {
			os.Exit(1)
		}
		return
	}

	if !zc.runAll(zc.cfg.zonePaths) {
		os.Exit(1)
	}
}
