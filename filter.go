package main

import (
	"io"

	"zonec/compiler"
	"zonec/log"
)

// runFilter implements git clean-filter operation: zone source arrives on
// stdin, the compiled zone leaves on stdout, and a non-zero exit plus
// diagnostics signals failure. The repository path of the blob positions
// error messages and anchors $INCLUDE resolution; no other file system
// access occurs and no prior artifact is consulted, so the autoincrement
// and datestamp policies start from their baselines.
func (t *zoneCompiler) runFilter(in io.Reader, out io.Writer, path string) bool {
	src, err := io.ReadAll(in)
	if err != nil {
		reportError("Error", err, "reading zone source from stdin")
		return false
	}

	zone, errs := compiler.Compile(path, src, compiler.Options{
		Policy:      t.cfg.policy,
		Passthrough: t.cfg.passthroughFlag,
		Include:     readInclude,
	})

	for _, w := range errs.Warnings() {
		warning(nil, w.Error())
	}
	if errs.HasFatal() {
		for _, e := range errs.All() {
			if e.Kind.Fatal() {
				reportError("Error", nil, e.Error())
			}
		}
		return false
	}

	_, err = out.Write(zone.Emit())
	if err != nil {
		reportError("Error", err, "writing compiled zone to stdout")
		return false
	}

	log.Minorf("%s: filtered %d records (serial %d)",
		path, len(zone.Records), zone.Serial)

	return true
}
