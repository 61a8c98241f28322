package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/miekg/dns"

	"zonec/compiler"
	"zonec/log"
)

// compileJob is the unit of parallel work: one zone source file compiled
// to one output file. Jobs share the read-only config and grammar table;
// everything mutable is per-job, so independent zones never interfere.
type compileJob struct {
	source string
	output string
	errs   *compiler.ErrorList
	zone   *compiler.Zone
}

// outputPathFor maps a zone source path to its output destination under
// the --out rules. Only recognized source suffixes are stripped: a source
// named after its zone (example.com, example.org) keeps its full name so
// two such zones never collide on one output path.
func (t *zoneCompiler) outputPathFor(source string) string {
	base := filepath.Base(source)
	switch ext := filepath.Ext(base); ext {
	case ".db", ".src", ".txt":
		base = strings.TrimSuffix(base, ext)
	}
	base += ".zone"

	out := t.cfg.outputPath
	if out == "" {
		return filepath.Join(filepath.Dir(source), base)
	}
	if fi, err := os.Stat(out); err == nil && fi.IsDir() {
		return filepath.Join(out, base)
	}

	return out
}

// runAll compiles every zone, one goroutine per zone. Returns false if
// any zone failed. Two sources mapping to one output path would race
// their writes and read each other's artifact as a serial prior, so the
// whole run is refused before any job starts.
func (t *zoneCompiler) runAll(sources []string) bool {
	outputs := make(map[string]string, len(sources))
	for _, source := range sources {
		output := t.outputPathFor(source)
		if prev, dup := outputs[output]; dup {
			reportError("Error", nil, prev, "and", source, "both compile to", output)
			return false
		}
		outputs[output] = source
	}

	jobs := make([]*compileJob, len(sources))
	var wg sync.WaitGroup
	for ix, source := range sources {
		jobs[ix] = &compileJob{source: source, output: t.outputPathFor(source)}
		wg.Add(1)
		go func(job *compileJob) {
			defer wg.Done()
			t.compileOne(job)
		}(jobs[ix])
	}
	wg.Wait()

	ok := true
	for _, job := range jobs {
		for _, w := range job.errs.Warnings() {
			warning(nil, w.Error())
		}
		if job.errs.HasFatal() {
			ok = false
			for _, e := range job.errs.All() {
				if e.Kind.Fatal() {
					reportError("Error", nil, e.Error())
				}
			}
			log.Majorf("%s: failed", job.source)
			continue
		}
		log.Majorf("%s: compiled to %s (serial %d)",
			job.source, job.output, job.zone.Serial)
		log.Minorf("%s: %d records, origin %s, default TTL %d",
			job.source, len(job.zone.Records), job.zone.Origin, job.zone.TTL)
	}

	return ok
}

// compileOne runs the pipeline for a single source file and, unless in
// check mode, writes the emitted zone atomically: a temporary file in the
// destination directory renamed into place only after the output has been
// verified. A failed zone never leaves partial output behind.
func (t *zoneCompiler) compileOne(job *compileJob) {
	src, err := os.ReadFile(job.source)
	if err != nil {
		job.errs = compiler.ExternalError(compiler.IncludeNotFound, job.source, "%s", err)
		return
	}

	job.zone, job.errs = compiler.Compile(job.source, src, compiler.Options{
		Policy:      t.cfg.policy,
		Passthrough: t.cfg.passthroughFlag,
		Include:     readInclude,
		Prior:       readPrior(job.output),
	})
	if job.errs.HasFatal() {
		return
	}

	out := job.zone.Emit()
	if err = verifyEmitted(out, job.output); err != nil {
		job.errs = compiler.ExternalError(compiler.InvalidRData, job.source,
			"emitted zone failed verification: %s", err)
		return
	}

	log.Debugf("%s: verified %d bytes", job.source, len(out))

	if t.cfg.checkFlag {
		return
	}

	if err = writeAtomic(job.output, out); err != nil {
		job.errs = compiler.ExternalError(compiler.IncludeNotFound, job.output, "%s", err)
	}
}

// readInclude is the file system include resolver handed to the core. The
// core has already joined the path relative to the including file.
func readInclude(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// readPrior fetches the previously emitted artifact, if any, for the
// serial policies that need it.
func readPrior(path string) []byte {
	prior, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	return prior
}

// verifyEmitted runs the canonical output through an independent zone
// parser before it is allowed near the output path. The compiler's own
// validation should make failure impossible; this guards against emitter
// regressions reaching a nameserver.
func verifyEmitted(out []byte, path string) error {
	parser := dns.NewZoneParser(bytes.NewReader(out), "", path)
	parser.SetIncludeAllowed(false)

	for _, ok := parser.Next(); ok; _, ok = parser.Next() {
	}

	return parser.Err()
}

// writeAtomic writes via a temporary file and rename so a reader of the
// output path never observes a partial zone.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}

	_, err = tmp.Write(data)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return err
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return nil
}
