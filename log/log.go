package log

import (
	"fmt"
	"io"
	"os"
	"strings"
)

type logLevel int

const (
	SilentLevel logLevel = iota
	MajorLevel
	MinorLevel
	DebugLevel
)

var (
	majorPrefix = ""        // Prepended to each output line. Fixed values;
	minorPrefix = "  "      // nothing has needed them to be configurable
	debugPrefix = "   Dbg:" // so far.

	out   io.Writer
	level logLevel
)

func init() {
	out = os.Stdout
}

func (t logLevel) String() string {
	switch t {
	case MajorLevel:
		return "Major"
	case MinorLevel:
		return "Minor"
	case DebugLevel:
		return "Debug"
	}

	return "Silent"
}

// SetOut redirects all logging to the supplied io.Writer. The default is
// os.Stdout. The writer must never be nil.
func SetOut(w io.Writer) {
	if w == nil {
		panic("log.SetOut() called with a nil io.Writer")
	}
	out = w
}

// Out returns the current output writer for callers which produce output
// regardless of log level, such as usage text and error reporting.
func Out() io.Writer {
	return out
}

// SetLevel sets the current logging level.
func SetLevel(l logLevel) {
	level = l
}

// Level returns the current logging level.
func Level() logLevel {
	return level
}

// IfMajor returns true if Major logging reaches the output stream. The If*
// functions let callers skip expensive argument construction when the
// output would be discarded anyway.
func IfMajor() bool {
	return level >= MajorLevel
}

func IfMinor() bool {
	return level >= MinorLevel
}

func IfDebug() bool {
	return level >= DebugLevel
}

// Majorf is a fmt.Printf equivalent which only generates output when the
// level is at least Major. A newline is always appended so the caller
// should not supply one.
func Majorf(format string, a ...interface{}) (n int, err error) {
	if level >= MajorLevel {
		s := fmt.Sprintf(format, a...)
		return prefixAndPrintLines(s, majorPrefix)
	}

	return 0, nil
}

// Major is a fmt.Print equivalent which only generates output when the
// level is at least Major.
func Major(a ...interface{}) (n int, err error) {
	if level >= MajorLevel {
		s := fmt.Sprint(a...)
		return prefixAndPrintLines(s, majorPrefix)
	}

	return 0, nil
}

// Minorf is a fmt.Printf equivalent which only generates output when the
// level is at least Minor.
func Minorf(format string, a ...interface{}) (n int, err error) {
	if level >= MinorLevel {
		s := fmt.Sprintf(format, a...)
		return prefixAndPrintLines(s, minorPrefix)
	}

	return 0, nil
}

// Minor is a fmt.Print equivalent which only generates output when the
// level is at least Minor.
func Minor(a ...interface{}) (n int, err error) {
	if level >= MinorLevel {
		s := fmt.Sprint(a...)
		return prefixAndPrintLines(s, minorPrefix)
	}

	return 0, nil
}

// Debugf is a fmt.Printf equivalent which only generates output when the
// level is at least Debug.
func Debugf(format string, a ...interface{}) (n int, err error) {
	if level >= DebugLevel {
		s := fmt.Sprintf(format, a...)
		return prefixAndPrintLines(s, debugPrefix)
	}

	return 0, nil
}

// Debug is a fmt.Print equivalent which only generates output when the
// level is at least Debug.
func Debug(a ...interface{}) (n int, err error) {
	if level >= DebugLevel {
		s := fmt.Sprint(a...)
		return prefixAndPrintLines(s, debugPrefix)
	}

	return 0, nil
}

// prefixAndPrintLines sends potentially multiple lines to the output
// stream with each line prefixed by the supplied prefix. Trailing empty
// lines are trimmed.
func prefixAndPrintLines(lines, prefix string) (int, error) {
	if strings.Index(lines, "\n") == 0 {
		return fmt.Fprint(out, prefix, lines, "\n")
	}

	ar := strings.Split(lines, "\n")

	for len(ar) > 0 && len(ar[len(ar)-1]) == 0 { // Chomp trailing empty lines
		ar = ar[:len(ar)-1]
	}

	s := strings.Join(ar, "\n"+prefix)

	return fmt.Fprint(out, prefix, s, "\n")
}
