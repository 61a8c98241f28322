package compiler

import (
	"fmt"
	"sort"
	"strings"
)

// Kind classifies a compilation error. Each kind corresponds to one failure
// mode of the pipeline so that callers (and tests) can act on errors without
// string matching.
type Kind int

const (
	LexError Kind = iota
	ParseError
	MissingDefaultTTL
	LabelTooLong
	NameTooLong
	UnknownRecordType
	InvalidRData
	DuplicateSOA
	CNAMEConflict
	IncludeCycle
	IncludeNotFound
	SerialRegression
	OutOfZone
)

func (k Kind) String() string {
	switch k {
	case LexError:
		return "LexError"
	case ParseError:
		return "ParseError"
	case MissingDefaultTTL:
		return "MissingDefaultTTL"
	case LabelTooLong:
		return "LabelTooLong"
	case NameTooLong:
		return "NameTooLong"
	case UnknownRecordType:
		return "UnknownRecordType"
	case InvalidRData:
		return "InvalidRData"
	case DuplicateSOA:
		return "DuplicateSOA"
	case CNAMEConflict:
		return "CNAMEConflict"
	case IncludeCycle:
		return "IncludeCycle"
	case IncludeNotFound:
		return "IncludeNotFound"
	case SerialRegression:
		return "SerialRegression"
	case OutOfZone:
		return "OutOfZone"
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Fatal returns true if an error of this kind aborts emission. Only
// SerialRegression and OutOfZone are advisory.
func (k Kind) Fatal() bool {
	return k != SerialRegression && k != OutOfZone
}

// Pos locates a token or record in the original source so the administrator
// can find the fault. Line and Column are 1-based. An include error is
// attributed to the $INCLUDE line of the including file, not to the missing
// or faulty file.
type Pos struct {
	File string
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

// Error is a single compilation diagnostic. It implements the error
// interface so a lone fatal error can be returned directly, but the normal
// currency of the compiler is an ErrorList.
type Error struct {
	Kind Kind
	Pos  Pos
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Pos, e.Kind, e.Msg)
}

// ErrorList accumulates diagnostics across the whole pipeline. The zero
// value is ready to use.
type ErrorList struct {
	errors []*Error
}

func (t *ErrorList) add(k Kind, pos Pos, format string, a ...interface{}) {
	t.errors = append(t.errors, &Error{Kind: k, Pos: pos, Msg: fmt.Sprintf(format, a...)})
}

// ExternalError wraps a failure produced outside the pipeline, such as an
// unreadable source file, into a single-entry ErrorList positioned at the
// start of the named file.
func ExternalError(k Kind, file string, format string, a ...interface{}) *ErrorList {
	errs := &ErrorList{}
	errs.add(k, Pos{File: file, Line: 1, Col: 1}, format, a...)

	return errs
}

// All returns every diagnostic collected so far, fatal and warning alike.
func (t *ErrorList) All() []*Error {
	return t.errors
}

// HasFatal returns true if any collected error prevents emission.
func (t *ErrorList) HasFatal() bool {
	for _, e := range t.errors {
		if e.Kind.Fatal() {
			return true
		}
	}

	return false
}

// Warnings returns the advisory subset.
func (t *ErrorList) Warnings() (w []*Error) {
	for _, e := range t.errors {
		if !e.Kind.Fatal() {
			w = append(w, e)
		}
	}

	return
}

// Sort orders diagnostics by file, line then column. Compilation is single
// threaded per zone so this mostly matters when includes interleave.
func (t *ErrorList) Sort() {
	sort.SliceStable(t.errors, func(i, j int) bool {
		a, b := t.errors[i].Pos, t.errors[j].Pos
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Col < b.Col
	})
}

// Error joins all diagnostics, one per line. Satisfies error so an
// ErrorList can be handed straight back to a caller that only wants text.
func (t *ErrorList) Error() string {
	ar := make([]string, 0, len(t.errors))
	for _, e := range t.errors {
		ar = append(ar, e.Error())
	}

	return strings.Join(ar, "\n")
}
