package compiler

import (
	"path"
	"strconv"
	"strings"
)

// IncludeResolver supplies the bytes for an $INCLUDE target. The compiler
// performs no file system access itself; paths have already been joined
// relative to the including file, so the resolver only needs to fetch.
type IncludeResolver func(path string) ([]byte, error)

// directiveState is the context a record line is parsed under: the active
// origin, the default TTL (if any $TTL has been seen) and the default
// class. It is copied, never shared, at each include boundary so that a
// child file cannot leak directives back into its parent.
type directiveState struct {
	origin     string
	defaultTTL uint32
	hasTTL     bool
	class      string
}

// rawRecord is a record line as parsed, before names, TTLs and rdata have
// been resolved. The directive state active at the line is snapshotted
// into the record so the resolver never needs parser state.
type rawRecord struct {
	owner    string // "" when the line reuses the previous owner
	hasOwner bool
	ttl      uint32
	hasTTL   bool
	class    string // "" when omitted
	typ      string // upper-cased mnemonic
	rdata    []token
	state    directiveState
	pos      Pos
}

// parser drives one compilation's parse phase, include expansion
// included. The include chain is call-scoped state so concurrent
// compilations of independent zones cannot interfere.
type parser struct {
	include IncludeResolver
	errs    *ErrorList
	chain   []string // active include stack, for cycle detection
	records []rawRecord
}

const maxIncludeDepth = 32

// parseFile tokenizes and parses one file, appending records in source
// order and recursing into includes. The caller's directive state is
// passed by value; mutations stay local to this file and its children.
func (p *parser) parseFile(file, src string, state directiveState) {
	tz := newTokenizer(file, src)

	for {
		toks, lexErr := tz.lineTokens()
		if lexErr != nil {
			p.errs.errors = append(p.errs.errors, lexErr)
			return // Tokenizer cannot continue past a lexical fault
		}
		if toks == nil {
			return
		}

		if toks[0].kind == tokenDirective {
			p.directive(file, toks, &state)
			continue
		}

		p.recordLine(toks, state)
	}
}

// directive handles one $ directive line, mutating this file's state.
func (p *parser) directive(file string, toks []token, state *directiveState) {
	name := strings.ToUpper(toks[0].text)
	args := toks[1:]

	switch name {
	case "$ORIGIN":
		if len(args) != 1 || args[0].quoted() {
			p.errs.add(ParseError, toks[0].pos, "$ORIGIN requires exactly one domain name")
			return
		}
		origin, err := qualifyName(args[0].text, state.origin)
		if err != nil {
			err.Pos = args[0].pos
			p.errs.errors = append(p.errs.errors, err)
			return
		}
		state.origin = origin

	case "$TTL":
		if len(args) != 1 || !args[0].isNumber() {
			p.errs.add(ParseError, toks[0].pos, "$TTL requires one non-negative integer")
			return
		}
		ttl, perr := strconv.ParseUint(args[0].text, 10, 32)
		if perr != nil {
			p.errs.add(ParseError, args[0].pos, "$TTL %s out of range", args[0].text)
			return
		}
		state.defaultTTL = uint32(ttl)
		state.hasTTL = true

	case "$INCLUDE":
		p.includeFile(file, toks, *state)

	default:
		p.errs.add(ParseError, toks[0].pos, "unknown directive %s", toks[0].text)
	}
}

// includeFile expands $INCLUDE <path> [<origin>]. The child inherits the
// including file's state at the point of inclusion, with the optional
// origin override applied; nothing the child does survives its return.
func (p *parser) includeFile(file string, toks []token, state directiveState) {
	args := toks[1:]
	if len(args) < 1 || len(args) > 2 {
		p.errs.add(ParseError, toks[0].pos, "$INCLUDE requires a path and an optional origin")
		return
	}

	target := args[0].text
	if !path.IsAbs(target) {
		target = path.Join(path.Dir(file), target)
	}

	if len(args) == 2 {
		origin, err := qualifyName(args[1].text, state.origin)
		if err != nil {
			err.Pos = args[1].pos
			p.errs.errors = append(p.errs.errors, err)
			return
		}
		state.origin = origin
	}

	for _, active := range p.chain {
		if active == target {
			p.errs.add(IncludeCycle, toks[0].pos, "%s is already on the include chain", target)
			return
		}
	}
	if len(p.chain) >= maxIncludeDepth {
		p.errs.add(IncludeCycle, toks[0].pos, "include depth exceeds %d", maxIncludeDepth)
		return
	}

	if p.include == nil {
		p.errs.add(IncludeNotFound, toks[0].pos, "no include resolver configured for %s", target)
		return
	}
	src, ferr := p.include(target)
	if ferr != nil {
		p.errs.add(IncludeNotFound, toks[0].pos, "%s: %s", target, ferr)
		return
	}

	p.chain = append(p.chain, target)
	p.parseFile(target, string(src), state)
	p.chain = p.chain[:len(p.chain)-1]
}

// recordLine parses `[owner] [ttl] [class] type rdata...`. TTL and class
// may appear in either order per RFC convention: a token that parses as a
// number is the TTL, a recognized class mnemonic is the class. The owner
// is present exactly when the line starts in column one.
func (p *parser) recordLine(toks []token, state directiveState) {
	rec := rawRecord{state: state, pos: toks[0].pos}

	if toks[0].pos.Col == 1 {
		if toks[0].quoted() {
			p.errs.add(ParseError, toks[0].pos, "owner name cannot be a quoted string")
			return
		}
		rec.owner = toks[0].text
		rec.hasOwner = true
		toks = toks[1:]
	}

	for len(toks) > 0 {
		tok := toks[0]
		if tok.isNumber() && !rec.hasTTL {
			ttl, perr := strconv.ParseUint(tok.text, 10, 32)
			if perr != nil {
				p.errs.add(ParseError, tok.pos, "TTL %s out of range", tok.text)
				return
			}
			rec.ttl = uint32(ttl)
			rec.hasTTL = true
			toks = toks[1:]
			continue
		}
		if tok.kind == tokenText && isKnownClass(tok.text) && rec.class == "" {
			rec.class = strings.ToUpper(tok.text)
			toks = toks[1:]
			continue
		}
		break
	}

	if len(toks) == 0 {
		p.errs.add(ParseError, rec.pos, "record is missing a type mnemonic")
		return
	}
	if toks[0].quoted() {
		p.errs.add(ParseError, toks[0].pos, "record type cannot be a quoted string")
		return
	}

	rec.typ = strings.ToUpper(toks[0].text)
	rec.rdata = toks[1:]
	p.records = append(p.records, rec)
}
