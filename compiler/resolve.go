package compiler

import (
	"strconv"
	"strings"
)

const (
	maxLabelLen = 63
	maxNameLen  = 255
)

// RR is a fully resolved resource record: absolute owner name, concrete
// TTL and class, and (after validation) canonical rdata fields.
type RR struct {
	Owner string
	TTL   uint32
	Class string
	Type  string
	Rdata []string
	Pos   Pos

	// Opaque marks a record whose type was not in the grammar table but
	// was let through by passthrough mode. Its rdata is unexamined.
	Opaque bool

	raw    []token // rdata tokens awaiting validation
	origin string  // origin active at the record, for rdata names
}

// splitLabels breaks a presentation-form name into labels honoring
// backslash escapes, so an escaped dot never starts a new label. The
// trailing empty label of an absolute name is not returned.
func splitLabels(name string) []string {
	var labels []string
	var sb strings.Builder
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '\\' && i+1 < len(name) {
			sb.WriteByte(c)
			i++
			sb.WriteByte(name[i])
			continue
		}
		if c == '.' {
			labels = append(labels, sb.String())
			sb.Reset()
			continue
		}
		sb.WriteByte(c)
	}
	if sb.Len() > 0 {
		labels = append(labels, sb.String())
	}

	return labels
}

// labelBytes is the wire length of one presentation-form label: escape
// sequences collapse to a single byte.
func labelBytes(label string) int {
	n := 0
	for i := 0; i < len(label); i++ {
		if label[i] == '\\' && i+1 < len(label) {
			if i+3 < len(label) && label[i+1] >= '0' && label[i+1] <= '9' {
				i += 3 // \DDD
			} else {
				i++
			}
		}
		n++
	}

	return n
}

// qualifyName converts a possibly relative name into an absolute one using
// the supplied origin and enforces the protocol limits: 63 bytes per
// label, 255 bytes overall. "@" denotes the origin itself. The returned
// Error carries no position; the caller knows where the name came from.
func qualifyName(name, origin string) (string, *Error) {
	switch {
	case name == "@":
		name = origin
	case name == ".":
		// Root, already absolute
	case !strings.HasSuffix(name, ".") || strings.HasSuffix(name, "\\."):
		if origin == "." {
			name += "."
		} else {
			name += "." + origin
		}
	}

	if name == "" {
		return "", &Error{Kind: ParseError, Msg: "empty domain name"}
	}
	if name == "." {
		return name, nil
	}

	total := 0
	for _, label := range splitLabels(name) {
		n := labelBytes(label)
		if n == 0 {
			return "", &Error{Kind: ParseError, Msg: "empty label in name " + name}
		}
		if n > maxLabelLen {
			return "", &Error{Kind: LabelTooLong,
				Msg: "label " + label + " exceeds " + strconv.Itoa(maxLabelLen) + " bytes"}
		}
		total += n + 1
	}
	if total+1 > maxNameLen { // +1 for the root label length byte
		return "", &Error{Kind: NameTooLong,
			Msg: "name " + name + " exceeds " + strconv.Itoa(maxNameLen) + " bytes"}
	}

	return name, nil
}

// resolve walks raw records in source order producing resolved records:
// continuation lines take the previous owner, relative names join the
// active origin, omitted TTLs take the $TTL default and omitted classes
// default to IN.
//
// TTL defaulting rule: when no $TTL is in scope, the SOA's own minimum
// field serves as the zone's implicit default, both for the SOA itself
// and for subsequent records. A non-SOA record before any default exists
// is a fatal MissingDefaultTTL.
func resolve(raw []rawRecord, errs *ErrorList) []*RR {
	var out []*RR
	var prevOwner string
	var soaMinimum uint32
	var haveSOAMinimum bool

	for i := range raw {
		rec := &raw[i]

		var owner string
		if rec.hasOwner {
			var err *Error
			owner, err = qualifyName(rec.owner, rec.state.origin)
			if err != nil {
				err.Pos = rec.pos
				errs.errors = append(errs.errors, err)
				continue
			}
			prevOwner = owner
		} else {
			if prevOwner == "" {
				errs.add(ParseError, rec.pos,
					"first record cannot omit its owner name")
				continue
			}
			owner = prevOwner
		}

		rr := &RR{
			Owner:  owner,
			Class:  rec.class,
			Type:   rec.typ,
			Pos:    rec.pos,
			raw:    rec.rdata,
			origin: rec.state.origin,
		}
		if rr.Class == "" {
			rr.Class = "IN"
		}

		switch {
		case rec.hasTTL:
			rr.TTL = rec.ttl
		case rec.state.hasTTL:
			rr.TTL = rec.state.defaultTTL
		case rr.Type == "SOA":
			// Resolved below once the minimum field is known
		case haveSOAMinimum:
			rr.TTL = soaMinimum
		default:
			errs.add(MissingDefaultTTL, rec.pos,
				"no $TTL in scope and no SOA minimum to default from")
			continue
		}

		if rr.Type == "SOA" && !haveSOAMinimum {
			if min, ok := soaMinimumField(rec.rdata); ok {
				soaMinimum = min
				haveSOAMinimum = true
				if !rec.hasTTL && !rec.state.hasTTL {
					rr.TTL = min
				}
			}
			// A malformed SOA is left for the validator to report
		}

		out = append(out, rr)
	}

	return out
}

// soaMinimumField extracts the trailing minimum field of an SOA rdata
// token list, tolerating malformed rdata by reporting absence.
func soaMinimumField(toks []token) (uint32, bool) {
	if len(toks) != len(grammarTable["SOA"].fields) {
		return 0, false
	}
	last := toks[len(toks)-1]
	if !last.isNumber() {
		return 0, false
	}
	min, err := strconv.ParseUint(last.text, 10, 32)
	if err != nil {
		return 0, false
	}

	return uint32(min), true
}
