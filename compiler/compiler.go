package compiler

import (
	"time"
)

// Options configures one compilation. The zero value compiles with the
// fixed serial policy, no passthrough and no include resolution.
type Options struct {
	// Policy selects how the SOA serial is computed.
	Policy SerialPolicy

	// Passthrough lets record types absent from the grammar table pass
	// through opaquely instead of failing with UnknownRecordType.
	Passthrough bool

	// Include supplies the bytes for $INCLUDE targets. When nil any
	// $INCLUDE is an IncludeNotFound error.
	Include IncludeResolver

	// Prior is the previously emitted artifact for this zone, if one
	// exists. Read once, to seed the autoincrement and datestamp
	// policies. Nil means no prior artifact.
	Prior []byte

	// Now anchors the datestamp policy. The zero value means time.Now.
	Now time.Time
}

// Zone is the result of a successful compilation: an ordered sequence of
// resolved records with a designated SOA. Origin is the zone apex and TTL
// the default in effect at the end of resolution.
type Zone struct {
	Origin  string
	TTL     uint32
	Serial  uint32
	Records []*RR
	SOA     *RR
}

// Compile runs the whole pipeline over one zone source: tokenize, parse
// (expanding includes through opts.Include), resolve names and defaults,
// validate rdata against the grammar table, resolve the serial, in that
// order. It is a pure function of (src, opts); all file access goes
// through the include resolver and no state survives the call.
//
// On success the returned ErrorList carries only warnings. When it
// contains a fatal error the Zone is nil and nothing may be emitted.
func Compile(file string, src []byte, opts Options) (*Zone, *ErrorList) {
	errs := &ErrorList{}

	p := &parser{
		include: opts.Include,
		errs:    errs,
		chain:   []string{file},
	}
	state := directiveState{origin: "."}
	p.parseFile(file, string(src), state)

	rrs := resolve(p.records, errs)
	if len(rrs) == 0 {
		errs.add(ParseError, Pos{File: file, Line: 1, Col: 1}, "zone contains no records")
	}
	validate(rrs, opts.Passthrough, errs)

	if errs.HasFatal() {
		errs.Sort()
		return nil, errs
	}

	z := &Zone{Records: rrs}
	for _, rr := range rrs {
		if rr.Type == "SOA" {
			z.SOA = rr
			break
		}
	}
	z.Origin = z.SOA.Owner
	z.TTL = zoneDefaultTTL(p.records, z.SOA)

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	resolveSerial(z, opts.Policy, priorState(file, opts.Prior), now, errs)

	errs.Sort()
	return z, errs
}

// zoneDefaultTTL picks the $TTL to announce in the emitted header: the
// last default in effect, or the SOA minimum when the source never set
// one.
func zoneDefaultTTL(raw []rawRecord, soa *RR) uint32 {
	for i := len(raw) - 1; i >= 0; i-- {
		if raw[i].state.hasTTL {
			return raw[i].state.defaultTTL
		}
	}

	return soa.TTL
}

// priorState derives the serial resolver's view of the previous emitted
// artifact by recompiling it under the fixed policy. The prior artifact
// is our own flat canonical output, so includes and passthrough do not
// arise; anything that fails to compile (hand edits, corruption) simply
// means no prior.
func priorState(file string, prior []byte) Prior {
	if len(prior) == 0 {
		return Prior{}
	}

	z, errs := Compile(file+"~prior", prior, Options{Passthrough: true})
	if z == nil || errs.HasFatal() || z.SOA == nil {
		return Prior{}
	}

	return Prior{Serial: z.Serial, Digest: z.ContentDigest(), Valid: true}
}
