package compiler

import (
	"strings"
)

// validate decodes each record's rdata against the grammar table and runs
// the cross-record checks: single SOA, SOA first and at the apex, CNAME
// exclusivity and out-of-zone owners. Field decoding rewrites rr.Rdata
// into canonical presentation form; the emitter prints those fields
// verbatim, so what was validated is exactly what is emitted.
func validate(rrs []*RR, passthrough bool, errs *ErrorList) {
	for _, rr := range rrs {
		validateRData(rr, passthrough, errs)
	}

	soa := crossValidateSOA(rrs, errs)
	crossValidateCNAME(rrs, errs)
	if soa != nil {
		crossValidateApex(rrs, soa.Owner, errs)
	}
}

// validateRData decodes one record's rdata positionally.
func validateRData(rr *RR, passthrough bool, errs *ErrorList) {
	rt := lookupType(rr.Type)
	if rt == nil {
		if !passthrough {
			errs.add(UnknownRecordType, rr.Pos, "record type %s is not supported", rr.Type)
			return
		}
		if len(rr.raw) == 0 {
			errs.add(InvalidRData, rr.Pos, "type %s: passthrough record has no rdata", rr.Type)
			return
		}
		rr.Opaque = true
		for _, tok := range rr.raw {
			if tok.quoted() {
				rr.Rdata = append(rr.Rdata, quoteString(tok.text))
			} else {
				rr.Rdata = append(rr.Rdata, tok.text)
			}
		}
		return
	}

	toks := rr.raw
	for i, f := range rt.fields {
		value, consumed, err := decodeField(f, toks, rr.origin)
		if err != nil {
			errs.add(InvalidRData, rr.Pos, "type %s: %s", rt.name, err)
			return
		}
		rr.Rdata = append(rr.Rdata, value)
		toks = toks[consumed:]

		// The final field of a repeating grammar soaks up the rest
		if rt.repeats && i == len(rt.fields)-1 {
			for len(toks) > 0 {
				value, consumed, err = decodeField(f, toks, rr.origin)
				if err != nil {
					errs.add(InvalidRData, rr.Pos, "type %s: %s", rt.name, err)
					return
				}
				rr.Rdata = append(rr.Rdata, value)
				toks = toks[consumed:]
			}
		}
	}

	if len(toks) > 0 {
		errs.add(InvalidRData, rr.Pos, "type %s: %d excess rdata field(s) starting at %q",
			rt.name, len(toks), toks[0].text)
	}
}

// crossValidateSOA enforces exactly one SOA and that it comes first.
// Returns the SOA for apex checks, or nil if the zone is too broken to
// anchor one.
func crossValidateSOA(rrs []*RR, errs *ErrorList) *RR {
	var soa *RR
	for _, rr := range rrs {
		if rr.Type != "SOA" {
			continue
		}
		if soa != nil {
			errs.add(DuplicateSOA, rr.Pos, "zone already has an SOA at %s", soa.Pos)
			continue
		}
		soa = rr
	}

	if soa == nil {
		if len(rrs) > 0 {
			errs.add(ParseError, rrs[0].Pos, "zone has no SOA record")
		}
		return nil
	}
	if rrs[0] != soa {
		errs.add(ParseError, soa.Pos, "SOA must be the first record of the zone")
	}

	return soa
}

// crossValidateCNAME rejects a CNAME owner that coexists with any other
// record at the same owner name. Owner names compare case-insensitively
// so the grouping keys are folded, the same as inDomain below.
func crossValidateCNAME(rrs []*RR, errs *ErrorList) {
	types := make(map[string]map[string]bool)
	for _, rr := range rrs {
		owner := strings.ToLower(rr.Owner)
		m := types[owner]
		if m == nil {
			m = make(map[string]bool)
			types[owner] = m
		}
		m[rr.Type] = true
	}

	seen := make(map[string]bool)
	for _, rr := range rrs {
		owner := strings.ToLower(rr.Owner)
		if rr.Type != "CNAME" || seen[owner] {
			continue
		}
		seen[owner] = true
		if len(types[owner]) > 1 {
			errs.add(CNAMEConflict, rr.Pos,
				"CNAME owner %s has other record types", rr.Owner)
		}
	}
}

// crossValidateApex warns about owners lying outside the zone apex. NS
// records are exempt, as are A/AAAA glue under a delegated NS owner.
func crossValidateApex(rrs []*RR, apex string, errs *ErrorList) {
	var nsOwners []string
	for _, rr := range rrs {
		if rr.Type == "NS" {
			nsOwners = append(nsOwners, rr.Owner)
		}
	}

	for _, rr := range rrs {
		if inDomain(rr.Owner, apex) || rr.Type == "NS" {
			continue
		}
		if rr.Type == "A" || rr.Type == "AAAA" {
			glue := false
			for _, ns := range nsOwners {
				if inDomain(rr.Owner, ns) {
					glue = true
					break
				}
			}
			if glue {
				continue
			}
		}
		errs.add(OutOfZone, rr.Pos, "owner %s lies outside zone %s", rr.Owner, apex)
	}
}

// inDomain returns true if sub equals or is beneath parent. Both names
// are expected to be absolute by the time this runs.
func inDomain(sub, parent string) bool {
	if parent == "." {
		return true
	}
	if strings.EqualFold(sub, parent) {
		return true
	}

	return len(sub) > len(parent) &&
		strings.EqualFold(sub[len(sub)-len(parent)-1:], "."+parent)
}
