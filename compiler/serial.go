package compiler

import (
	"fmt"
	"strconv"
	"time"
)

// SerialPolicy selects how the SOA serial of a compiled zone is computed.
type SerialPolicy int

const (
	// SerialFixed emits the literal serial from the zone source.
	SerialFixed SerialPolicy = iota

	// SerialAutoIncrement bumps the previous emitted serial by one, but
	// only when the zone content (serial aside) actually changed.
	SerialAutoIncrement

	// SerialDatestamp emits YYYYMMDDnn, incrementing nn while the date
	// matches the previous serial's date.
	SerialDatestamp
)

func (p SerialPolicy) String() string {
	switch p {
	case SerialFixed:
		return "fixed"
	case SerialAutoIncrement:
		return "autoincrement"
	case SerialDatestamp:
		return "datestamp"
	}

	return fmt.Sprintf("SerialPolicy(%d)", int(p))
}

// ParseSerialPolicy converts a configuration string into a policy.
func ParseSerialPolicy(s string) (SerialPolicy, error) {
	switch s {
	case "fixed", "":
		return SerialFixed, nil
	case "autoincrement":
		return SerialAutoIncrement, nil
	case "datestamp":
		return SerialDatestamp, nil
	}

	return SerialFixed, fmt.Errorf("unknown serial policy %q", s)
}

// Prior captures what the serial resolver needs from the previously
// emitted artifact: its serial and its content digest. Valid is false
// when no usable prior artifact exists and policies fall back to their
// baselines.
type Prior struct {
	Serial uint32
	Digest uint64
	Valid  bool
}

// soaSerialIndex is the position of the serial within SOA rdata fields.
const soaSerialIndex = 2

// serialLess compares serials with RFC 1982 serial arithmetic: a is less
// than b iff the mod-2^32 signed difference b-a is positive. Plain
// integer comparison would misorder values across the wrap boundary.
func serialLess(a, b uint32) bool {
	return int32(b-a) > 0
}

// resolveSerial rewrites the zone's SOA serial according to the policy.
// It never decreases the serial: a computed value that regresses from the
// prior (in serial-arithmetic terms) is replaced with prior+1 and a
// SerialRegression warning. Runs only on a fully validated zone.
func resolveSerial(z *Zone, policy SerialPolicy, prior Prior, now time.Time, errs *ErrorList) {
	if z.SOA == nil || len(z.SOA.Rdata) <= soaSerialIndex {
		return
	}

	source, perr := strconv.ParseUint(z.SOA.Rdata[soaSerialIndex], 10, 32)
	if perr != nil {
		return // Validation has already rejected the field
	}

	var serial uint32
	switch policy {
	case SerialFixed:
		serial = uint32(source)

	case SerialAutoIncrement:
		if !prior.Valid {
			serial = 1
			break
		}
		if z.ContentDigest() == prior.Digest {
			serial = prior.Serial
			break
		}
		serial = prior.Serial + 1 // Mod 2^32; wrapping to 0 is correct here

	case SerialDatestamp:
		if prior.Valid && z.ContentDigest() == prior.Digest {
			serial = prior.Serial
			break
		}
		base := uint32(now.Year())*1000000 + uint32(now.Month())*10000 + uint32(now.Day())*100
		serial = base
		if prior.Valid && prior.Serial/100 == base/100 {
			nn := prior.Serial%100 + 1
			if nn > 99 {
				// Day's worth of bumps exhausted; the regression rule
				// below takes over
				serial = prior.Serial
			} else {
				serial = base + nn
			}
		}
	}

	if prior.Valid && serialLess(serial, prior.Serial) {
		errs.add(SerialRegression, z.SOA.Pos,
			"computed serial %d regresses from prior %d; using %d",
			serial, prior.Serial, prior.Serial+1)
		serial = prior.Serial + 1
	} else if prior.Valid && serial == prior.Serial && policy == SerialDatestamp &&
		z.ContentDigest() != prior.Digest {
		// Datestamp nn overflowed above: force a bump
		errs.add(SerialRegression, z.SOA.Pos,
			"datestamp sequence exhausted; using %d", prior.Serial+1)
		serial = prior.Serial + 1
	}

	z.SOA.Rdata[soaSerialIndex] = strconv.FormatUint(uint64(serial), 10)
	z.Serial = serial
}
