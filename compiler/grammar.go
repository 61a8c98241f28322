package compiler

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// fieldKind selects the decoder for one positional rdata field.
type fieldKind int

const (
	fieldName fieldKind = iota // domain name, qualified against the origin
	fieldUint8
	fieldUint16
	fieldUint32
	fieldIPv4
	fieldIPv6
	fieldString // character-string, quoted on output
	fieldBase64 // base64 blob, may span several tokens
	fieldHex    // hex blob, may span several tokens
)

// field is one entry of a record type's rdata grammar.
type field struct {
	name string
	kind fieldKind
}

// rtype is the grammar for one record type: the ordered, typed rdata
// fields. When repeats is true the final field may occur one or more
// times (TXT strings); blob fields always consume all remaining tokens.
type rtype struct {
	name    string
	fields  []field
	repeats bool
}

// grammarTable maps type mnemonic to its rdata grammar. Initialized once
// and never mutated afterwards so concurrent compilations share it freely.
var grammarTable = map[string]*rtype{
	"SOA": {name: "SOA", fields: []field{
		{"mname", fieldName},
		{"rname", fieldName},
		{"serial", fieldUint32},
		{"refresh", fieldUint32},
		{"retry", fieldUint32},
		{"expire", fieldUint32},
		{"minimum", fieldUint32},
	}},
	"NS":    {name: "NS", fields: []field{{"nsdname", fieldName}}},
	"A":     {name: "A", fields: []field{{"address", fieldIPv4}}},
	"AAAA":  {name: "AAAA", fields: []field{{"address", fieldIPv6}}},
	"CNAME": {name: "CNAME", fields: []field{{"target", fieldName}}},
	"DNAME": {name: "DNAME", fields: []field{{"target", fieldName}}},
	"PTR":   {name: "PTR", fields: []field{{"ptrdname", fieldName}}},
	"MX": {name: "MX", fields: []field{
		{"priority", fieldUint16},
		{"exchange", fieldName},
	}},
	"TXT": {name: "TXT", fields: []field{{"text", fieldString}}, repeats: true},
	"SPF": {name: "SPF", fields: []field{{"text", fieldString}}, repeats: true},
	"SRV": {name: "SRV", fields: []field{
		{"priority", fieldUint16},
		{"weight", fieldUint16},
		{"port", fieldUint16},
		{"target", fieldName},
	}},
	"CAA": {name: "CAA", fields: []field{
		{"flags", fieldUint8},
		{"tag", fieldString},
		{"value", fieldString},
	}},
	"HINFO": {name: "HINFO", fields: []field{
		{"cpu", fieldString},
		{"os", fieldString},
	}},
	"NAPTR": {name: "NAPTR", fields: []field{
		{"order", fieldUint16},
		{"preference", fieldUint16},
		{"flags", fieldString},
		{"service", fieldString},
		{"regexp", fieldString},
		{"replacement", fieldName},
	}},
	"DS": {name: "DS", fields: []field{
		{"keytag", fieldUint16},
		{"algorithm", fieldUint8},
		{"digesttype", fieldUint8},
		{"digest", fieldHex},
	}},
	"SSHFP": {name: "SSHFP", fields: []field{
		{"algorithm", fieldUint8},
		{"fptype", fieldUint8},
		{"fingerprint", fieldHex},
	}},
	"TLSA": {name: "TLSA", fields: []field{
		{"usage", fieldUint8},
		{"selector", fieldUint8},
		{"matchingtype", fieldUint8},
		{"certdata", fieldHex},
	}},
	"DNSKEY": {name: "DNSKEY", fields: []field{
		{"flags", fieldUint16},
		{"protocol", fieldUint8},
		{"algorithm", fieldUint8},
		{"publickey", fieldBase64},
	}},
}

// lookupType returns the grammar for a mnemonic, or nil if the type is
// unknown to the table. Lookup is case insensitive.
func lookupType(mnemonic string) *rtype {
	return grammarTable[strings.ToUpper(mnemonic)]
}

// isKnownClass recognizes the class mnemonics the parser has to
// disambiguate from TTLs and type mnemonics.
func isKnownClass(s string) bool {
	switch strings.ToUpper(s) {
	case "IN", "CH", "HS", "CS":
		return true
	}
	return false
}

// uintBits maps the numeric field kinds to their bit widths.
func (k fieldKind) uintBits() int {
	switch k {
	case fieldUint8:
		return 8
	case fieldUint16:
		return 16
	case fieldUint32:
		return 32
	}
	return 0
}

// decodeField converts the token(s) for one rdata field into its canonical
// presentation form. Blob kinds consume every remaining token; all others
// consume exactly one. The returned string is what the emitter prints,
// guaranteeing that validation and output share one notion of each field.
func decodeField(f field, toks []token, origin string) (value string, consumed int, err error) {
	if len(toks) == 0 {
		return "", 0, fmt.Errorf("missing field %q", f.name)
	}
	tok := toks[0]

	switch f.kind {
	case fieldName:
		if tok.quoted() {
			return "", 0, fmt.Errorf("field %q must be a domain name, not a quoted string", f.name)
		}
		name, nerr := qualifyName(tok.text, origin)
		if nerr != nil {
			return "", 0, nerr
		}
		return name, 1, nil

	case fieldUint8, fieldUint16, fieldUint32:
		n, perr := strconv.ParseUint(tok.text, 10, f.kind.uintBits())
		if perr != nil || tok.quoted() {
			return "", 0, fmt.Errorf("field %q requires a %d-bit unsigned integer, got %q",
				f.name, f.kind.uintBits(), tok.text)
		}
		return strconv.FormatUint(n, 10), 1, nil

	case fieldIPv4:
		ip := net.ParseIP(tok.text)
		if ip == nil || ip.To4() == nil || !strings.Contains(tok.text, ".") {
			return "", 0, fmt.Errorf("field %q requires an IPv4 address, got %q", f.name, tok.text)
		}
		return ip.To4().String(), 1, nil

	case fieldIPv6:
		ip := net.ParseIP(tok.text)
		if ip == nil || !strings.Contains(tok.text, ":") {
			return "", 0, fmt.Errorf("field %q requires an IPv6 address, got %q", f.name, tok.text)
		}
		return ip.String(), 1, nil

	case fieldString:
		if len(tok.text) > 255 {
			return "", 0, fmt.Errorf("field %q exceeds 255 bytes", f.name)
		}
		return tok.text, 1, nil

	case fieldBase64:
		var sb strings.Builder
		for _, tk := range toks {
			sb.WriteString(tk.text)
		}
		blob := sb.String()
		if _, berr := base64.StdEncoding.DecodeString(blob); berr != nil {
			return "", 0, fmt.Errorf("field %q is not valid base64", f.name)
		}
		return blob, len(toks), nil

	case fieldHex:
		var sb strings.Builder
		for _, tk := range toks {
			sb.WriteString(strings.ToUpper(tk.text))
		}
		blob := sb.String()
		if _, herr := hex.DecodeString(blob); herr != nil {
			return "", 0, fmt.Errorf("field %q is not valid hex", f.name)
		}
		return blob, len(toks), nil
	}

	return "", 0, fmt.Errorf("field %q has an unknown decoder", f.name)
}

// quoteString renders a character-string field back into presentation
// form: always quoted, with the escapes the tokenizer understands.
func quoteString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' || c == '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case c < 0x20 || c > 0x7e:
			fmt.Fprintf(&sb, "\\%03d", c)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')

	return sb.String()
}
