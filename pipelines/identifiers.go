package pipelines

import "strings"

// Identifier normalization. Every function here is total: malformed input is
// returned unchanged, never rejected.

// StripVersion removes a trailing ".<digits>" version suffix from an
// accession: "PF00329.26" -> "PF00329", "NF009141.0" -> "NF009141". An absent
// or non-numeric suffix leaves the accession unchanged.
func StripVersion(id string) string {
	dot := strings.LastIndexByte(id, '.')
	if dot < 0 {
		return id
	}
	if !allDigits(id[dot+1:]) {
		return id
	}
	return id[:dot]
}

// CanonicalGroupID converts a purely numeric raw id (after stripping a
// numeric version suffix) to its prefixed public form: "143243.1" with prefix
// "SSF" -> "SSF143243". Ids already carrying the prefix and non-numeric bases
// are returned unchanged.
func CanonicalGroupID(raw, prefix string) string {
	if raw == "" || strings.HasPrefix(raw, prefix) {
		return raw
	}
	base := StripVersion(raw)
	if !allDigits(base) {
		return raw
	}
	return prefix + base
}

// BaseFamilyID strips everything after the first "." when the remaining
// prefix matches the family code: "PTHR16038.orig.30.pir" with prefix "PTHR"
// -> "PTHR16038". Anything else is returned unchanged.
func BaseFamilyID(raw, prefix string) string {
	base, _, found := strings.Cut(raw, ".")
	if !found || !strings.HasPrefix(base, prefix) {
		return raw
	}
	return base
}

// StripIterationSuffix removes a trailing "-i<digit>" iteration marker from a
// model name: "1o7iB00-i2" -> "1o7iB00". Names without the marker are
// returned unchanged.
func StripIterationSuffix(name string) string {
	n := len(name)
	if n < 3 {
		return name
	}
	if name[n-3] == '-' && name[n-2] == 'i' && name[n-1] >= '0' && name[n-1] <= '9' {
		return name[:n-3]
	}
	return name
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
