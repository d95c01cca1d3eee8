package matching

import "strings"

// knownCarrierPrefixes are the 2-letter IATA carrier codes scanners commonly
// read as part of the printed tag but which partner manifests omit.
var knownCarrierPrefixes = map[string]struct{}{
	"ET": {}, // Ethiopian Airlines
	"KP": {}, // ASKY
	"HF": {}, // Air Cote d'Ivoire
	"KQ": {}, // Kenya Airways
	"AF": {}, // Air France
	"SN": {}, // Brussels Airlines
	"AT": {}, // Royal Air Maroc
}

// NormalizeBagID canonicalizes a bag tag for comparison: trim, uppercase,
// strip a leading known carrier prefix, drop every non-alphanumeric rune.
func NormalizeBagID(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))

	if len(s) > 2 {
		if _, ok := knownCarrierPrefixes[s[:2]]; ok {
			s = s[2:]
		}
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeName canonicalizes a passenger name: trim, uppercase, collapse
// internal whitespace runs to a single space.
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToUpper(s)), " ")
}
