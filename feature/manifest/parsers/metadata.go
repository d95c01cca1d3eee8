package parsers

import (
	"regexp"
	"strings"
	"time"

	"baggage-manager/feature/manifest/models"
)

// UnknownValue marks metadata the file never declared. Validation rejects a
// manifest whose flight number stays unknown.
const UnknownValue = "UNKNOWN"

var (
	labeledFlight = regexp.MustCompile(`(?im)^\s*(?:FLIGHT|FLT|VOL)\s*[:#]?\s*([A-Z]{2}\s?\d{3,4})\b`)
	labeledDate   = regexp.MustCompile(`(?im)^\s*(?:DATE|FLIGHT\s+DATE)\s*[:#]?\s*([0-9/\-]{6,10})\b`)
	labeledRoute  = regexp.MustCompile(`(?im)^\s*(?:ROUTE|ROUTING|SECTOR)\s*[:#]?\s*([A-Z]{3})\s*[-/>]\s*([A-Z]{3})\b`)

	flightToken = regexp.MustCompile(`\b([A-Z]{2})\s?(\d{3,4})\b`)
	dateToken   = regexp.MustCompile(`\b(\d{8}|\d{2}[/\-]\d{2}[/\-]\d{4}|\d{4}-\d{2}-\d{2})\b`)
)

// airlineNames maps known two-letter codes to the printed carrier name.
var airlineNames = map[string]string{
	"ET": "Ethiopian Airlines",
	"KP": "ASKY Airlines",
	"HF": "Air Cote d'Ivoire",
	"KQ": "Kenya Airways",
	"AF": "Air France",
	"SN": "Brussels Airlines",
	"AT": "Royal Air Maroc",
}

// ExtractMetadata fills flight fields of a parsed manifest from labeled
// header lines first, falling back to token scans of the content and the
// filename. Missing values are set to the unknown sentinel, except the date
// which defaults to the processing day.
func ExtractMetadata(parsed *models.ParsedManifest, content, filename string) {
	upper := strings.ToUpper(content)
	nameTokens := strings.ToUpper(strings.ReplaceAll(filename, "_", " "))

	parsed.FlightNumber = findFlight(upper, nameTokens)
	parsed.FlightDate = findDate(upper, nameTokens)

	if m := labeledRoute.FindStringSubmatch(upper); m != nil {
		parsed.Origin = m[1]
		parsed.Destination = m[2]
	}

	if code := flightCode(parsed.FlightNumber); code != "" {
		parsed.AirlineCode = code
		if name, ok := airlineNames[code]; ok {
			parsed.Airline = name
		}
	}
}

func findFlight(content, filename string) string {
	if m := labeledFlight.FindStringSubmatch(content); m != nil {
		return strings.ReplaceAll(m[1], " ", "")
	}
	for _, haystack := range []string{content, filename} {
		if m := flightToken.FindStringSubmatch(haystack); m != nil {
			return m[1] + m[2]
		}
	}
	return UnknownValue
}

func findDate(content, filename string) string {
	if m := labeledDate.FindStringSubmatch(content); m != nil {
		if iso := normalizeDate(m[1]); iso != "" {
			return iso
		}
	}
	for _, haystack := range []string{content, filename} {
		if m := dateToken.FindStringSubmatch(haystack); m != nil {
			if iso := normalizeDate(m[1]); iso != "" {
				return iso
			}
		}
	}
	return time.Now().Format("2006-01-02")
}

// normalizeDate converts the date spellings seen in manifests to ISO form.
// Day-first order is assumed for slash and dash dates; the files come from
// francophone stations.
func normalizeDate(raw string) string {
	for _, layout := range []string{"2006-01-02", "20060102", "02/01/2006", "02-01-2006"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

// flightCode extracts the two-letter airline code from a flight number.
func flightCode(flight string) string {
	if len(flight) >= 2 && flight != UnknownValue {
		code := flight[:2]
		if code[0] >= 'A' && code[0] <= 'Z' && code[1] >= 'A' && code[1] <= 'Z' {
			return code
		}
	}
	return ""
}
