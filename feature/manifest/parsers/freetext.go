package parsers

import (
	"regexp"
	"strings"

	"baggage-manager/core/utils"
	"baggage-manager/feature/manifest/models"
)

// Free text manifests are printed baggage lists with one passenger per line.
// The primary pattern expects a bag tag, a passenger name, a record locator
// and optional trailing seat/class/weight columns:
//
//	ET1234567890 MARTIN/JEAN ABC123 12A Y 15KG
var freetextLine = regexp.MustCompile(
	`^([A-Z]{2}\d{8,11}|\d{10,13})\s+` + // bag tag
		`([A-Z][A-Z'\-]+(?:/[A-Z][A-Z'\- ]*[A-Z])?)\s+` + // name, SURNAME/GIVEN
		`([A-Z0-9]{6})` + // PNR
		`(?:\s+(\d{1,2}[A-Z]))?` + // seat
		`(?:\s+([A-Z]))?` + // class
		`(?:\s+(\d+(?:[.,]\d+)?)\s*KGS?)?` + // weight
		`\s*$`)

// bagTagToken recognizes a lone bag tag at the start of a whitespace-split
// line for the fallback path.
var bagTagToken = regexp.MustCompile(`^(?:[A-Z]{2}\d{8,11}|\d{10,13})$`)

// pnrToken is a six character alnum locator containing at least one digit,
// which keeps it from eating name fragments.
var pnrToken = regexp.MustCompile(`^[A-Z0-9]{6}$`)

// ParseFreeText parses one-passenger-per-line text manifests. Lines that
// match neither the primary pattern nor the tag-keyed fallback are ignored;
// headers, separators and totals all look like that.
func ParseFreeText(content string) []models.CanonicalItem {
	var items []models.CanonicalItem

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(strings.ToUpper(raw))
		if line == "" {
			continue
		}

		if m := freetextLine.FindStringSubmatch(line); m != nil {
			items = append(items, models.CanonicalItem{
				BagID:         m[1],
				PassengerName: m[2],
				PNR:           m[3],
				Seat:          m[4],
				Class:         m[5],
				Weight:        utils.ToFloat(m[6]),
			})
			continue
		}

		if item, ok := parseLooseLine(line); ok {
			items = append(items, item)
		}
	}
	return items
}

// parseLooseLine is the whitespace fallback: any line whose first token is a
// bag tag yields an item, with remaining tokens classified best-effort.
func parseLooseLine(line string) (models.CanonicalItem, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 || !bagTagToken.MatchString(fields[0]) {
		return models.CanonicalItem{}, false
	}

	item := models.CanonicalItem{BagID: fields[0]}
	var nameParts []string
	for _, tok := range fields[1:] {
		switch {
		case item.PNR == "" && len(nameParts) > 0 && pnrToken.MatchString(tok) && strings.ContainsAny(tok, "0123456789"):
			item.PNR = tok
		case strings.ContainsAny(tok, "0123456789") && item.PNR != "":
			// Trailing numeric columns after the locator: seat or weight.
			if item.Weight == 0 {
				item.Weight = utils.ToFloat(strings.TrimSuffix(strings.TrimSuffix(tok, "KGS"), "KG"))
			}
		case item.PNR == "":
			nameParts = append(nameParts, tok)
		}
	}

	item.PassengerName = strings.Join(nameParts, " ")
	if item.PassengerName == "" {
		return models.CanonicalItem{}, false
	}
	return item, true
}
