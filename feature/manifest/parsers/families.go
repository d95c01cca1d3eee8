package parsers

import (
	"regexp"
	"strings"

	"baggage-manager/core/utils"
	"baggage-manager/feature/manifest/models"
)

// Ethiopian BIRS exports are fixed layout text. A device header block comes
// first (DEVICE:, OPERATOR:, flight and date lines), then one line per bag:
//
//	ET1234567890  MARTIN/JEAN       ABC123  014  Y   15  ADD-ABJ
var ethiopianLine = regexp.MustCompile(
	`^(ET\d{8,10}|\d{10})\s+` +
		`([A-Z][A-Z'\-/ ]+?)\s+` +
		`([A-Z0-9]{6})\s+` +
		`(\d{1,4})` + // sequence
		`(?:\s+([A-Z]))?` + // class
		`(?:\s+(\d+(?:[.,]\d+)?))?` + // weight
		`(?:\s+([A-Z]{3}(?:-[A-Z]{3})+))?` + // route
		`\s*$`)

// ParseEthiopian parses the Ethiopian Airlines BIRS list layout. Header and
// footer lines never match the bag line pattern and are skipped.
func ParseEthiopian(content string) []models.CanonicalItem {
	var items []models.CanonicalItem

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(strings.ToUpper(raw))
		if line == "" || strings.HasPrefix(line, "DEVICE") || strings.HasPrefix(line, "OPERATOR") {
			continue
		}

		m := ethiopianLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		items = append(items, models.CanonicalItem{
			BagID:         m[1],
			PassengerName: strings.TrimSpace(m[2]),
			PNR:           m[3],
			Sequence:      utils.ToInt(m[4]),
			Class:         m[5],
			Weight:        utils.ToFloat(m[6]),
			Route:         m[7],
		})
	}
	return items
}

// ASKY lists carry no record locator. Each bag line ends with a loading
// status token:
//
//	KP0987654321 DIALLO/AMADOU 015 LOADED
var askyLine = regexp.MustCompile(
	`^(KP\d{8,10}|\d{10})\s+` +
		`([A-Z][A-Z'\-/ ]+?)\s+` +
		`(?:(\d{1,4})\s+)?` + // sequence
		`(LOADED|RECEIVED)\s*$`)

// ParseAsky parses the ASKY Airlines loading list layout. The trailing
// status token maps onto the loaded/received flags of the item.
func ParseAsky(content string) []models.CanonicalItem {
	var items []models.CanonicalItem

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(strings.ToUpper(raw))
		m := askyLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		item := models.CanonicalItem{
			BagID:         m[1],
			PassengerName: strings.TrimSpace(m[2]),
			Sequence:      utils.ToInt(m[3]),
		}
		switch m[4] {
		case "LOADED":
			item.Loaded = true
		case "RECEIVED":
			item.Received = true
		}
		items = append(items, item)
	}
	return items
}

// aircoteLine matches the text rendition of Air Cote d'Ivoire manifests:
//
//	HF1122334455;KOUASSI/AYA;DEF456;21C
var aircoteSep = regexp.MustCompile(`[;|]`)

// ParseAircote parses Air Cote d'Ivoire manifests. The airline ships both
// proper CSV files and text dumps where fields are joined with semicolons or
// pipes; a header line is tried first, positional fields otherwise.
func ParseAircote(content string) []models.CanonicalItem {
	if items := ParseDelimited(content); len(items) > 0 {
		return items
	}

	var items []models.CanonicalItem
	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(strings.ToUpper(raw))
		if line == "" || !aircoteSep.MatchString(line) {
			continue
		}

		fields := aircoteSep.Split(line, -1)
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		if len(fields) < 2 || !bagTagToken.MatchString(fields[0]) {
			continue
		}

		item := models.CanonicalItem{
			BagID:         fields[0],
			PassengerName: fields[1],
		}
		if len(fields) > 2 && pnrToken.MatchString(fields[2]) {
			item.PNR = fields[2]
		}
		if len(fields) > 3 {
			item.Seat = fields[3]
		}
		if item.PassengerName == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}
