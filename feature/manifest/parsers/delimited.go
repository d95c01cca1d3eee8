package parsers

import (
	"encoding/csv"
	"strings"

	"baggage-manager/core/utils"
	"baggage-manager/feature/manifest/models"
)

// headerAliases maps each canonical field to the header spellings airlines
// actually use, in priority order.
var headerAliases = map[string][]string{
	"bag_id":     {"bag id", "tag", "bag_id", "bag tag", "bagtag", "tag number", "bag"},
	"name":       {"passenger name", "pax name", "passenger", "name", "pax"},
	"pnr":        {"pnr", "booking ref", "booking reference", "record locator", "resa"},
	"seat":       {"seat number", "seat", "siege"},
	"class":      {"cabin class", "class", "cabin", "classe"},
	"sequence":   {"sequence", "seq no", "seq", "bag seq"},
	"weight":     {"weight (kg)", "weight kg", "weight", "wt", "poids"},
	"route":      {"route", "routing", "itinerary"},
	"categories": {"special category", "categories", "category", "special", "remarks"},
}

// ParseDelimited parses CSV/TSV content whose first line is a header.
// Rows that fail to yield both a bag id and a passenger name are skipped
// silently; partner files routinely carry totals and footer lines.
func ParseDelimited(content string) []models.CanonicalItem {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	r := csv.NewReader(strings.NewReader(content))
	r.Comma = detectDelimiter(content)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil || len(records) < 2 {
		return nil
	}

	columns := mapHeader(records[0])
	if _, ok := columns["bag_id"]; !ok {
		return nil
	}

	var items []models.CanonicalItem
	for _, row := range records[1:] {
		item := models.CanonicalItem{
			BagID:         cell(row, columns, "bag_id"),
			PassengerName: cell(row, columns, "name"),
			PNR:           strings.ToUpper(cell(row, columns, "pnr")),
			Seat:          strings.ToUpper(cell(row, columns, "seat")),
			Class:         strings.ToUpper(cell(row, columns, "class")),
			Sequence:      utils.ToInt(cell(row, columns, "sequence")),
			Weight:        utils.ToFloat(cell(row, columns, "weight")),
			Route:         strings.ToUpper(cell(row, columns, "route")),
			Categories:    cell(row, columns, "categories"),
		}

		if item.BagID == "" || item.PassengerName == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}

// detectDelimiter picks the separator from the header line. Semicolons are
// common in files produced with French locale spreadsheet tools.
func detectDelimiter(content string) rune {
	header := content
	if idx := strings.IndexByte(content, '\n'); idx > 0 {
		header = content[:idx]
	}

	switch {
	case strings.Count(header, "\t") > 0:
		return '\t'
	case strings.Count(header, ";") > strings.Count(header, ","):
		return ';'
	default:
		return ','
	}
}

// mapHeader resolves header cells to canonical field names via the alias
// table. Earlier aliases win; a field already mapped is never remapped.
func mapHeader(header []string) map[string]int {
	columns := make(map[string]int)
	for field, aliases := range headerAliases {
		for _, alias := range aliases {
			if _, done := columns[field]; done {
				break
			}
			for i, h := range header {
				if strings.EqualFold(strings.TrimSpace(h), alias) {
					columns[field] = i
					break
				}
			}
		}
	}
	return columns
}

// cell safely reads a mapped column from a row.
func cell(row []string, columns map[string]int, field string) string {
	idx, ok := columns[field]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
