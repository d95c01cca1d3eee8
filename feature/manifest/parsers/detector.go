package parsers

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"baggage-manager/core/server"
	"baggage-manager/feature/manifest/models"
)

// ErrUnsupportedFormat is returned when the file cannot be classified as any
// manifest content kind.
var ErrUnsupportedFormat = errors.New("unsupported manifest format")

// ContentKind classifies how the manifest content is laid out.
type ContentKind string

const (
	// KindDelimited is CSV/TSV content with a header line.
	KindDelimited ContentKind = "delimited"
	// KindText is fixed-width or free text content.
	KindText ContentKind = "text"
	// KindMarkup is structured markup carrying a text layer (SVG exports
	// from airline desktop tools).
	KindMarkup ContentKind = "markup"
)

// DetectKind classifies a file by extension and declared content type.
func DetectKind(file models.FileInfo) (ContentKind, error) {
	ext := strings.ToLower(filepath.Ext(file.Name))
	switch ext {
	case ".csv", ".tsv":
		return KindDelimited, nil
	case ".txt", ".log", ".lst", ".prn":
		return KindText, nil
	case ".svg":
		return KindMarkup, nil
	}

	switch strings.ToLower(file.MimeType) {
	case "text/csv", "text/tab-separated-values":
		return KindDelimited, nil
	case "text/plain":
		return KindText, nil
	case "image/svg+xml":
		return KindMarkup, nil
	}

	return "", ErrUnsupportedFormat
}

var (
	// Ethiopian BIRS exports carry a device header block and usually name
	// the carrier outright.
	ethiopianTokens = regexp.MustCompile(`(?i)ETHIOPIAN|DEVICE\s*:|BIRS`)
	ethiopianFlight = regexp.MustCompile(`(?i)\bET\s?\d{3,4}\b`)

	// ASKY lists end each line with a bare loading status token.
	askyTokens = regexp.MustCompile(`(?i)\bASKY\b`)
	askyStatus = regexp.MustCompile(`(?im)\b(LOADED|RECEIVED)\s*$`)

	// Air Cote d'Ivoire names files and flights with the HF prefix.
	aircoteTokens = regexp.MustCompile(`(?i)AIR\s*COTE|COTE\s*D.?IVOIRE`)
	aircoteFlight = regexp.MustCompile(`(?i)\bHF\s?\d{3,4}\b`)
)

// DetectFamily picks the airline family by scanning content and filename for
// airline-specific tokens. When nothing matches, defaultFamily is returned;
// validation will catch a wrong guess downstream.
func DetectFamily(file models.FileInfo, content, defaultFamily string) string {
	haystack := file.Name + "\n" + content

	switch {
	case ethiopianTokens.MatchString(haystack) || ethiopianFlight.MatchString(haystack):
		return server.FamilyEthiopian
	case askyTokens.MatchString(haystack) || askyStatus.MatchString(content):
		return server.FamilyAsky
	case aircoteTokens.MatchString(haystack) || aircoteFlight.MatchString(haystack):
		return server.FamilyAircote
	}

	if defaultFamily == "" {
		return server.FamilyGeneric
	}
	return defaultFamily
}

// svgText matches text runs inside an SVG text layer.
var (
	svgText = regexp.MustCompile(`(?s)<text[^>]*>(.*?)</text>`)
	svgTag  = regexp.MustCompile(`<[^>]+>`)
)

// extractMarkupText flattens an SVG text layer into plain lines so the text
// parsers can work on it.
func extractMarkupText(content string) string {
	var lines []string
	for _, m := range svgText.FindAllStringSubmatch(content, -1) {
		// Nested tspans also carry text; strip any remaining tags.
		line := svgTag.ReplaceAllString(m[1], " ")
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// Parse runs the full detection and parsing pipeline for one file.
func Parse(file models.FileInfo, content, defaultFamily string) (*models.ParsedManifest, error) {
	kind, err := DetectKind(file)
	if err != nil {
		return nil, err
	}

	if kind == KindMarkup {
		content = extractMarkupText(content)
		kind = KindText
	}

	family := DetectFamily(file, content, defaultFamily)

	var items []models.CanonicalItem
	switch family {
	case server.FamilyEthiopian:
		items = ParseEthiopian(content)
	case server.FamilyAsky:
		items = ParseAsky(content)
	case server.FamilyAircote:
		items = ParseAircote(content)
	default:
		family = server.FamilyGeneric
		items = parseGeneric(kind, content)
	}

	// A family parser that finds nothing falls back to the generic layout;
	// airlines occasionally switch tools without telling anyone.
	if len(items) == 0 && family != server.FamilyGeneric {
		if generic := parseGeneric(kind, content); len(generic) > 0 {
			items = generic
		}
	}

	parsed := &models.ParsedManifest{
		Family: family,
		Items:  items,
	}
	ExtractMetadata(parsed, content, file.Name)

	return parsed, nil
}

// parseGeneric dispatches to the layout parser matching the content kind.
func parseGeneric(kind ContentKind, content string) []models.CanonicalItem {
	if kind == KindDelimited {
		return ParseDelimited(content)
	}
	return ParseFreeText(content)
}
