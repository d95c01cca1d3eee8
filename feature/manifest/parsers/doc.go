// Package parsers turns raw airline manifest content into the canonical
// ParsedManifest form.
//
// Every partner airline produces its irregularity report in a different,
// undocumented, loosely-structured layout, and the layouts drift between
// stations and seasons. Extraction is therefore regex and heuristic based,
// not grammar based: a grammar would be out of date before it shipped.
//
// # Pipeline
//
//  1. DetectKind classifies the file as delimited text (CSV/TSV), free text,
//     or structured markup with a text layer (SVG exports). Anything else
//     fails with ErrUnsupportedFormat before any parsing happens.
//  2. DetectFamily sniffs filename and content for airline-specific tokens
//     (carrier code prefixes, distinctive header keywords) and picks one of
//     the supported families. When nothing matches, the configured default
//     family is attempted; the result is still subject to validation.
//  3. The family parser extracts items; ExtractMetadata fills in flight
//     number, date and route from labeled fields in the body, falling back
//     to filename tokens.
//  4. Validate collects every problem found. A failed validation aborts the
//     upload before anything is persisted.
//
// # Families
//
//   - ethiopian: fixed-width columns under a device/route header block,
//     with PNR, sequence, class, weight and route per line.
//   - asky: tag and passenger name with trailing LOADED/RECEIVED status
//     tokens and no PNR.
//   - aircote: CSV/free-text hybrid keyed by the HF flight-number prefix.
//   - generic: header-alias CSV or the free-text line pattern, used both as
//     its own family and as the fallback.
//
// Adding a fourth airline is one new family constant, one detector
// predicate, and one parse function.
package parsers
