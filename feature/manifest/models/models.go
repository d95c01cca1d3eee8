package models

// FileInfo describes an uploaded manifest file. The content itself arrives
// separately as already-extracted text; no binary extraction happens here.
type FileInfo struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

// CanonicalItem is one manifest line in canonical form, whatever layout the
// airline printed it in.
type CanonicalItem struct {
	BagID         string  `json:"bag_id"`
	PassengerName string  `json:"passenger_name"`
	PNR           string  `json:"pnr,omitempty"`
	Seat          string  `json:"seat,omitempty"`
	Class         string  `json:"class,omitempty"`
	Sequence      int     `json:"sequence,omitempty"`
	Weight        float64 `json:"weight,omitempty"`
	Route         string  `json:"route,omitempty"`
	Categories    string  `json:"categories,omitempty"`
	Loaded        bool    `json:"loaded,omitempty"`
	Received      bool    `json:"received,omitempty"`
}

// ParsedManifest is the canonical result of parsing one manifest file.
type ParsedManifest struct {
	// Family is the airline manifest family the content was parsed as.
	Family string `json:"family"`

	FlightNumber string `json:"flight_number"`
	// FlightDate is ISO formatted (YYYY-MM-DD).
	FlightDate  string `json:"flight_date"`
	Origin      string `json:"origin,omitempty"`
	Destination string `json:"destination,omitempty"`
	Airline     string `json:"airline,omitempty"`
	AirlineCode string `json:"airline_code,omitempty"`

	Items []CanonicalItem `json:"items"`
}

// ValidationResult collects every problem found in a parsed manifest.
// An upload with Valid=false persists nothing.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}
