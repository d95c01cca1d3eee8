package models

import (
	"time"

	"baggage-manager/core/utils"
)

// Baggage lifecycle statuses. Only pending and scanned bags are eligible
// inputs to a reconciliation run.
const (
	StatusPending    = "pending"
	StatusScanned    = "scanned"
	StatusReconciled = "reconciled"
	StatusUnmatched  = "unmatched"
	StatusRush       = "rush"
	// StatusArrived is set by the arrival workflow; it only appears here as
	// a valid exit when a rush reroute is cancelled.
	StatusArrived = "arrived"
)

// ScannedBaggage is one physical bag seen at this airport.
// Rows are created on first scan, mutated by status transitions and
// reconciliation, and never deleted by the engine.
type ScannedBaggage struct {
	ID uint `gorm:"column:id;primaryKey" json:"id"`

	// TagValue is the raw tag as read by the scanner. The unique index is
	// what polices duplicate-create races on concurrent scans.
	TagValue string `gorm:"column:tag_value;size:64;uniqueIndex" json:"tag_value"`

	ScanDate  time.Time `gorm:"column:scan_date" json:"scan_date"`
	ScannerID string    `gorm:"column:scanner_id;size:64" json:"scanner_id"`
	Airport   string    `gorm:"column:airport;size:3;index" json:"airport"`
	Status    string    `gorm:"column:status;size:16;index" json:"status"`

	// ManifestReportID links the bag to the report it was reconciled against.
	ManifestReportID *uint `gorm:"column:manifest_report_id" json:"manifest_report_id,omitempty"`

	// Optional metadata extracted at scan time.
	PassengerName string  `gorm:"column:passenger_name;size:128" json:"passenger_name,omitempty"`
	BookingRef    string  `gorm:"column:booking_ref;size:16" json:"booking_ref,omitempty"`
	FlightNumber  string  `gorm:"column:flight_number;size:16" json:"flight_number,omitempty"`
	Origin        string  `gorm:"column:origin;size:8" json:"origin,omitempty"`
	Weight        float64 `gorm:"column:weight" json:"weight,omitempty"`
	Remarks       string  `gorm:"column:remarks" json:"remarks,omitempty"`

	ReconciledAt *time.Time `gorm:"column:reconciled_at" json:"reconciled_at,omitempty"`
	ReconciledBy string     `gorm:"column:reconciled_by;size:64" json:"reconciled_by,omitempty"`

	// Synced is a boolean stored as integer; the outbound sync collaborator
	// is solely responsible for flipping it to 1.
	Synced int `gorm:"column:synced" json:"-"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name.
func (ScannedBaggage) TableName() string {
	return "scanned_baggages"
}

// IsSynced reports whether the row has been shipped to the central server.
func (b ScannedBaggage) IsSynced() bool {
	return utils.ToBool(b.Synced)
}

// Reconcilable reports whether the bag is an eligible input to a
// reconciliation run.
func (b ScannedBaggage) Reconcilable() bool {
	return b.Status == StatusPending || b.Status == StatusScanned
}

// ManifestReport is one uploaded manifest file, kept with its canonical
// parsed payload for audit and replay.
type ManifestReport struct {
	ID uint `gorm:"column:id;primaryKey" json:"id"`

	// Family is the detected airline manifest family (ethiopian, asky,
	// aircote, generic).
	Family string `gorm:"column:family;size:16" json:"family"`

	FlightNumber string `gorm:"column:flight_number;size:16" json:"flight_number"`
	// FlightDate is the ISO date (YYYY-MM-DD) of the flight.
	FlightDate  string `gorm:"column:flight_date;size:10" json:"flight_date"`
	Origin      string `gorm:"column:origin;size:8" json:"origin,omitempty"`
	Destination string `gorm:"column:destination;size:8" json:"destination,omitempty"`
	Airline     string `gorm:"column:airline;size:64" json:"airline,omitempty"`
	AirlineCode string `gorm:"column:airline_code;size:3" json:"airline_code,omitempty"`

	FileName   string    `gorm:"column:file_name;size:255" json:"file_name"`
	FileSize   int64     `gorm:"column:file_size" json:"file_size"`
	UploadDate time.Time `gorm:"column:upload_date" json:"upload_date"`
	UploadedBy string    `gorm:"column:uploaded_by;size:64" json:"uploaded_by"`
	Airport    string    `gorm:"column:airport;size:3;index" json:"airport"`

	TotalBaggages   int `gorm:"column:total_baggages" json:"total_baggages"`
	ReconciledCount int `gorm:"column:reconciled_count" json:"reconciled_count"`
	UnmatchedCount  int `gorm:"column:unmatched_count" json:"unmatched_count"`

	ProcessedAt *time.Time `gorm:"column:processed_at" json:"processed_at,omitempty"`

	// RawPayload is the serialized canonical form of the parsed manifest.
	RawPayload string `gorm:"column:raw_payload" json:"-"`

	Synced int `gorm:"column:synced" json:"-"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name.
func (ManifestReport) TableName() string {
	return "manifest_reports"
}

// IsSynced reports whether the row has been shipped to the central server.
func (r ManifestReport) IsSynced() bool {
	return utils.ToBool(r.Synced)
}

// ManifestItem is one line of a manifest, many per report.
type ManifestItem struct {
	ID       uint `gorm:"column:id;primaryKey" json:"id"`
	ReportID uint `gorm:"column:report_id;index" json:"report_id"`

	BagID         string  `gorm:"column:bag_id;size:64;index" json:"bag_id"`
	PassengerName string  `gorm:"column:passenger_name;size:128" json:"passenger_name"`
	PNR           string  `gorm:"column:pnr;size:16" json:"pnr,omitempty"`
	Seat          string  `gorm:"column:seat;size:8" json:"seat,omitempty"`
	Class         string  `gorm:"column:class;size:4" json:"class,omitempty"`
	Sequence      int     `gorm:"column:sequence" json:"sequence,omitempty"`
	Weight        float64 `gorm:"column:weight" json:"weight,omitempty"`
	Route         string  `gorm:"column:route;size:32" json:"route,omitempty"`
	Categories    string  `gorm:"column:categories;size:64" json:"categories,omitempty"`

	// Loaded and Received are airline-specific status flags, stored as
	// integers like every other boolean column.
	Loaded   int `gorm:"column:loaded" json:"-"`
	Received int `gorm:"column:received" json:"-"`

	// ScannedBaggageID links the item to the bag it was reconciled with.
	// At most one bag per item and vice versa.
	ScannedBaggageID *uint      `gorm:"column:scanned_baggage_id;uniqueIndex" json:"scanned_baggage_id,omitempty"`
	ReconciledAt     *time.Time `gorm:"column:reconciled_at" json:"reconciled_at,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name.
func (ManifestItem) TableName() string {
	return "manifest_items"
}

// IsLoaded reports the airline's loaded flag.
func (i ManifestItem) IsLoaded() bool {
	return utils.ToBool(i.Loaded)
}

// IsReceived reports the airline's received flag.
func (i ManifestItem) IsReceived() bool {
	return utils.ToBool(i.Received)
}
