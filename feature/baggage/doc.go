// Package baggage implements the scanned baggage feature.
//
// It owns the three persisted entities (scanned baggage, manifest reports,
// manifest items) through the Store facade, the idempotent scan intake, the
// rush status transitions, and the aggregate statistics the supervisory UI
// consumes.
//
// # Store Facade
//
// The Store hides the relational details from the rest of the engine:
// snake_case columns, boolean-as-integer flags, partial updates that always
// touch updated_at, and the transaction boundary the manifest upload uses.
// It also carries the readiness signal: a Store can be created before the
// database connection exists and bound later, and every operation awaits
// that one-shot signal instead of polling.
//
// # Idempotent Scan Intake
//
// Duplicate scans are the normal case, not an error: agents re-scan bags,
// devices sync out of order. CreateOrGetScannedBaggage looks up by tag,
// inserts if absent, and resolves insert races on the tag unique constraint
// by re-reading. The caller always gets a row, never a constraint error.
//
// # Components
//
//   - Store: persistence facade over gorm (sqlite or mysql).
//   - Service: scan intake, rush transitions, statistics.
//   - Handler: HTTP endpoints for the capture layer and the dashboard.
//   - Loader: registers the feature with the application.
package baggage
