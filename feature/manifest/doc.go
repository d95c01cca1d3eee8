// Package manifest owns the manifest side of the reconciliation workflow:
// uploading airline manifest files, parsing them into canonical items via
// the parsers subpackage, and running the matcher against the scanned
// baggage population of the airport.
//
// Uploads are atomic: the report row and its manifest items are written in
// one transaction, and a manifest that fails validation persists nothing.
// The raw uploaded file is additionally archived to object storage when an
// archive client is configured; archival is best effort and never fails the
// upload.
//
// Reconciliation runs are not serialized against each other. Each run works
// on the snapshot of bags and items it loads at call start; the unique link
// columns on both sides enforce one-to-one pairing at the schema level.
package manifest
