// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for archiving
// the raw manifest files received from airlines. The archive preserves the
// exact bytes a report was parsed from, so a dispute with a partner airline
// can be settled against the original document.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the archive bucket.
//   - MakeBucket: Creates the bucket on first use.
//   - PutObject: Uploads a manifest file (with size and options).
//   - GetObject: Retrieves an archived manifest as a stream.
//   - ListObjects: Lists archived manifests (supports prefix/recursive).
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "manifests")
package storage
