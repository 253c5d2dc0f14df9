// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for the run
// archive: compared workbooks and decision logs are uploaded per run so past
// reconciliations can be listed and re-downloaded. The abstraction supports
// both AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the archive bucket.
//   - MakeBucket: Creates the bucket if needed (see EnsureBucket).
//   - PutObject: Uploads run artifacts (workbook, log).
//   - GetObject: Retrieves an artifact as a stream.
//   - ListObjects: Lists archived runs (supports prefix/recursive).
//   - RemoveObject: Deletes an archived artifact.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "recon-runs")
package storage
