// Package storage provides an abstraction layer for the snapshot archive.
//
// Devices exchange exported snapshots through an object storage bucket; the
// package wraps the MinIO Go client to provide a simplified interface for
// the handful of operations that requires. The abstraction supports both
// AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it
// easy to mock archive interactions for unit testing (see
// core/storage/mocks).
//
// # Operations
//
//   - BucketExists / MakeBucket: verify or create the archive bucket.
//   - PutObject: upload an exported snapshot.
//   - GetObject: retrieve a snapshot as a stream.
//   - ListObjects: enumerate archived snapshots.
//   - RemoveObject: delete an archived snapshot.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "snapshots")
package storage
