// Package storage provides read access to datasets kept in object storage.
//
// It wraps the MinIO Go client behind a narrow interface so that the dataset
// loader can read table files from AWS S3 or a self-hosted MinIO instance, and
// so tests can substitute the mock in core/storage/mocks.
//
// # Operations
//
//   - BucketExists: Verifies access to the dataset bucket.
//   - StatObject: Checks that a table file exists before downloading it.
//   - GetObject: Retrieves a table file as a stream.
//   - ListObjects: Lists the objects under a dataset prefix.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, "nuscenes")
package storage
