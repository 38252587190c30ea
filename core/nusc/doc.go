// Package nusc builds immutable, fully resolved snapshots of a nuScenes dataset.
//
// Open reads the fourteen table files of one dataset version, indexes every
// table by token and resolves the derived fields in a fixed order:
//
//  1. Map to Log: each log gets the token of the map that lists it.
//  2. Sensors: each sample_data gets the modality and channel of its sensor.
//  3. Taxonomy: each sample_annotation gets the category name of its instance.
//  4. Samples: each sample gets one sample_data token per channel and the
//     tokens of its annotations.
//
// Decoding runs concurrently, and the passes over large tables are split
// across the worker pool from core/parallel. The build is all or nothing: the
// first error cancels the remaining work and Open returns it.
//
// # Sources
//
// A plain dataroot is read from <dataroot>/<version>/<table>.json. A dataroot
// of the form s3://bucket/prefix is read from <prefix>/<version>/<table>.json in
// the bucket, through a storage.Client passed with WithStorage. The lidarseg
// and panoptic tables are optional; when their files are absent the snapshot
// reports them unavailable.
//
// # Errors
//
// Construction fails with *SourceError (wrapping ErrSourceNotFound,
// ErrMalformed or an I/O error) or *ReferenceError (wrapping
// ErrUnresolvedReference). Lookups fail with ErrUnknownTable,
// ErrTableUnavailable, ErrMalformed or ErrRecordNotFound and leave the
// snapshot untouched.
//
// # Usage
//
//	tables, err := nusc.Open(ctx, "v1.0-mini", "/data/sets/nuscenes", nusc.WithLogger(log))
//	fields, err := tables.Get("sample", "ca9a282c9e77460f8360f564131a8af5")
//	view, err := tables.View("scene")
//	for i, scene := range view.All() { ... }
//
// Cache shares snapshots between callers by (version, dataroot).
package nusc
