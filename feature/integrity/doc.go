// Package integrity validates the internal consistency of a loaded dataset.
//
// Loading only fails on references it needs to denormalize records. Everything
// else it tolerates is reported here.
//
// # Checks Provided
//
//   - scene_chains: every scene's samples form one prev/next chain from first to last, nbr_samples long.
//   - instance_chains: the same for an instance's annotations.
//   - sample_data_chains: capture prev/next links exist and point back.
//   - references: scene, sample, sample_data, annotation, map and extension table foreign keys.
//   - duplicates: tables where a row was shadowed by a later row with the same token.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
package integrity
