// Package parallel provides the bounded worker pool used while building a
// dataset snapshot.
//
// Work is scheduled on an errgroup with a concurrency limit. The first task to
// fail cancels the shared context and its error is the one returned; callers
// never observe partial results.
//
//   - Run executes a set of heterogeneous tasks (one per source file).
//   - Map applies a function to every element of a slice in contiguous chunks,
//     writing results at the same positions so input order is preserved.
package parallel
