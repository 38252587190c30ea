// Package metrics exposes Prometheus metrics for snapshot builds, lookups and HTTP requests.
//
// A Metrics value is passed to the dataset engine as its observer, so the engine
// itself never imports Prometheus. The server mounts Handler at the configured
// path and installs Middleware for request metrics.
package metrics
