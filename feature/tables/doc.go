// Package tables exposes the dataset snapshot over HTTP.
//
// # HTTP Endpoints
//
//   - GET /tables : Lists every table with row, availability and duplicate counts.
//   - GET /tables/:table : Returns a page of rows (?offset=&limit=&step=).
//   - GET /tables/:table/:token : Returns one resolved record.
//
// Records are rendered as JSON objects whose keys follow the schema order of
// the table. Errors are returned as {"error": "..."} with 400 for malformed
// tokens or slices, 404 for unknown tables and tokens, 409 for optional tables
// that were not loaded and 500 for build failures.
package tables
