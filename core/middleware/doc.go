// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation (X-API-Key header or api_key query parameter).
//   - rayid: assigns every request a Request ID (RayID), stored in the context
//     for logger.WithRayID and echoed in the X-Ray-ID response header.
package middleware
