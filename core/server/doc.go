// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber application; this package only defines
// the listen port and the API key embedded in core/config.
package server
