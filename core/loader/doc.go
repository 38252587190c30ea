// Package loader registers HTTP features on the server.
//
// A feature is a self-contained slice of the API (its service, handler and
// routes) that the start command wires to the shared dataset snapshot cache.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// Manager keeps features in registration order. LoadAll skips disabled
// features, rejects two features with the same name and stops at the first
// feature that fails to load.
package loader
