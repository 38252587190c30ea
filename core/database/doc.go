// Package database handles connections to the export database and schema inspection.
//
// It wraps GORM to open either a MySQL server or a SQLite file, based on the
// application's configuration.
//
// # Connect
//
// Connect opens the configured driver and pings it. SQLite connections are
// limited to one open connection.
//
// # Schema Inspection
//
// GetTableColumns, MissingColumns and CountRows let the export feature verify
// that migrated tables have the expected columns and row counts.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return fmt.Errorf("database connection required: %w", err)
//	}
//
//	n, err := database.CountRows(db, "samples")
package database
