// Package database handles connections to the local entity store.
//
// It provides a wrapper around GORM that configures either a SQLite file
// (the default for device-local replicas) or a MySQL server (used by the
// hosted web client deployment) from the application configuration.
//
// # Connect
//
// The Connect function establishes the connection and applies sane pool
// and timeout settings. For SQLite it enables WAL mode and a busy timeout
// so the import transaction coexists with the out-of-band replication
// writer instead of failing on the first lock conflict.
//
// # Schema Inspection
//
// The package also includes a small schema inspector used by tests and the
// startup migration check to read back a table's columns regardless of
// driver (PRAGMA table_info for SQLite, SHOW COLUMNS for MySQL).
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("store connection failed", err)
//	}
package database
