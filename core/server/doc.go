// Package server holds the HTTP server configuration.
//
// It defines the port the Fiber application listens on, the optional API key
// protecting the API, and the overall timeout imposed on a snapshot import
// operation at the service boundary.
//
// # Import Timeout
//
// The import engine itself is not cancellable mid-transaction; the timeout
// configured here is applied by the caller around the whole operation. A
// timeout that fires during the merge transaction is treated as a storage
// failure and triggers a rollback.
package server
