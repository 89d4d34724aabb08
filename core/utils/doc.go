// Package utils provides common utility functions for leader-dojo.
// It includes tolerant type conversion helpers used when decoding snapshot
// payloads whose scalar types vary between producing clients.
package utils
