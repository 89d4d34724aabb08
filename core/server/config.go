package server

import "time"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// ImportTimeoutSeconds bounds a whole snapshot import
	// (parse, resolve, order, merge). Zero disables the bound.
	ImportTimeoutSeconds int `mapstructure:"import_timeout_seconds" default:"60"`
}

// ImportTimeout returns the configured import bound as a duration.
// A zero or negative setting means no timeout.
func (c Config) ImportTimeout() time.Duration {
	if c.ImportTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.ImportTimeoutSeconds) * time.Second
}
