// Package config provides configuration management for leader-dojo.
//
// It utilizes Viper for loading configuration from environment variables
// and a .env file, with defaults declared as struct tags on the partial
// configuration types.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: HTTP server settings (port, API key, import timeout)
//   - Database: local store connection (SQLite file or MySQL)
//   - Storage: S3/MinIO credentials and snapshot archive bucket
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
