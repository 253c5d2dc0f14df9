// Package config provides configuration management for the License Reconciler.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, upload body limit)
//   - Storage: S3/MinIO credentials and bucket settings for the run archive
//   - Log: Logging level, format, and optional log file
//   - SKUMap: location of the persisted SKU exception table
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
