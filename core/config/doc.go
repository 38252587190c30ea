// Package config provides configuration management for the nuScenes devkit.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults come from the `default` struct tags of each
// section, discovered by reflection.
//
// # Configuration Structure
//
//   - Dataset: version, dataroot, workers, strict duplicate handling, cache TTL
//   - Server: HTTP port and API key
//   - Storage: S3/MinIO credentials and bucket for s3:// dataroots
//   - Log: Logging level and format
//   - Database: export target (mysql or sqlite)
//   - Metrics: Prometheus endpoint
//
// Environment keys are the upper-cased dotted keys with "." replaced by "_",
// e.g. DATASET_VERSION or STORAGE_ENDPOINT.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Dataset.Version)
package config
