// Package config provides centralized configuration management for the
// SalesPulse service. It handles loading configuration from multiple sources,
// validation, and provides a type-safe API for accessing configuration values
// throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. config.yaml next to the executable
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern SALESPULSE_* for namespacing:
//
//	SALESPULSE_SERVER_PORT=8080
//	SALESPULSE_LOGGING_LEVEL=info
//	SALESPULSE_PIPELINE_DORMANCY_THRESHOLD_DAYS=90
//	SALESPULSE_PIPELINE_TOP_N=10
//
// # Path Management
//
// The package provides centralized path management through the Paths type,
// which handles all file system paths relative to the executable location:
//
//	paths, err := config.GetPaths()
//	if err != nil {
//	    return err
//	}
//	fmt.Println(paths.UploadsDir)
//
// The Paths type also names the well-known CSV export files so every
// component writes to the same locations.
package config
