// Package config provides configuration management for the render worker.
//
// Configuration is loaded from environment variables and validated on startup.
// All configuration options have sensible defaults for development. Validation
// reports every invalid option at once.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg)
package config
