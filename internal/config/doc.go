// Package config provides configuration for the experiment harness.
//
// Configuration is loaded from environment variables using the env package.
// All values except the gateway credential have defaults suitable for
// development use.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("gateway endpoint: %s\n", cfg.Gateway.BaseURL)
package config
