// Package config loads client configuration from MICROGRID_* environment
// variables or a YAML file, and turns it into the concrete pieces a client
// needs: a retry strategy and a logger.
package config
