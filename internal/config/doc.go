// Package config provides environment-based configuration.
//
// Loads from a .env file (godotenv), maps to the Config struct via
// go-simpler/env struct tags, and validates the optional credentials
// encryption key format. The API address defaults to the local backend.
package config
