// Package config defines the application configuration structures and
// loads them from environment variables (LINGO_ prefix) and an optional
// config file, validating the result before anything starts up.
package config
