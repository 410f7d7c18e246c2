// Package utils provides shared infrastructure for the dimigrate CLI:
// viper-backed configuration loading, zap logger construction with optional
// rotating file output, command context accessors, and console writer
// helpers.
package utils
