// Package cli constructs the dimigrate command-line interface, wiring the
// Cobra command hierarchy, configuration loader, and structured logging
// primitives into a reusable application instance.
package cli
