// Package migrate orchestrates the widget dependency-injection migration. It
// walks the configured plan of widget source files, applies the rewrite
// engine to each file in memory, persists successful transformations through
// a staged temp-file-and-rename write, and aggregates per-file outcomes into
// a run summary that drives the process exit code.
package migrate
