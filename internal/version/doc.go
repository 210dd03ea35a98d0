// Package version exposes build metadata for the bootstrap.
//
// Variables Version, Commit, and BuildTime are injected at build time via
// Go ldflags and default to sensible values for local builds.
// Helpers render the version for CLI output, logs, and the HTTP User-Agent.
package version
