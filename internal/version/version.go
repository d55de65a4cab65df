// Package version holds the release version surfaced by the health
// endpoint and the CLI.
package version

// Version is the semantic version of this build. Overridable at link time
// with -ldflags "-X invoiceqc/internal/version.Version=...".
var Version = "0.1.0"
