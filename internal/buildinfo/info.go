// Package buildinfo carries release metadata injected at build time.
package buildinfo

// Set via -ldflags "-X ..." by the release build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
