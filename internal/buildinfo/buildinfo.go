// Package buildinfo carries the version identity stamped into binaries
// and checkpoint headers.
package buildinfo

import "strings"

// Version is set at build time via -ldflags.
var Version = "dev"

// Commit is set at build time via -ldflags.
var Commit = "unknown"

// Date is set at build time via -ldflags.
var Date = "unknown"

// SetDefaultVersion fills Version when no -ldflags value was given. The
// root package calls it with the embedded VERSION file.
func SetDefaultVersion(v string) {
	if Version == "dev" {
		if v = strings.TrimSpace(v); v != "" {
			Version = v
		}
	}
}

// Short returns a compact build identifier for logs and file headers.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}
