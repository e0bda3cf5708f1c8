// Package version carries build metadata stamped in at link time.
package version

// These are overridden via -ldflags at release build time.
var (
	// Version is the semantic version of the binary.
	Version = "dev"

	// Commit is the git commit the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)
