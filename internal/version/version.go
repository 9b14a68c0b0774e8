// Package version holds build-time metadata injected via ldflags.
package version

var (
	// Version is the semantic version of this build.
	Version = "dev"
	// Commit is the git commit the binary was built from.
	Commit = ""
	// BuildDate is the build timestamp.
	BuildDate = ""
)
