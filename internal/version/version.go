// Package version holds the build version, set with -ldflags at release time.
package version

// Version is overwritten by the release build.
var Version = "dev"

// Commit is the source revision of the build, if known.
var Commit = ""

// String returns the version with the commit appended when present.
func String() string {
	if Commit == "" {
		return Version
	}
	return Version + " (" + Commit + ")"
}
