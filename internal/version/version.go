package version

import "fmt"

var (
	// Version is the release of paper-updater, set with -ldflags "-X .../version.Version=...".
	Version = "0.1.0"
	// Commit is the short git SHA of the build (or "none").
	Commit = "none"
	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"
)

// Short returns only the release string.
func Short() string {
	return Version
}

// Full returns the release together with commit and build time.
func Full() string {
	return fmt.Sprintf("paper-updater %s (commit %s, built %s)", Version, Commit, BuildTime)
}
