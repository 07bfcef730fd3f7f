// Package version exposes build metadata for paper-updater.
//
// Version, Commit and BuildTime are injected through ldflags; Short is also
// used in the User-Agent sent to the distribution API.
package version
