// Package artifact contains the domain types describing a downloadable server build.
//
// It defines VersionInfo (what was resolved) and Template, which maps a
// version and build number to the download URL and file name published by
// the distribution API. Template performs no I/O.
package artifact
