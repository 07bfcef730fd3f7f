// Package updater installs the newest server build into a directory.
//
// It resolves the output directory, asks the resolver for the latest
// artifact, hands the download URL to the downloader and finally checks that
// the installed file is present. Any failing step aborts the run with an error.
package updater
