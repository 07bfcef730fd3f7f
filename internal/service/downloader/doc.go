// Package downloader fetches an artifact and installs it at a destination path.
//
// The whole body is read into memory, then go-update writes it next to the
// target and renames it into place, so an interrupted transfer never leaves a
// truncated file behind. No checksum or size validation is performed.
package downloader
