// Package resolver finds the newest published artifact of a project.
//
// It asks the distribution API for the version list, takes its last entry,
// asks for that version's build list, takes the last build and derives the
// download location from the pair. Each request is bounded by a timeout and
// is never retried.
package resolver
