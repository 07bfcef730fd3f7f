// Package common holds helpers shared by several services.
//
// It provides the GET helper used against the distribution API, a terminal
// spinner, table rendering for resolved artifacts and detection of running
// java processes.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
