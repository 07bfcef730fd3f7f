// Package config defines the updater settings and loads them from an optional
// YAML file. Settings are never written back.
package config
