// Package filesystem provides the storage implementations for filerouter.
//
// This package contains implementations of the types.Storage interface
// backed by afero, including the vault-rooted OS filesystem used in
// production and in-memory filesystems for tests.
package filesystem
