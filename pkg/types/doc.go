// Package types defines the core types and interfaces used throughout filerouter.
// This includes the Storage and EventHandler interfaces the router depends on,
// as well as data structures like Rule, RouterConfig and PendingFile.
//
// All paths handled here are vault-relative and slash-separated.
package types
