// Package paths provides centralized path handling for filerouter.
//
// It resolves the vault root, the XDG directories filerouter keeps its own
// state in, and converts between absolute host paths and the vault-relative,
// slash-separated paths the router works with.
package paths
