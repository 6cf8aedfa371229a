// Package testutil provides utilities for testing filerouter components.
//
// Key components:
//   - MemoryStorage: in-memory types.Storage with error injection and call recording
//   - TestEnvironment: a temporary vault on disk with isolated config and state dirs
//   - FixedClock: a deterministic clock for timestamped file names
//
// Usage guidelines:
//   - Router tests should use MemoryStorage for speed and isolation
//   - Only watcher, journal and service tests should touch the real filesystem
//   - All test data should be defined inline, not in external files
package testutil
