// Package testutil provides utilities for testing repatch components.
//
// Key components:
//   - FaultyFS: wraps a types.FS with per-path error injection and
//     read/write counters
//   - WriteFiles / ReadFile: declarative file setup on any types.FS
//
// All test data should be defined inline, not in external files, and tests
// should run against filesystem.NewMemory unless they exercise the OS.
package testutil
