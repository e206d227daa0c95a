// Package filesystem provides filesystem implementations for repatch.
//
// This package contains implementations of the types.FS interface: the
// standard OS filesystem, an afero-backed filesystem used by tests, and a
// dry-run filesystem that reads through to the OS but keeps every write
// in memory.
package filesystem
