// Package types defines the core types and interfaces used throughout repatch.
// This includes the MatchSpec and Rule definitions consumed by the engine,
// the per-rule and per-file results it produces, and the FS interface
// the runner reads and writes targets through.
package types
