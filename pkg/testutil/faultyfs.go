package testutil

import (
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/arthur-debert/repatch/pkg/types"
)

// FaultyFS wraps a types.FS and fails selected operations
type FaultyFS struct {
	types.FS

	mu          sync.Mutex
	readErrors  map[string]error
	writeErrors map[string]error

	reads  map[string]int
	writes map[string]int
}

// NewFaultyFS wraps inner
func NewFaultyFS(inner types.FS) *FaultyFS {
	return &FaultyFS{
		FS:          inner,
		readErrors:  make(map[string]error),
		writeErrors: make(map[string]error),
		reads:       make(map[string]int),
		writes:      make(map[string]int),
	}
}

// FailRead makes ReadFile of path return err
func (f *FaultyFS) FailRead(path string, err error) *FaultyFS {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readErrors[filepath.Clean(path)] = err
	return f
}

// FailWrite makes WriteFile of path return err
func (f *FaultyFS) FailWrite(path string, err error) *FaultyFS {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeErrors[filepath.Clean(path)] = err
	return f
}

// ReadFile implements types.FS
func (f *FaultyFS) ReadFile(name string) ([]byte, error) {
	f.mu.Lock()
	key := filepath.Clean(name)
	f.reads[key]++
	err := f.readErrors[key]
	f.mu.Unlock()

	if err != nil {
		return nil, &fs.PathError{Op: "read", Path: name, Err: err}
	}
	return f.FS.ReadFile(name)
}

// WriteFile implements types.FS
func (f *FaultyFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	f.mu.Lock()
	key := filepath.Clean(name)
	f.writes[key]++
	err := f.writeErrors[key]
	f.mu.Unlock()

	if err != nil {
		return &fs.PathError{Op: "write", Path: name, Err: err}
	}
	return f.FS.WriteFile(name, data, perm)
}

// Reads returns how many times path was read
func (f *FaultyFS) Reads(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads[filepath.Clean(path)]
}

// Writes returns how many times path was written
func (f *FaultyFS) Writes(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes[filepath.Clean(path)]
}
