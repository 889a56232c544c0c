package testutil

import (
	"io/fs"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/afero"

	"github.com/arthur-debert/devgen/pkg/filesystem"
	"github.com/arthur-debert/devgen/pkg/types"
)

// MemFS returns an in-memory filesystem holding files, keyed by path.
func MemFS(t *testing.T, files map[string]string) types.FS {
	t.Helper()

	fsys := filesystem.NewAferoFS(afero.NewMemMapFs())
	for path, content := range files {
		if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create parent directories for %s: %v", path, err)
		}
		if err := fsys.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create file %s: %v", path, err)
		}
	}
	return fsys
}

// FailingFS wraps a filesystem and fails mutations of selected paths.
type FailingFS struct {
	types.FS

	mu     sync.Mutex
	errors map[string]error
	writes int
}

func NewFailingFS(inner types.FS) *FailingFS {
	return &FailingFS{FS: inner, errors: make(map[string]error)}
}

// FailOn makes every write, mkdir or remove of path return err.
func (f *FailingFS) FailOn(path string, err error) *FailingFS {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors[filepath.Clean(path)] = err
	return f
}

// Writes counts successful WriteFile calls.
func (f *FailingFS) Writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

func (f *FailingFS) injected(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors[filepath.Clean(path)]
}

func (f *FailingFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if err := f.injected(name); err != nil {
		return err
	}
	if err := f.FS.WriteFile(name, data, perm); err != nil {
		return err
	}
	f.mu.Lock()
	f.writes++
	f.mu.Unlock()
	return nil
}

func (f *FailingFS) MkdirAll(path string, perm fs.FileMode) error {
	if err := f.injected(path); err != nil {
		return err
	}
	return f.FS.MkdirAll(path, perm)
}

func (f *FailingFS) Remove(name string) error {
	if err := f.injected(name); err != nil {
		return err
	}
	return f.FS.Remove(name)
}

func (f *FailingFS) RemoveAll(path string) error {
	if err := f.injected(path); err != nil {
		return err
	}
	return f.FS.RemoveAll(path)
}
