package testutil

import (
	"path/filepath"
	"testing"
)

// Project is an isolated devgen project on disk. NewProject makes it the
// working directory and points configuration discovery and the log file
// inside it, so nothing from the developer's machine leaks in.
type Project struct {
	t    *testing.T
	Root string
}

func NewProject(t *testing.T) *Project {
	t.Helper()

	root := t.TempDir()
	t.Chdir(root)
	t.Setenv("DEVGEN_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, ".xdg", "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, ".xdg", "state"))

	return &Project{t: t, Root: root}
}

// WithConfig writes ./devgen.toml.
func (p *Project) WithConfig(content string) *Project {
	p.t.Helper()
	CreateFile(p.t, p.Root, "devgen.toml", content)
	return p
}

// WithFile writes a file relative to the project root.
func (p *Project) WithFile(path, content string) *Project {
	p.t.Helper()
	CreateFile(p.t, p.Root, path, content)
	return p
}

// Path joins parts under the project root.
func (p *Project) Path(parts ...string) string {
	return filepath.Join(append([]string{p.Root}, parts...)...)
}

// Exists reports whether the project file at path exists.
func (p *Project) Exists(path string) bool {
	p.t.Helper()
	return FileExists(p.t, p.Path(path))
}

// Read returns the content of the project file at path.
func (p *Project) Read(path string) string {
	p.t.Helper()
	return ReadFile(p.t, p.Path(path))
}
