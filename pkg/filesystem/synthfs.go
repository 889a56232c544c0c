package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	sfsfs "github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/devgen/pkg/errors"
	"github.com/arthur-debert/devgen/pkg/logging"
	"github.com/arthur-debert/devgen/pkg/types"
)

// SynthFSOptions configures NewSynthFS.
type SynthFSOptions struct {
	// Rollback undoes a write's partial effects when it fails.
	Rollback bool
}

// synthFS reads straight from the OS and runs every mutation as a synthfs
// pipeline against a path-aware view of "/".
type synthFS struct {
	reader   types.FS
	target   sfsfs.FullFileSystem
	rollback bool
	logger   zerolog.Logger
}

// NewSynthFS returns the filesystem used for real generation runs.
func NewSynthFS(opts SynthFSOptions) types.FS {
	osfs := sfsfs.NewOSFileSystem("/")
	return &synthFS{
		reader:   NewOS(),
		target:   synthfs.NewPathAwareFileSystem(osfs, "/").WithAbsolutePaths(),
		rollback: opts.Rollback,
		logger:   logging.GetLogger("filesystem.synthfs"),
	}
}

func (s *synthFS) Stat(name string) (fs.FileInfo, error) {
	return s.reader.Stat(name)
}

func (s *synthFS) ReadFile(name string) ([]byte, error) {
	return s.reader.ReadFile(name)
}

func (s *synthFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return s.reader.ReadDir(name)
}

func (s *synthFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	path, err := filepath.Abs(name)
	if err != nil {
		return err
	}
	return s.run("write", path, func(ctx context.Context, fsys sfsfs.FileSystem) error {
		if dir := filepath.Dir(path); dir != "/" {
			if err := fsys.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create parent directory %s: %w", dir, err)
			}
		}
		if err := fsys.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to replace %s: %w", path, err)
		}
		return fsys.WriteFile(path, data, perm)
	})
}

func (s *synthFS) MkdirAll(path string, perm fs.FileMode) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if info, err := s.reader.Stat(abs); err == nil && info.IsDir() {
		return nil
	}
	return s.run("mkdir", abs, func(ctx context.Context, fsys sfsfs.FileSystem) error {
		return fsys.MkdirAll(abs, perm)
	})
}

func (s *synthFS) Remove(name string) error {
	abs, err := filepath.Abs(name)
	if err != nil {
		return err
	}
	return s.run("remove", abs, func(ctx context.Context, fsys sfsfs.FileSystem) error {
		return fsys.Remove(abs)
	})
}

// RemoveAll is not expressed as a synthfs operation; devgen only uses it to
// clear a directory target before --force regeneration.
func (s *synthFS) RemoveAll(path string) error {
	return s.reader.RemoveAll(path)
}

func (s *synthFS) run(kind, path string, fn func(context.Context, sfsfs.FileSystem) error) error {
	id := fmt.Sprintf("%s_%s_%s", kind, filepath.Base(path), uuid.NewString())
	op := synthfs.New().CustomOperationWithID(id, fn)

	options := synthfs.DefaultPipelineOptions()
	options.RollbackOnError = s.rollback

	s.logger.Trace().Str("op", id).Str("path", path).Msg("Running synthfs operation")
	if _, err := synthfs.RunWithOptions(context.Background(), s.target, options, op); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "%s %s failed", kind, path).WithDetail("operation", id)
	}
	return nil
}
