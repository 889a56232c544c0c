package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/devgen/pkg/errors"
	"github.com/arthur-debert/devgen/pkg/types"
)

// HelpFolder names the documentation folder that may sit in a type's
// template folder or inside a directory template. It is never template
// content: walks skip it.
const HelpFolder = "help"

// Exists reports whether path can be stat'ed.
func Exists(fsys types.FS, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil
}

// NormalizeExtensions lowercases extensions and strips leading dots and
// blanks. "Go, .XML,," becomes [go xml].
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	seen := make(map[string]bool, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), "."))
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

// HasExtension reports whether path ends in one of exts (normalized form).
// An empty exts matches everything.
func HasExtension(path string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	for _, e := range exts {
		if e == ext {
			return true
		}
	}
	return false
}

// ListFiles returns every regular file under dir whose extension is in exts,
// walking subdirectories depth first in name order and skipping help
// folders. A missing dir yields an empty result.
func ListFiles(fsys types.FS, dir string, exts []string) ([]string, error) {
	exts = NormalizeExtensions(exts)
	var files []string
	if err := walk(fsys, dir, func(path string, d fs.DirEntry) {
		if HasExtension(path, exts) {
			files = append(files, path)
		}
	}); err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot list %s", dir)
	}
	if files == nil {
		files = []string{}
	}
	return files, nil
}

// IsTemplateDir reports whether dir is a directory holding template content,
// that is anything besides a help folder.
func IsTemplateDir(fsys types.FS, dir string) bool {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if !isHelp(e) {
			return true
		}
	}
	return false
}

func isHelp(e fs.DirEntry) bool {
	return e.IsDir() && e.Name() == HelpFolder
}

func walk(fsys types.FS, dir string, visit func(string, fs.DirEntry)) error {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if isHelp(e) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if e.IsDir() {
			if err := walk(fsys, path, visit); err != nil {
				return err
			}
			continue
		}
		visit(path, e)
	}
	return nil
}

// CopyTree copies the regular files under src into dst, creating
// directories as needed. Help folders are not copied. rename, when non-nil, maps each relative path
// before it is joined onto dst. The written paths are returned in walk
// order.
func CopyTree(fsys types.FS, src, dst string, rename func(string) string) ([]string, error) {
	var written []string
	var copyErr error
	err := walk(fsys, src, func(path string, d fs.DirEntry) {
		if copyErr != nil {
			return
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			copyErr = err
			return
		}
		if rename != nil {
			rel = rename(rel)
		}
		target := filepath.Join(dst, rel)
		if err := CopyFile(fsys, path, target); err != nil {
			copyErr = err
			return
		}
		written = append(written, target)
	})
	if err != nil {
		return written, errors.Wrapf(err, errors.ErrFileAccess, "cannot read template folder %s", src)
	}
	return written, copyErr
}

// CopyFile copies one file, keeping its permission bits.
func CopyFile(fsys types.FS, src, dst string) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileNotFound, "template %s not found", src)
	}
	data, err := fsys.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read template %s", src)
	}
	if dir := filepath.Dir(dst); dir != "." {
		if err := fsys.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", dir)
		}
	}
	mode := info.Mode().Perm()
	if mode == 0 {
		mode = 0644
	}
	if err := fsys.WriteFile(dst, data, mode); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", dst)
	}
	return nil
}
