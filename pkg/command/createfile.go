package command

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/devgen/pkg/errors"
	"github.com/arthur-debert/devgen/pkg/filesystem"
	"github.com/arthur-debert/devgen/pkg/types"
)

// CreateFile copies the resource's template into the target folder. A
// template is either a file (<source>/<name> or the first file in <source>
// whose name without extension is <name>) or the directory <source>/<name>.
type CreateFile struct {
	FS        types.FS
	Resource  *types.Resource
	Overwrite bool
}

func (c *CreateFile) Execute(ctx context.Context) error {
	res := c.Resource
	src, isDir, err := c.locate()
	if err != nil {
		return err
	}

	targetName := res.EffectiveTargetName()
	if isDir {
		target := filepath.Join(res.TargetFolderPath, targetName)
		if err := c.clear(target, true); err != nil {
			return err
		}
		written, err := filesystem.CopyTree(c.FS, src, target, renameStem(res.SourceName, targetName))
		for _, w := range written {
			res.AddOutput(w)
		}
		return err
	}

	if filepath.Ext(targetName) == "" {
		targetName += filepath.Ext(src)
	}
	target := filepath.Join(res.TargetFolderPath, targetName)
	if err := c.clear(target, false); err != nil {
		return err
	}
	if err := filesystem.CopyFile(c.FS, src, target); err != nil {
		return err
	}
	res.AddOutput(target)
	return nil
}

// locate prefers a file template over a directory: <source>/<name> when it
// is a file, then a file named <name>.<ext>, then the directory
// <source>/<name> when it holds more than a help folder.
func (c *CreateFile) locate() (string, bool, error) {
	res := c.Resource
	exact := filepath.Join(res.SourceFolderPath, res.SourceName)
	info, err := c.FS.Stat(exact)
	if err == nil && !info.IsDir() {
		return exact, false, nil
	}

	entries, err := c.FS.ReadDir(res.SourceFolderPath)
	if err == nil {
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			name := e.Name()
			if strings.TrimSuffix(name, filepath.Ext(name)) == res.SourceName {
				return filepath.Join(res.SourceFolderPath, name), false, nil
			}
		}
	}

	if filesystem.IsTemplateDir(c.FS, exact) {
		return exact, true, nil
	}

	return "", false, errors.Newf(errors.ErrFileNotFound, "no template %q in %s", res.SourceName, res.SourceFolderPath).
		WithDetail("type", res.Type).
		WithDetail("name", res.SourceName).
		WithDetail("folder", res.SourceFolderPath)
}

// clear refuses to touch an existing target unless overwriting is allowed,
// in which case directory targets are removed first.
func (c *CreateFile) clear(target string, dir bool) error {
	if !filesystem.Exists(c.FS, target) {
		return nil
	}
	if !c.Overwrite {
		return errors.Newf(errors.ErrFileExists, "%s already exists", target).
			WithDetail("path", target).
			WithDetail("hint", "use --force to overwrite")
	}
	if dir {
		if err := c.FS.RemoveAll(target); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "cannot clear %s", target)
		}
	}
	return nil
}

// renameStem maps files named after the template onto the target name:
// card.html becomes promo.html when generating "promo" from "card".
func renameStem(from, to string) func(string) string {
	if from == to {
		return nil
	}
	return func(rel string) string {
		base := filepath.Base(rel)
		ext := filepath.Ext(base)
		if strings.TrimSuffix(base, ext) != from {
			return rel
		}
		return filepath.Join(filepath.Dir(rel), to+ext)
	}
}
