package command

import (
	"context"

	"github.com/arthur-debert/devgen/pkg/config"
	"github.com/arthur-debert/devgen/pkg/errors"
	"github.com/arthur-debert/devgen/pkg/filesystem"
	"github.com/arthur-debert/devgen/pkg/replacer"
	"github.com/arthur-debert/devgen/pkg/types"
)

// ReplacePlaceholders rewrites the resource's outputs through a Replacer.
// Only files whose extension is in Extensions are touched; an empty list
// means every output.
type ReplacePlaceholders struct {
	FS         types.FS
	Resource   *types.Resource
	Replacer   replacer.Replacer
	Store      config.Store
	Extensions []string
}

func (c *ReplacePlaceholders) Execute(ctx context.Context) error {
	if c.Replacer == nil {
		return nil
	}
	exts := filesystem.NormalizeExtensions(c.Extensions)
	for _, path := range c.Resource.Outputs {
		if !filesystem.HasExtension(path, exts) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, errors.ErrCanceled, "placeholder replacement canceled")
		}
		if err := c.rewrite(path); err != nil {
			return err
		}
	}
	return nil
}

func (c *ReplacePlaceholders) rewrite(path string) error {
	info, err := c.FS.Stat(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileNotFound, "generated file %s vanished", path)
	}
	data, err := c.FS.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
	}
	out := c.Replacer.Replace(string(data), c.Resource, c.Store)
	if out == string(data) {
		return nil
	}
	if err := c.FS.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path)
	}
	return nil
}
