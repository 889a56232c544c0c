package command

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/devgen/pkg/errors"
	"github.com/arthur-debert/devgen/pkg/filesystem"
	"github.com/arthur-debert/devgen/pkg/types"
)

// CreateFileFromResource writes bundled content, rather than a template on
// disk, to <target folder>/<target name>.
type CreateFileFromResource struct {
	FS        types.FS
	Resource  *types.Resource
	Content   []byte
	Overwrite bool
}

func (c *CreateFileFromResource) Execute(ctx context.Context) error {
	res := c.Resource
	target := filepath.Join(res.TargetFolderPath, res.EffectiveTargetName())

	if filesystem.Exists(c.FS, target) && !c.Overwrite {
		return errors.Newf(errors.ErrFileExists, "%s already exists", target).
			WithDetail("path", target).
			WithDetail("hint", "use --force to overwrite")
	}
	if dir := filepath.Dir(target); dir != "." {
		if err := c.FS.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", dir)
		}
	}
	if err := c.FS.WriteFile(target, c.Content, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", target)
	}
	res.AddOutput(target)
	return nil
}
