package command

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"

	"github.com/arthur-debert/devgen/pkg/errors"
	"github.com/arthur-debert/devgen/pkg/types"
)

// FormatXML re-indents every generated .xml file with two spaces. A file
// that does not parse fails the step with TEMPLATE_FORMAT.
type FormatXML struct {
	FS       types.FS
	Resource *types.Resource
}

func (c *FormatXML) Execute(ctx context.Context) error {
	for _, path := range c.Resource.Outputs {
		if !strings.EqualFold(filepath.Ext(path), ".xml") {
			continue
		}
		if err := c.format(path); err != nil {
			return err
		}
	}
	return nil
}

func (c *FormatXML) format(path string) error {
	info, err := c.FS.Stat(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileNotFound, "generated file %s vanished", path)
	}
	data, err := c.FS.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return errors.Wrapf(err, errors.ErrTemplateFormat, "%s is not well-formed XML", path).
			WithDetail("path", path)
	}
	doc.Indent(2)

	out, err := doc.WriteToBytes()
	if err != nil {
		return errors.Wrapf(err, errors.ErrTemplateFormat, "cannot serialize %s", path)
	}
	if err := c.FS.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path)
	}
	return nil
}
