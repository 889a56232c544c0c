package runner

import (
	"github.com/arthur-debert/devgen/pkg/command"
	"github.com/arthur-debert/devgen/pkg/config"
	"github.com/arthur-debert/devgen/pkg/replacer"
	"github.com/arthur-debert/devgen/pkg/types"
)

// Component generates a UI component folder. XML descriptors are
// re-indented after substitution.
type Component struct {
	*leaf
}

func newComponent(r *Resolver, res *types.Resource, props config.Properties) (Runner, error) {
	l := newLeaf(ComponentRunnerID, r, res, props)
	l.replacer = replacer.Path{WorkDir: l.env.WorkDir}
	l.step(command.CreateFileName, l.createFile())
	l.step(command.ReplacePlaceholdersName, l.replacePlaceholders())
	l.step(command.FormatXMLName, &command.FormatXML{FS: l.env.FS, Resource: res})
	return &Component{leaf: l}, nil
}

func (c *Component) CheckConfiguration() bool {
	root, _ := c.env.Store.Property(config.KeyUIRoot)
	if !within(c.res.TargetFolderPath, root) {
		c.logger.Warn().
			Str("target", c.res.TargetFolderPath).
			Str(config.KeyUIRoot, root).
			Msg("Target folder is outside the UI root")
		return false
	}
	return true
}

func (c *Component) ListAvailableTemplates(dir string) ([]string, error) {
	return c.listTemplates(dir, c.props.Extensions)
}
