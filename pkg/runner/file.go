package runner

import (
	"github.com/arthur-debert/devgen/pkg/command"
	"github.com/arthur-debert/devgen/pkg/config"
	"github.com/arthur-debert/devgen/pkg/replacer"
	"github.com/arthur-debert/devgen/pkg/types"
)

// File copies a template verbatim.
type File struct {
	*leaf
}

func newFile(r *Resolver, res *types.Resource, props config.Properties) (Runner, error) {
	l := newLeaf(FileRunnerID, r, res, props)
	l.step(command.CreateFileName, l.createFile())
	return &File{leaf: l}, nil
}

// ConfigProps writes the bundled configuration file.
type ConfigProps struct {
	*leaf
}

func newConfigProps(r *Resolver, res *types.Resource, props config.Properties) (Runner, error) {
	l := newLeaf(ConfigPropsRunnerID, r, res, props)
	l.replacer = replacer.ConfigProps{}
	l.step(command.CreateFileFromResourceName, &command.CreateFileFromResource{
		FS:        l.env.FS,
		Resource:  res,
		Content:   l.env.ConfigContent,
		Overwrite: l.env.Overwrite,
	})
	return &ConfigProps{leaf: l}, nil
}

// ListAvailableTemplates is always empty: the content is built in.
func (c *ConfigProps) ListAvailableTemplates(string) ([]string, error) {
	return []string{}, nil
}
