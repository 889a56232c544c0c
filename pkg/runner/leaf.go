package runner

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/devgen/pkg/command"
	"github.com/arthur-debert/devgen/pkg/config"
	"github.com/arthur-debert/devgen/pkg/errors"
	"github.com/arthur-debert/devgen/pkg/filesystem"
	"github.com/arthur-debert/devgen/pkg/logging"
	"github.com/arthur-debert/devgen/pkg/replacer"
	"github.com/arthur-debert/devgen/pkg/types"
)

// leaf is the shared body of the single-artifact runners: a Menu, the order
// in which to run it and the replacer handed to ReplacePlaceholders.
type leaf struct {
	res      *types.Resource
	props    config.Properties
	env      Env
	menu     *command.Menu
	steps    []string
	replacer replacer.Replacer
	ran      bool
	logger   zerolog.Logger
}

func newLeaf(id string, r *Resolver, res *types.Resource, props config.Properties) *leaf {
	res.SourceFolderPath = props.SourceFolder
	res.TargetFolderPath = props.TargetFolder
	applyEntry(res, props)

	return &leaf{
		res:    res,
		props:  props,
		env:    r.Env(),
		menu:   command.NewMenu(res.Key()),
		logger: logging.GetLogger("runner." + id).With().Str("resource", res.Key()).Logger(),
	}
}

// step registers cmd under name and appends it to the run order.
func (l *leaf) step(name string, cmd command.Command) {
	l.menu.MustRegister(name, cmd)
	l.steps = append(l.steps, name)
}

func (l *leaf) createFile() command.Command {
	return &command.CreateFile{FS: l.env.FS, Resource: l.res, Overwrite: l.env.Overwrite}
}

func (l *leaf) replacePlaceholders() command.Command {
	return &command.ReplacePlaceholders{
		FS:         l.env.FS,
		Resource:   l.res,
		Replacer:   l.replacer,
		Store:      l.env.Store,
		Extensions: l.props.Extensions,
	}
}

func (l *leaf) Resource() *types.Resource {
	return l.res
}

func (l *leaf) CheckConfiguration() bool {
	return true
}

func (l *leaf) ListAvailableTemplates(dir string) ([]string, error) {
	return l.listTemplates(dir, nil)
}

func (l *leaf) listTemplates(dir string, exts []string) ([]string, error) {
	if dir == "" {
		dir = l.res.SourceFolderPath
	}
	return filesystem.ListFiles(l.env.FS, dir, exts)
}

func (l *leaf) PlaceholderReplacer() replacer.Replacer {
	return l.replacer
}

func (l *leaf) HelpFolder() string {
	h, _ := helpFolders(l.env.Store, l.res)
	return h
}

func (l *leaf) TemplateHelpFolder() string {
	_, h := helpFolders(l.env.Store, l.res)
	return h
}

func (l *leaf) SourceFolder() string {
	return l.res.SourceFolderPath
}

func (l *leaf) Run(ctx context.Context) error {
	if l.ran {
		return errors.Newf(errors.ErrAlreadyRan, "%s has already run", l.res.Key())
	}
	l.ran = true

	l.logger.Info().Strs("steps", l.steps).Msg("Generating")
	for _, name := range l.steps {
		if err := l.menu.RunCommand(ctx, name); err != nil {
			l.logger.Error().Err(err).Str("command", name).Msg("Command failed")
			return err
		}
	}
	l.logger.Info().Strs("outputs", l.res.Outputs).Msg("Generated")
	return nil
}

func (l *leaf) Executed() []string {
	return l.menu.Executed()
}

// within reports whether path lies inside root. Both are cleaned first and
// must be either both absolute or both relative.
func within(path, root string) bool {
	if root == "" || path == "" {
		return false
	}
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
