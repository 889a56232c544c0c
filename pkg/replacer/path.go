package replacer

import (
	"os"
	"path"
	"path/filepath"

	"github.com/arthur-debert/devgen/pkg/config"
	"github.com/arthur-debert/devgen/pkg/types"
)

const (
	TokenPathRelative = "path.relative"
	TokenPathTarget   = "path.target"
)

// Path is the replacer of the component runner. It knows where the
// generated files land relative to the working directory.
type Path struct {
	// WorkDir defaults to the process working directory.
	WorkDir string
}

func (p Path) Replace(text string, res *types.Resource, store config.Store) string {
	return withExtra(text, res, store, p.Tokens(res))
}

func (p Path) Tokens(res *types.Resource) map[string]string {
	target := filepath.ToSlash(filepath.Clean(res.TargetFolderPath))
	return map[string]string{
		TokenPathRelative: p.relative(res.TargetFolderPath),
		TokenPathTarget:   path.Join(target, res.EffectiveTargetName()),
	}
}

func (p Path) relative(dir string) string {
	if !filepath.IsAbs(dir) {
		return filepath.ToSlash(filepath.Clean(dir))
	}
	wd := p.WorkDir
	if wd == "" {
		var err error
		if wd, err = os.Getwd(); err != nil {
			return filepath.ToSlash(dir)
		}
	}
	rel, err := filepath.Rel(wd, dir)
	if err != nil {
		return filepath.ToSlash(dir)
	}
	return filepath.ToSlash(rel)
}
