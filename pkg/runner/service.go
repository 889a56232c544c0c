package runner

import (
	"github.com/arthur-debert/devgen/pkg/command"
	"github.com/arthur-debert/devgen/pkg/config"
	"github.com/arthur-debert/devgen/pkg/replacer"
	"github.com/arthur-debert/devgen/pkg/types"
)

// Service generates Go source: copy the template, then fill in the Go
// tokens.
type Service struct {
	*leaf
}

func newService(r *Resolver, res *types.Resource, props config.Properties) (Runner, error) {
	l := newLeaf(ServiceRunnerID, r, res, props)
	l.replacer = replacer.Go{}
	l.step(command.CreateFileName, l.createFile())
	l.step(command.ReplacePlaceholdersName, l.replacePlaceholders())
	return &Service{leaf: l}, nil
}

// CheckConfiguration requires the target folder to sit under
// target.go.root, otherwise {{go.import}} would be meaningless.
func (s *Service) CheckConfiguration() bool {
	root, _ := s.env.Store.Property(config.KeyGoRoot)
	if !within(s.res.TargetFolderPath, root) {
		s.logger.Warn().
			Str("target", s.res.TargetFolderPath).
			Str(config.KeyGoRoot, root).
			Msg("Target folder is outside the Go root")
		return false
	}
	return true
}

func (s *Service) ListAvailableTemplates(dir string) ([]string, error) {
	return s.listTemplates(dir, []string{"go"})
}
