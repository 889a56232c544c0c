package generator

import (
	"context"

	"github.com/arthur-debert/devgen/pkg/command"
	"github.com/arthur-debert/devgen/pkg/replacer"
	"github.com/arthur-debert/devgen/pkg/types"
)

// miswired runs a command name its menu never registered.
type miswired struct {
	res  *types.Resource
	menu *command.Menu
}

func (m *miswired) Resource() *types.Resource { return m.res }
func (m *miswired) CheckConfiguration() bool { return true }
func (m *miswired) ListAvailableTemplates(string) ([]string, error) { return []string{}, nil }
func (m *miswired) PlaceholderReplacer() replacer.Replacer { return nil }
func (m *miswired) HelpFolder() string { return "" }
func (m *miswired) TemplateHelpFolder() string { return "" }
func (m *miswired) SourceFolder() string { return "" }
func (m *miswired) Executed() []string { return nil }

func (m *miswired) Run(ctx context.Context) error {
	m.menu = command.NewMenu(m.res.Key())
	return m.menu.RunCommand(ctx, command.FormatXMLName)
}
