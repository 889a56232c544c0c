package command

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/devgen/pkg/errors"
	"github.com/arthur-debert/devgen/pkg/logging"
	"github.com/arthur-debert/devgen/pkg/registry"
)

// Menu is the named command set of one runner. It imposes no order; the
// runner calls RunCommand in the sequence it needs.
type Menu struct {
	owner    string
	commands registry.Registry[Command]
	executed []string
	logger   zerolog.Logger
}

// NewMenu creates an empty menu. owner labels log lines and errors, usually
// the resource key.
func NewMenu(owner string) *Menu {
	return &Menu{
		owner:    owner,
		commands: registry.NewNamed[Command]("command"),
		logger:   logging.GetLogger("command.menu").With().Str("owner", owner).Logger(),
	}
}

func (m *Menu) Register(name string, cmd Command) error {
	if cmd == nil {
		return errors.Newf(errors.ErrWiring, "nil command registered as %q", name).WithDetail("owner", m.owner)
	}
	return m.commands.Register(name, cmd)
}

// MustRegister is for runner constructors, where a duplicate name is a bug.
func (m *Menu) MustRegister(name string, cmd Command) {
	if err := m.Register(name, cmd); err != nil {
		panic(err)
	}
}

// RunCommand executes the command registered as name. An unregistered name
// is a wiring defect and is logged as such.
func (m *Menu) RunCommand(ctx context.Context, name string) error {
	cmd, ok := m.commands.Lookup(name)
	if !ok {
		err := errors.Newf(errors.ErrWiring, "command %q is not registered for %s", name, m.owner).
			WithDetail("owner", m.owner).
			WithDetail("registered", m.commands.List())
		logging.Defect(m.logger, err, "Unregistered command invoked")
		return err
	}
	if err := ctx.Err(); err != nil {
		return errors.Wrapf(err, errors.ErrCanceled, "%s canceled before %s", m.owner, name)
	}

	m.logger.Debug().Str("command", name).Msg("Running command")
	m.executed = append(m.executed, name)
	return cmd.Execute(ctx)
}

// Names lists the registered command names, sorted.
func (m *Menu) Names() []string {
	return m.commands.List()
}

// Executed lists the commands run so far, in order.
func (m *Menu) Executed() []string {
	return append([]string(nil), m.executed...)
}
