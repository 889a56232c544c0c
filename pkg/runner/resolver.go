package runner

import (
	"github.com/rs/zerolog"

	"github.com/arthur-debert/devgen/pkg/config"
	"github.com/arthur-debert/devgen/pkg/errors"
	"github.com/arthur-debert/devgen/pkg/filesystem"
	"github.com/arthur-debert/devgen/pkg/logging"
	"github.com/arthur-debert/devgen/pkg/registry"
	"github.com/arthur-debert/devgen/pkg/types"
)

// Env is what every runner built by one Resolver shares.
type Env struct {
	Store config.Store
	FS    types.FS

	// Overwrite lets CreateFile replace existing targets.
	Overwrite bool

	// WorkDir anchors {{path.relative}}; empty means the process cwd.
	WorkDir string

	// ConfigContent is what the configprops runner writes. Defaults to the
	// embedded configuration.
	ConfigContent []byte
}

// Resolver maps a Resource to a Runner through its dynamic properties and
// the runner factory table.
type Resolver struct {
	env       Env
	factories registry.Registry[Factory]
	logger    zerolog.Logger
}

// NewResolver creates a resolver. A nil table means Factories(); a nil FS
// means the local filesystem.
func NewResolver(env Env, table registry.Registry[Factory]) *Resolver {
	if table == nil {
		table = Factories()
	}
	if env.FS == nil {
		env.FS = filesystem.NewOS()
	}
	if env.ConfigContent == nil {
		env.ConfigContent = config.DefaultConfigContent()
	}
	return &Resolver{
		env:       env,
		factories: table,
		logger:    logging.GetLogger("runner.resolver"),
	}
}

func (r *Resolver) Env() Env {
	return r.env
}

// Resolve builds the runner configured for res. A (type, name) pair with no
// configuration fails with UNKNOWN_TYPE; a runner id without factory with
// UNKNOWN_RUNNER. Resolve never runs anything.
func (r *Resolver) Resolve(res *types.Resource) (Runner, error) {
	props, ok := r.env.Store.DynamicProperties(res.Type, res.SourceName)
	if !ok {
		return nil, errors.Newf(errors.ErrUnknownType, "unknown type/name %s", res.Key()).
			WithDetail("type", res.Type).
			WithDetail("name", res.SourceName)
	}

	factory, ok := r.factories.Lookup(props.Runner)
	if !ok {
		return nil, errors.Newf(errors.ErrUnknownRunner, "runner %q configured for %s does not exist", props.Runner, res.Key()).
			WithDetail("runner", props.Runner).
			WithDetail("type", res.Type).
			WithDetail("name", res.SourceName).
			WithDetail("known", r.factories.List())
	}

	r.logger.Debug().
		Str("resource", res.Key()).
		Str("runner", props.Runner).
		Msg("Resolved runner")
	return factory(r, res, props)
}
