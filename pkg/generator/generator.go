// Package generator is the single entry point of the engine: resolve a
// (type, name) request to a runner, check it, run it and report what
// happened.
package generator

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/devgen/pkg/config"
	"github.com/arthur-debert/devgen/pkg/errors"
	"github.com/arthur-debert/devgen/pkg/logging"
	"github.com/arthur-debert/devgen/pkg/registry"
	"github.com/arthur-debert/devgen/pkg/runner"
	"github.com/arthur-debert/devgen/pkg/types"
)

// Options configures a Generator.
type Options struct {
	Store config.Store

	// FS defaults to the local filesystem.
	FS types.FS

	// Overwrite replaces existing targets.
	Overwrite bool

	// TargetName overrides the name of the generated artifact.
	TargetName string

	WorkDir string

	// Factories defaults to runner.Factories().
	Factories registry.Registry[runner.Factory]
}

// Generator runs generation requests against one configuration.
type Generator struct {
	opts     Options
	resolver *runner.Resolver
	logger   zerolog.Logger
}

func New(opts Options) *Generator {
	return &Generator{
		opts: opts,
		resolver: runner.NewResolver(runner.Env{
			Store:     opts.Store,
			FS:        opts.FS,
			Overwrite: opts.Overwrite,
			WorkDir:   opts.WorkDir,
		}, opts.Factories),
		logger: logging.GetLogger("generator"),
	}
}

// Resolver exposes the resolver, for discovery commands that need a runner
// without running it.
func (g *Generator) Resolver() *runner.Resolver {
	return g.resolver
}

// Generate is New(opts).Generate(ctx, typ, name).
func Generate(ctx context.Context, typ, name string, opts Options) (*Result, error) {
	return New(opts).Generate(ctx, typ, name)
}

// Generate resolves, checks and runs one request. The Result is always
// returned, also on failure, so callers can report skipped compound members
// and partial output.
func (g *Generator) Generate(ctx context.Context, typ, name string) (*Result, error) {
	res := types.NewResource(typ, name)
	res.TargetName = g.opts.TargetName
	result := &Result{Type: typ, Name: name}

	logger := g.logger.With().Str("resource", res.Key()).Logger()
	defer logging.LogOperationStart(logger, "generate")()

	r, err := g.resolver.Resolve(res)
	if err != nil {
		return result.fail(logger, err)
	}
	result.capture(r)

	if err := runner.InitError(r); err != nil {
		return result.fail(logger, err)
	}
	if !r.CheckConfiguration() {
		return result.fail(logger, errors.Newf(errors.ErrConfigPrecondition,
			"configuration check failed for %s", res.Key()).
			WithDetail("type", typ).
			WithDetail("name", name))
	}

	err = r.Run(ctx)
	result.capture(r)
	if err != nil {
		if !errors.IsErrorCode(err, errors.ErrRunFailed) && !errors.IsErrorCode(err, errors.ErrCanceled) {
			err = errors.Wrapf(err, errors.ErrRunFailed, "generating %s failed", res.Key())
		}
		return result.fail(logger, err)
	}

	result.Status = StatusSucceeded
	logger.Info().
		Int("outputs", len(result.Outputs)).
		Int("skipped", len(result.Skipped())).
		Msg("Generation succeeded")
	return result, nil
}

// GenerateAll runs one independent request per name. A failed request does
// not stop the others; the returned error summarizes the failures.
func (g *Generator) GenerateAll(ctx context.Context, typ string, names []string) ([]*Result, error) {
	if len(names) == 0 {
		names = []string{""}
	}

	results := make([]*Result, 0, len(names))
	var failed []string
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return results, errors.Wrap(err, errors.ErrCanceled, "generation canceled")
		}
		result, err := g.Generate(ctx, typ, name)
		results = append(results, result)
		if err != nil {
			failed = append(failed, types.ResourceKey(typ, name))
		}
	}

	if len(failed) > 0 {
		return results, errors.Newf(errors.ErrRunFailed, "%d of %d requests failed", len(failed), len(names)).
			WithDetail("failed", failed)
	}
	return results, nil
}
