// Package runner implements the generation strategies. A Runner is picked by
// the Resolver from the runner id found in configuration, owns a cloned
// Resource and drives its own command Menu.
package runner

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/devgen/pkg/config"
	"github.com/arthur-debert/devgen/pkg/filesystem"
	"github.com/arthur-debert/devgen/pkg/registry"
	"github.com/arthur-debert/devgen/pkg/replacer"
	"github.com/arthur-debert/devgen/pkg/types"
)

// Registered runner ids.
const (
	ServiceRunnerID     = "service"
	ComponentRunnerID   = "component"
	FileRunnerID        = "file"
	ConfigPropsRunnerID = "configprops"
	CompoundRunnerID    = "compound"
)

// Runner is one generation strategy bound to a Resource.
type Runner interface {
	// Resource is the request this runner acts on.
	Resource() *types.Resource

	// CheckConfiguration reports whether the runner's preconditions hold.
	// It never fails loudly; the caller decides what to do.
	CheckConfiguration() bool

	// ListAvailableTemplates enumerates template files under dir, or under
	// SourceFolder when dir is empty. No templates is not an error.
	ListAvailableTemplates(dir string) ([]string, error)

	// PlaceholderReplacer is nil for runners that do no substitution.
	PlaceholderReplacer() replacer.Replacer

	HelpFolder() string
	TemplateHelpFolder() string
	SourceFolder() string

	// Run executes the pipeline. A runner runs at most once.
	Run(ctx context.Context) error

	// Executed lists the commands run so far, in order.
	Executed() []string
}

// Factory builds a Runner for a resolved resource.
type Factory func(r *Resolver, res *types.Resource, props config.Properties) (Runner, error)

var factories = registry.NewNamed[Factory]("runner factory")

// RegisterFactory adds a runner id to the process-wide table.
func RegisterFactory(id string, f Factory) error {
	return factories.Register(id, f)
}

// Factories returns a copy of the process-wide table, safe to extend in
// tests without leaking into other resolvers.
func Factories() registry.Registry[Factory] {
	return registry.Clone(factories)
}

func init() {
	registry.MustRegister[Factory](factories, ServiceRunnerID, newService)
	registry.MustRegister[Factory](factories, ComponentRunnerID, newComponent)
	registry.MustRegister[Factory](factories, FileRunnerID, newFile)
	registry.MustRegister[Factory](factories, ConfigPropsRunnerID, newConfigProps)
	registry.MustRegister[Factory](factories, CompoundRunnerID, newCompound)
}

// InitError returns the error a runner recorded while it was being built,
// such as a compound without definition.
func InitError(r Runner) error {
	if f, ok := r.(interface{ Err() error }); ok {
		return f.Err()
	}
	return nil
}

// applyEntry fills the target name and auxiliary props of res from its
// configuration entry. A top level request keeps the props its caller set;
// for a compound member the entry overrides what the compound passed down.
func applyEntry(res *types.Resource, props config.Properties) {
	if res.TargetName == "" {
		res.TargetName = props.TargetName
	}
	member := res.Depth() > 0
	for k, v := range props.Values {
		if _, ok := res.Prop(k); !ok || member {
			res.SetProp(k, v)
		}
	}
}

// helpFolders derives <source.types>/<type>/help and, with a name,
// <source.types>/<type>/<name>/help.
func helpFolders(store config.Store, res *types.Resource) (string, string) {
	root, _ := store.Property(config.KeySourceTypes)
	typeHelp := filepath.Join(root, res.Type, filesystem.HelpFolder)
	if res.SourceName == "" {
		return typeHelp, ""
	}
	return typeHelp, filepath.Join(root, res.Type, res.SourceName, filesystem.HelpFolder)
}
