package devgen

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/devgen/internal/version"
	"github.com/arthur-debert/devgen/pkg/config"
	"github.com/arthur-debert/devgen/pkg/errors"
	"github.com/arthur-debert/devgen/pkg/runner"
	"github.com/arthur-debert/devgen/pkg/types"
	"github.com/arthur-debert/devgen/pkg/ui/display"
	"github.com/arthur-debert/devgen/pkg/ui/help"
)

func newGenerateCmd(a *app) *cobra.Command {
	var opts genOptions

	cmd := &cobra.Command{
		Use:               "generate <type> [name...]",
		Aliases:           []string{"gen"},
		Short:             MsgGenerateShort,
		Long:              MsgGenerateLong,
		Example:           MsgGenerateExample,
		GroupID:           "core",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: a.completeTypeAndNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, names := args[0], args[1:]
			if opts.targetName != "" && len(names) > 1 {
				return errors.Newf(errors.ErrInvalidInput, MsgErrTargetNameMulti, len(names))
			}

			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			gen, err := a.newGenerator(cfg, opts)
			if err != nil {
				return err
			}

			log.Info().
				Str("type", typ).
				Strs("names", names).
				Bool("dry_run", opts.dryRun).
				Bool("force", opts.force).
				Msg("Generating")

			results, genErr := gen.GenerateAll(cmd.Context(), typ, names)
			if err := a.render(cmd, display.NewGenerateView(results, opts.dryRun)); err != nil {
				return err
			}
			if errors.IsErrorCode(genErr, errors.ErrRunFailed) {
				return reported(genErr)
			}
			return genErr
		},
	}

	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, MsgFlagForce)
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, MsgFlagDryRun)
	cmd.Flags().StringVarP(&opts.targetName, "target-name", "t", "", MsgFlagTargetName)

	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var scan bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		Long:    MsgListLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			var resolver *runner.Resolver
			if scan {
				gen, err := a.newGenerator(cfg, genOptions{dryRun: true})
				if err != nil {
					return err
				}
				resolver = gen.Resolver()
			}

			return a.render(cmd, buildListView(cfg, resolver))
		},
	}

	cmd.Flags().BoolVar(&scan, "templates", false, MsgFlagTemplates)

	return cmd
}

// buildListView describes cfg. With a resolver, each type's template folder
// is scanned through its runner.
func buildListView(cfg *config.Config, resolver *runner.Resolver) *display.ListView {
	view := &display.ListView{ConfigPath: cfg.Path}
	snapshot := cfg.Snapshot()

	for _, typ := range cfg.TypeNames() {
		entry := snapshot.Types[typ]
		listing := display.TypeListing{
			Type:         typ,
			Runner:       entry.Runner,
			SourceFolder: entry.SourceFolder,
			TargetFolder: entry.TargetFolder,
			Names:        cfg.TemplateNames(typ),
		}
		if resolver != nil && entry.Runner != runner.CompoundRunnerID {
			listing.Templates = scanTemplates(resolver, typ, listing.Names)
		}
		view.Types = append(view.Types, listing)
	}

	for _, name := range cfg.CompoundNames() {
		cv := display.CompoundView{Name: name}
		for _, m := range cfg.CompoundList(name).Members() {
			cv.Members = append(cv.Members, types.ResourceKey(m.Type, m.Name))
		}
		view.Compounds = append(view.Compounds, cv)
	}
	return view
}

func scanTemplates(resolver *runner.Resolver, typ string, names []string) []string {
	run, err := resolveAny(resolver, typ, "", names)
	if err != nil {
		log.Debug().Err(err).Str("type", typ).Msg("Cannot resolve type for template scan")
		return nil
	}
	files, err := run.ListAvailableTemplates("")
	if err != nil {
		log.Debug().Err(err).Str("type", typ).Msg("Template scan failed")
		return nil
	}
	out := make([]string, 0, len(files))
	for _, f := range files {
		if rel, err := filepath.Rel(run.SourceFolder(), f); err == nil {
			f = rel
		}
		out = append(out, filepath.ToSlash(f))
	}
	return out
}

// resolveAny resolves (typ, name). A type whose templates allow-list does
// not admit the empty name is resolved through its first declared name
// instead, for callers that only need type level information.
func resolveAny(resolver *runner.Resolver, typ, name string, names []string) (runner.Runner, error) {
	run, err := resolver.Resolve(types.NewResource(typ, name))
	if err == nil || name != "" || len(names) == 0 || !errors.IsErrorCode(err, errors.ErrUnknownType) {
		return run, err
	}
	return resolver.Resolve(types.NewResource(typ, names[0]))
}

func newHelpCmd(a *app) *cobra.Command {
	var forceType bool

	cmd := &cobra.Command{
		Use:               "help [command | <type> [name]]",
		Short:             MsgHelpShort,
		Long:              MsgHelpLong,
		GroupID:           "misc",
		Args:              cobra.MaximumNArgs(2),
		ValidArgsFunction: a.completeTypeAndNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			if len(args) == 0 {
				return root.Help()
			}
			if len(args) == 1 && !forceType {
				if c, _, err := root.Find(args); err == nil && c != root {
					return c.Help()
				}
			}

			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			gen, err := a.newGenerator(cfg, genOptions{dryRun: true})
			if err != nil {
				return err
			}

			view, err := buildHelpView(gen.Resolver(), cfg, args)
			if err != nil {
				return err
			}
			return a.render(cmd, view)
		},
	}

	cmd.Flags().BoolVarP(&forceType, "type", "t", false, MsgFlagHelpType)

	return cmd
}

func buildHelpView(resolver *runner.Resolver, cfg *config.Config, args []string) (*display.HelpView, error) {
	typ, name := args[0], ""
	if len(args) > 1 {
		name = args[1]
	}

	run, err := resolveAny(resolver, typ, name, cfg.TemplateNames(typ))
	if err != nil {
		return nil, err
	}

	folders := []string{run.HelpFolder()}
	if name != "" {
		folders = []string{run.TemplateHelpFolder(), run.HelpFolder()}
	}

	content, folder, ok, err := help.Load(resolver.Env().FS, folders...)
	if err != nil {
		return nil, err
	}
	if !ok {
		folder = folders[0]
	}
	return &display.HelpView{
		Resource: types.ResourceKey(typ, name),
		Folder:   folder,
		Markdown: content,
	}, nil
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.format == "json" {
				return a.render(cmd, map[string]string{
					"version": version.Version,
					"commit":  version.Commit,
					"date":    version.Date,
				})
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

func newManCmd(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Hidden:  true,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", dir)
			}
			header := &doc.GenManHeader{
				Title:   "DEVGEN",
				Section: "1",
				Source:  "devgen " + version.Version,
				Manual:  "devgen manual",
			}
			if err := doc.GenManTree(cmd.Root(), header, dir); err != nil {
				return errors.Wrap(err, errors.ErrFileWrite, "failed to generate man pages")
			}
			renderer, err := a.renderer(cmd)
			if err != nil {
				return err
			}
			return renderer.RenderMessage(fmt.Sprintf(MsgManWritten, dir))
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", MsgFlagManDir)

	return cmd
}

// completeTypeAndNames completes the type first, then its template names or,
// for compound types, the declared compounds.
func (a *app) completeTypeAndNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	if len(args) == 0 {
		return cfg.TypeNames(), cobra.ShellCompDirectiveNoFileComp
	}

	var candidates []string
	if cfg.Snapshot().Types[args[0]].Runner == runner.CompoundRunnerID {
		candidates = cfg.CompoundNames()
	} else {
		candidates = cfg.TemplateNames(args[0])
	}

	taken := make(map[string]bool, len(args))
	for _, arg := range args[1:] {
		taken[arg] = true
	}
	var out []string
	for _, c := range candidates {
		if !taken[c] {
			out = append(out, c)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
