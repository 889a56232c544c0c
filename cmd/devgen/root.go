package devgen

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/devgen/internal/version"
	"github.com/arthur-debert/devgen/pkg/config"
	"github.com/arthur-debert/devgen/pkg/errors"
	"github.com/arthur-debert/devgen/pkg/filesystem"
	"github.com/arthur-debert/devgen/pkg/generator"
	"github.com/arthur-debert/devgen/pkg/logging"
	"github.com/arthur-debert/devgen/pkg/ui"
)

// app holds the global flags shared by every command.
type app struct {
	verbosity  int
	format     string
	configPath string
	sets       map[string]string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	root, _ := newRoot()
	return root
}

func newRoot() (*cobra.Command, *app) {
	initTemplateFormatting()

	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "devgen",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(a.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}
	rootCmd.SetVersionTemplate(version.String() + "\n")

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&a.format, "format", "auto", MsgFlagFormat)
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringToStringVar(&a.sets, "set", nil, MsgFlagSet)
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return ui.FormatNames, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.SetHelpCommand(newHelpCmd(a))
	rootCmd.AddCommand(newGenerateCmd(a))
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd(a))
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd(a))

	return rootCmd, a
}

// Execute runs devgen with os.Args and returns the process exit code.
// Errors not already shown by the command are rendered in the selected
// format: JSON on stdout, everything else on stderr.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, a := newRoot()
	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var rep *reportedError
	if errors.As(err, &rep) {
		return 1
	}

	format, perr := ui.ParseFormat(a.format)
	if perr != nil {
		format = ui.FormatAuto
	}
	var w io.Writer = os.Stderr
	if format == ui.FormatJSON {
		w = os.Stdout
	}
	renderer, rerr := ui.NewRenderer(format, w)
	if rerr != nil {
		renderer, _ = ui.NewRenderer(ui.FormatText, os.Stderr)
	}
	_ = renderer.RenderError(err)
	return 1
}

// reportedError marks a failure the command already rendered as part of its
// result, so Execute only sets the exit code.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

func (a *app) renderer(cmd *cobra.Command) (ui.Renderer, error) {
	format, err := ui.ParseFormat(a.format)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}

func (a *app) render(cmd *cobra.Command, result interface{}) error {
	renderer, err := a.renderer(cmd)
	if err != nil {
		return err
	}
	return renderer.RenderResult(result)
}

func (a *app) loadConfig() (*config.Config, error) {
	return config.Load(config.LoadOptions{
		Path:      a.configPath,
		Overrides: a.sets,
	})
}

type genOptions struct {
	force      bool
	dryRun     bool
	targetName string
}

// newGenerator wires a generator to the real disk through synthfs, or to an
// in-memory overlay for dry runs.
func (a *app) newGenerator(store config.Store, opts genOptions) (*generator.Generator, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, MsgErrWorkDir)
	}

	fsys := filesystem.NewSynthFS(filesystem.SynthFSOptions{Rollback: true})
	if opts.dryRun {
		fsys = filesystem.NewDryRunFS()
	}

	return generator.New(generator.Options{
		Store:      store,
		FS:         fsys,
		Overwrite:  opts.force,
		TargetName: opts.targetName,
		WorkDir:    wd,
	}), nil
}
