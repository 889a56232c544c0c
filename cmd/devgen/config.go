package devgen

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/devgen/pkg/errors"
	"github.com/arthur-debert/devgen/pkg/generator"
	"github.com/arthur-debert/devgen/pkg/ui/display"
)

// configType is the type `config init` generates.
const configType = "config"

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "core",
	}

	cmd.AddCommand(newConfigShowCmd(a))
	cmd.AddCommand(newConfigInitCmd(a))

	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "show",
		Short:   MsgConfigShowShort,
		Example: MsgConfigShowExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			encoding := strings.ToLower(output)
			if encoding == "" {
				encoding = "text"
				if a.format == "json" {
					encoding = "json"
				}
			}

			if encoding == "text" {
				return cfg.WriteText(cmd.OutOrStdout())
			}
			data, err := cfg.Marshal(encoding)
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return errors.Wrap(err, errors.ErrFileWrite, "failed to write configuration")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", MsgFlagOutput)
	_ = cmd.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "toml", "yaml", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func newConfigInitCmd(a *app) *cobra.Command {
	var opts genOptions

	cmd := &cobra.Command{
		Use:   "init",
		Short: MsgConfigInitShort,
		Long:  MsgConfigInitLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			gen, err := a.newGenerator(cfg, opts)
			if err != nil {
				return err
			}

			result, genErr := gen.Generate(cmd.Context(), configType, "")
			view := display.NewGenerateView([]*generator.Result{result}, opts.dryRun)
			if err := a.render(cmd, view); err != nil {
				return err
			}
			return reported(genErr)
		},
	}

	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, MsgFlagForce)
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, MsgFlagDryRun)

	return cmd
}
