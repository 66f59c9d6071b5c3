package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/framescope/pkg/buildinfo"
	"github.com/matzehuels/framescope/pkg/observability"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// The persistent pre-run attaches the CLI logger to the command context and,
// at debug level, routes recorder and inspector events through it.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Framescope measures the spacing between laid-out UI elements",
		Long: `Framescope is a layout inspector. It records the frames of annotated UI
elements, lets you select and focus elements, and shows the distances from
the selection to its nearest neighbours as an overlay.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			if c.Logger.GetLevel() <= LogDebug {
				hooks := newLogHooks(c.Logger)
				observability.SetRecorderHooks(hooks)
				observability.SetInspectorHooks(hooks)
			}
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: user config dir/framescope/framescope.toml)")

	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.spacingCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.publishCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
