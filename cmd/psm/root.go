package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Build-time variables (set by the release build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// newRootCommand creates the root command. A single argument that is not
// a subcommand is treated as an alias to connect to.
func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "psm [alias]",
		Short: "psm - personal SSH connection manager",
		Long: `psm keeps short aliases for the servers you log into and hands
them to ssh and scp.

Examples:
  psm new web deploy 10.0.0.5 2222
  psm web
  psm up web:/var/www ./site
  psm down -r web:/var/log ./logs`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Args:          usageArgs(cobra.MaximumNArgs(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.configure()
			if cmd.Annotations[skipSetup] == "true" || cmd.Name() == "help" {
				return nil
			}
			return a.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return connectOrList(cmd, a, args[0])
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.SetFlagErrorFunc(flagError)

	// Global flags
	root.PersistentFlags().StringVar(&a.home, "home", "", "psm home directory (default: $PSM_HOME or ~/.psm)")
	root.PersistentFlags().BoolVarP(&a.debug, "debug", "d", false, "Enable debug output")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		newGoCommand(a),
		newListCommand(a),
		newCreateCommand(a),
		newRemoveCommand(a),
		newRenameCommand(a),
		newModifyCommand(a),
		newLinkCommand(a),
		newUploadCommand(a),
		newDownloadCommand(a),
		newSetCommand(a),
		newVersionCommand(),
	)

	return root
}

// newVersionCommand creates the version command
func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Args:        usageArgs(cobra.NoArgs),
		Annotations: map[string]string{skipSetup: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "psm %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}
