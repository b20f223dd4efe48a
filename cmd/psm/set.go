package main

import (
	"github.com/spf13/cobra"

	"github.com/eugenetaranov/psm/internal/config"
)

// newSetCommand creates the set command
func newSetCommand(a *app) *cobra.Command {
	var o config.Overrides

	cmd := &cobra.Command{
		Use:   "set [-k public-key] [-s server-file] [-c ssh] [-a scp]",
		Short: "Configure psm",
		Long: `Update the psm configuration. Every path must already exist.

Examples:
  psm set -k ~/.ssh/id_ed25519.pub
  psm set -c /usr/local/bin/ssh -a /usr/local/bin/scp`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.cfg.Apply(o)
			if err != nil {
				return err
			}
			path := config.Path(a.cfgDir)
			if err := cfg.Save(path); err != nil {
				return err
			}
			a.errOut.Success("configuration saved to %s", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&o.PublicKeyPath, "pub-key", "k", "", "Public key file")
	cmd.Flags().StringVarP(&o.ServerFilePath, "server-file", "s", "", "Server registry file")
	cmd.Flags().StringVarP(&o.SSHPath, "ssh", "c", "", "ssh executable")
	cmd.Flags().StringVarP(&o.SCPPath, "scp", "a", "", "scp executable")

	return cmd
}
