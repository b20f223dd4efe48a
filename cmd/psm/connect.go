package main

import (
	"github.com/spf13/cobra"

	"github.com/eugenetaranov/psm/internal/server"
)

// newGoCommand creates the go command
func newGoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "go <alias | username@address[:port]>",
		Short: "Connect to a server",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return connectOrList(cmd, a, args[0])
		},
	}
}

// newLinkCommand creates the ln command
func newLinkCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ln <alias | username@address[:port]>",
		Short: "Copy your public key to a server",
		Long: `Append your public key to ~/.ssh/authorized_keys on the server,
unless it is already there.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, ok, err := resolveOrList(a, args[0])
			if err != nil || !ok {
				return err
			}

			if err := a.dispatcher().InstallKey(cmd.Context(), srv); err != nil {
				return err
			}
			a.errOut.Success("public key installed on %s", srv)
			return nil
		},
	}
}

// connectOrList opens a session to ref, or shows the table when ref is an
// unknown alias.
func connectOrList(cmd *cobra.Command, a *app, ref string) error {
	srv, ok, err := resolveOrList(a, ref)
	if err != nil || !ok {
		return err
	}
	return a.dispatcher().Connect(cmd.Context(), srv)
}

// resolveOrList resolves ref to a server. An unknown alias is not an
// error: the table is shown instead and ok is false.
func resolveOrList(a *app, ref string) (server.Server, bool, error) {
	srv, ok, err := server.Resolve(a.reg, ref)
	if err != nil {
		return server.Server{}, false, err
	}
	if !ok {
		a.errOut.Warn("unknown alias %s", ref)
		a.showTable()
		return server.Server{}, false, nil
	}
	a.errOut.Debug("resolved %s to %s", ref, srv)
	return srv, true, nil
}
