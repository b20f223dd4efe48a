package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/eugenetaranov/psm/internal/errors"
	"github.com/eugenetaranov/psm/internal/server"
)

// newCreateCommand creates the new command
func newCreateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "new <alias> (<username> <address> [port] | <username@address[:port]>)",
		Short: "Create an alias for a remote SSH server",
		Long: `Create an alias for a remote SSH server. The port defaults to 22.

Examples:
  psm new web deploy 10.0.0.5
  psm new web deploy 10.0.0.5 2222
  psm new db admin@db.internal:2200`,
		Args: usageArgs(cobra.RangeArgs(2, 4)),
		RunE: func(cmd *cobra.Command, args []string) error {
			alias := args[0]
			if err := requireValue("alias", alias); err != nil {
				return err
			}

			srv, err := serverFromArgs(args[1:])
			if err != nil {
				return err
			}

			if _, ok := a.reg.Lookup(alias); ok {
				return errors.New(errors.CodeAliasExists, "alias already exists", map[string]any{"alias": alias})
			}

			if err := a.reg.Insert(alias, srv).Persist(a.cfg.ServerFilePath); err != nil {
				return err
			}
			a.errOut.Success("added %s (%s)", alias, srv)
			a.showTable()
			return nil
		},
	}
}

// serverFromArgs builds a record from either a single user@host[:port]
// argument or separate username, address and optional port arguments.
func serverFromArgs(args []string) (server.Server, error) {
	if len(args) == 1 {
		return server.ParseTarget(args[0])
	}

	if err := requireValue("username", args[0]); err != nil {
		return server.Server{}, err
	}
	if err := requireValue("address", args[1]); err != nil {
		return server.Server{}, err
	}

	port := server.DefaultPort
	if len(args) == 3 {
		p, err := parsePort(args[2])
		if err != nil {
			return server.Server{}, err
		}
		port = p
	}
	return server.New(args[0], args[1], port), nil
}

func parsePort(s string) (uint16, error) {
	p, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, errors.Wrap(errors.CodeUsage, "invalid port", map[string]any{"port": s}, err)
	}
	return uint16(p), nil
}

// newRemoveCommand creates the rm command
func newRemoveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <alias>",
		Short: "Remove an alias",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			alias := args[0]
			if err := a.reg.Remove(alias).Persist(a.cfg.ServerFilePath); err != nil {
				return err
			}
			a.errOut.Success("removed %s", alias)
			return nil
		},
	}
}

// newModifyCommand creates the upd command
func newModifyCommand(a *app) *cobra.Command {
	var (
		username string
		address  string
		port     uint16
	)

	cmd := &cobra.Command{
		Use:   "upd <alias> [-u username] [-a address] [-p port]",
		Short: "Modify an alias in place",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			alias := args[0]

			srv, ok := a.reg.Lookup(alias)
			if !ok {
				return aliasNotFound(alias)
			}

			flags := cmd.Flags()
			if flags.Changed("username") {
				if err := requireValue("username", username); err != nil {
					return err
				}
				srv = srv.WithUsername(username)
			}
			if flags.Changed("address") {
				if err := requireValue("address", address); err != nil {
					return err
				}
				srv = srv.WithAddress(address)
			}
			if flags.Changed("port") {
				srv = srv.WithPort(port)
			}

			if err := a.reg.Insert(alias, srv).Persist(a.cfg.ServerFilePath); err != nil {
				return err
			}
			a.errOut.Success("updated %s (%s)", alias, srv)
			a.showTable()
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "New username")
	cmd.Flags().StringVarP(&address, "address", "a", "", "New address")
	cmd.Flags().Uint16VarP(&port, "port", "p", server.DefaultPort, "New port")

	return cmd
}

// newRenameCommand creates the mv command
func newRenameCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mv <alias> <new-alias>",
		Short: "Rename an alias",
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to := args[0], args[1]
			if err := requireValue("new alias", to); err != nil {
				return err
			}

			if _, ok := a.reg.Lookup(to); ok && from != to {
				if _, ok := a.reg.Lookup(from); ok {
					a.errOut.Warn("%s already exists and will be replaced", to)
				}
			}

			if !a.reg.Rename(from, to) {
				return aliasNotFound(from)
			}
			if err := a.save(); err != nil {
				return err
			}
			a.errOut.Success("renamed %s to %s", from, to)
			return nil
		},
	}
}

// newListCommand creates the ls command
func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List all aliases",
		Args:  usageArgs(cobra.NoArgs),
		Run: func(cmd *cobra.Command, args []string) {
			a.showTable()
		},
	}
}
