package main

import (
	"github.com/spf13/cobra"

	"github.com/eugenetaranov/psm/internal/server"
)

// newUploadCommand creates the up command
func newUploadCommand(a *app) *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "up [-r] <alias:remote-path> <local-path>...",
		Short: "Copy local files to a server",
		Long: `Copy one or more local paths to a server with scp.

Examples:
  psm up web:/var/www index.html style.css
  psm up -r web:/srv ./site`,
		Args: usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, remote, err := lookupRemote(a, args[0])
			if err != nil {
				return err
			}
			return a.dispatcher().Upload(cmd.Context(), srv, remote.Path, args[1:], recursive)
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Copy directories recursively")

	return cmd
}

// newDownloadCommand creates the down command
func newDownloadCommand(a *app) *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "down [-r] <alias:remote-path> <local-path>",
		Short: "Copy files from a server",
		Long: `Copy a remote path to a single local destination with scp.

Examples:
  psm down web:/var/log/nginx/access.log .
  psm down -r web:/etc/nginx ./nginx`,
		Args: usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, remote, err := lookupRemote(a, args[0])
			if err != nil {
				return err
			}
			return a.dispatcher().Download(cmd.Context(), srv, remote.Path, args[1:], recursive)
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Copy directories recursively")

	return cmd
}

// lookupRemote parses an alias:path argument and resolves its alias. The
// alias must exist.
func lookupRemote(a *app, spec string) (server.Server, server.RemotePath, error) {
	remote, err := server.ParseRemotePath(spec)
	if err != nil {
		return server.Server{}, server.RemotePath{}, err
	}

	srv, ok := a.reg.Lookup(remote.Alias)
	if !ok {
		return server.Server{}, server.RemotePath{}, aliasNotFound(remote.Alias)
	}
	return srv, remote, nil
}
