// Package dispatch turns a resolved server into ssh and scp invocations.
package dispatch

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/ssh"

	"github.com/eugenetaranov/psm/internal/errors"
	"github.com/eugenetaranov/psm/internal/output"
	"github.com/eugenetaranov/psm/internal/server"
)

// authorizedKeys is the remote file InstallKey appends to.
const authorizedKeys = "~/.ssh/authorized_keys"

// Config holds the external tool locations the dispatcher needs.
type Config struct {
	SSHPath       string
	SCPPath       string
	PublicKeyPath string
}

// Dispatcher runs ssh and scp against resolved servers. It never modifies
// the registry.
type Dispatcher struct {
	cfg    Config
	runner Runner
	out    *output.Output
}

// Option configures the Dispatcher.
type Option func(*Dispatcher)

// WithRunner replaces the process runner.
func WithRunner(r Runner) Option {
	return func(d *Dispatcher) {
		d.runner = r
	}
}

// WithOutput sets where debug lines are written.
func WithOutput(o *output.Output) Option {
	return func(d *Dispatcher) {
		d.out = o
	}
}

// New creates a Dispatcher.
func New(cfg Config, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		cfg:    cfg,
		runner: NewExecRunner(),
		out:    output.New(os.Stderr),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// ConnectArgs returns the ssh arguments for an interactive session.
func ConnectArgs(srv server.Server) []string {
	return []string{srv.Destination(), portFlag("-p", srv.Port)}
}

// InstallKeyArgs returns the ssh arguments that append key to the remote
// authorized_keys file unless it is already there.
func InstallKeyArgs(srv server.Server, key string) []string {
	return []string{srv.Destination(), portFlag("-p", srv.Port), InstallKeyCommand(key)}
}

// InstallKeyCommand returns the remote shell command used by InstallKey.
// It always exits 0 once it runs, so a non-zero status comes from ssh.
func InstallKeyCommand(key string) string {
	q := shellQuote(key)
	return fmt.Sprintf("mkdir -p ~/.ssh && chmod 700 ~/.ssh; grep -cq %s %s || echo %s >> %s; exit 0;",
		q, authorizedKeys, q, authorizedKeys)
}

// UploadArgs returns the scp arguments copying locals to remotePath.
func UploadArgs(srv server.Server, remotePath string, locals []string, recursive bool) []string {
	args := []string{copyFlag(srv.Port, recursive)}
	args = append(args, locals...)
	return append(args, remoteSpec(srv, remotePath))
}

// DownloadArgs returns the scp arguments copying remotePath to local.
func DownloadArgs(srv server.Server, remotePath, local string, recursive bool) []string {
	return []string{copyFlag(srv.Port, recursive), remoteSpec(srv, remotePath), local}
}

// Connect opens an interactive ssh session and waits for it to end. The
// exit status of ssh is not inspected.
func (d *Dispatcher) Connect(ctx context.Context, srv server.Server) error {
	_, err := d.run(ctx, d.cfg.SSHPath, ConnectArgs(srv))
	return err
}

// InstallKey copies the local public key into the remote authorized_keys.
// It returns nil when the key is installed, CodeKeyInstallFailed when ssh
// exits non-zero, and CodeSpawnFailed when ssh cannot be started.
func (d *Dispatcher) InstallKey(ctx context.Context, srv server.Server) error {
	key, err := ReadPublicKey(d.cfg.PublicKeyPath)
	if err != nil {
		return err
	}

	code, err := d.run(ctx, d.cfg.SSHPath, InstallKeyArgs(srv, key))
	if err != nil {
		return err
	}
	if code != 0 {
		return errors.New(errors.CodeKeyInstallFailed, "failed to install public key",
			map[string]any{"server": srv.String(), "exit_code": code})
	}
	return nil
}

// Upload copies one or more local paths to remotePath on srv.
func (d *Dispatcher) Upload(ctx context.Context, srv server.Server, remotePath string, locals []string, recursive bool) error {
	if len(locals) == 0 {
		return errors.New(errors.CodeUsage, "upload needs at least one local path", nil)
	}
	_, err := d.run(ctx, d.cfg.SCPPath, UploadArgs(srv, remotePath, locals, recursive))
	return err
}

// Download copies remotePath on srv to exactly one local destination.
func (d *Dispatcher) Download(ctx context.Context, srv server.Server, remotePath string, locals []string, recursive bool) error {
	if len(locals) != 1 {
		return errors.New(errors.CodeUsage, "download needs exactly one local destination",
			map[string]any{"local_paths": strings.Join(locals, " ")})
	}
	_, err := d.run(ctx, d.cfg.SCPPath, DownloadArgs(srv, remotePath, locals[0], recursive))
	return err
}

// ReadPublicKey reads a public key file and returns its single line with
// line endings removed. The line must parse as an authorized_keys entry.
func ReadPublicKey(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(errors.CodeKeyUnreadable, "failed to read public key",
			map[string]any{"path": path}, err)
	}

	key := strings.NewReplacer("\r", "", "\n", "").Replace(string(data))
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New(errors.CodeKeyUnreadable, "public key file is empty", map[string]any{"path": path})
	}
	if _, _, _, _, err := ssh.ParseAuthorizedKey([]byte(key)); err != nil {
		return "", errors.Wrap(errors.CodeKeyUnreadable, "invalid public key",
			map[string]any{"path": path}, err)
	}
	return key, nil
}

// run spawns the tool and maps a launch failure to CodeSpawnFailed.
func (d *Dispatcher) run(ctx context.Context, name string, args []string) (int, error) {
	d.out.Debug("exec: %s %s", name, strings.Join(args, " "))

	code, err := d.runner.Run(ctx, name, args)
	if err != nil {
		return code, errors.Wrap(errors.CodeSpawnFailed, "failed to launch external tool",
			map[string]any{"executable": name}, err)
	}

	d.out.Debug("%s exited with code %d", name, code)
	return code, nil
}

func portFlag(flag string, port uint16) string {
	return fmt.Sprintf("%s%d", flag, port)
}

// copyFlag builds the single scp flag carrying the port and, optionally,
// recursion: "-P22" or "-rP22".
func copyFlag(port uint16, recursive bool) string {
	if recursive {
		return portFlag("-rP", port)
	}
	return portFlag("-P", port)
}

// remoteSpec builds user@host:path. IPv6 addresses are bracketed so scp
// does not split them at their first colon.
func remoteSpec(srv server.Server, remotePath string) string {
	host := srv.Address
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	return srv.Username + "@" + host + ":" + remotePath
}

// shellQuote wraps s in single quotes for a POSIX shell.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
