package main

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/eugenetaranov/psm/internal/config"
	"github.com/eugenetaranov/psm/internal/dispatch"
	"github.com/eugenetaranov/psm/internal/output"
	"github.com/eugenetaranov/psm/internal/server"
)

// skipSetup marks commands that run without a config or registry.
const skipSetup = "psm/skip-setup"

// app holds the state of one invocation: global flags, the loaded
// configuration and registry, and the console writers.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string

	home    string
	debug   bool
	noColor bool

	out    *output.Output
	errOut *output.Output

	cfgDir string
	cfg    config.Config
	reg    *server.Registry
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		getenv: os.Getenv,
		out:    output.New(stdout),
		errOut: output.New(stderr),
	}
}

// configure applies the global flags to the console writers.
func (a *app) configure() {
	color := !a.noColor && a.getenv("NO_COLOR") == ""
	a.out.SetColor(color && isTerminal(a.stdout))
	a.errOut.SetColor(color && isTerminal(a.stderr))
	a.out.SetDebug(a.debug)
	a.errOut.SetDebug(a.debug)
}

// load resolves the configuration and reads the registry. On first run it
// creates the psm home directory, the config file and an empty registry.
func (a *app) load() error {
	opts := config.Options{Dir: a.home, EnvDir: a.getenv(config.EnvHome)}

	dir, err := config.ResolveDir(opts)
	if err != nil {
		return err
	}
	a.cfgDir = dir

	cfg, created, err := config.Init(opts)
	if err != nil {
		return err
	}
	if created {
		if err := bootstrapRegistry(dir, cfg.ServerFilePath); err != nil {
			return err
		}
		a.errOut.Info("initialized %s", dir)
	}
	a.errOut.Debug("config: %s", config.Path(dir))
	a.errOut.Debug("registry: %s", cfg.ServerFilePath)

	reg, err := server.Load(cfg.ServerFilePath)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.reg = reg
	return nil
}

// bootstrapRegistry creates the empty registry of a freshly created psm
// home. On failure the home directory is removed so the next run starts
// the bootstrap over.
func bootstrapRegistry(dir, path string) error {
	if err := server.Init(path); err != nil {
		_ = os.RemoveAll(dir)
		return err
	}
	return nil
}

// save persists the registry to the configured file.
func (a *app) save() error {
	return a.reg.Persist(a.cfg.ServerFilePath)
}

func (a *app) dispatcher() *dispatch.Dispatcher {
	runner := dispatch.NewExecRunner(dispatch.WithStdio(a.stdin, a.stdout, a.stderr))
	return dispatch.New(dispatch.Config{
		SSHPath:       a.cfg.SSHPath,
		SCPPath:       a.cfg.SCPPath,
		PublicKeyPath: a.cfg.PublicKeyPath,
	}, dispatch.WithRunner(runner), dispatch.WithOutput(a.errOut))
}

// showTable prints the registry on stdout.
func (a *app) showTable() {
	a.out.Table(a.reg.Entries())
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
