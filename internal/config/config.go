// Package config loads and bootstraps the psm configuration file.
package config

import (
	"os"
	"os/exec"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/eugenetaranov/psm/internal/errors"
)

const (
	// DirName is the psm home directory name under the user's home.
	DirName = ".psm"

	// FileName is the config file inside the psm home directory.
	FileName = "config.yaml"

	// ServerFileName is the default registry file inside the psm home directory.
	ServerFileName = "server.json"

	// EnvHome overrides the psm home directory.
	EnvHome = "PSM_HOME"
)

// Config is the resolved psm configuration. It is loaded once at startup
// and passed explicitly to the registry and dispatcher.
type Config struct {
	PublicKeyPath  string `yaml:"public_key_path"`
	ServerFilePath string `yaml:"server_file_path"`
	SSHPath        string `yaml:"ssh_path"`
	SCPPath        string `yaml:"scp_path"`
}

// Options controls where the configuration lives.
type Options struct {
	// Dir is the psm home directory. Empty means $PSM_HOME, then ~/.psm.
	Dir string

	// EnvDir is the value of $PSM_HOME (injected by the caller, for tests).
	EnvDir string

	// HomeDir is the user's home directory (detected when empty).
	HomeDir string
}

// Overrides holds the values accepted by the set command. Empty fields are
// left unchanged.
type Overrides struct {
	PublicKeyPath  string
	ServerFilePath string
	SSHPath        string
	SCPPath        string
}

// ResolveDir returns the psm home directory for opts: Dir > EnvDir > ~/.psm.
func ResolveDir(opts Options) (string, error) {
	if opts.Dir != "" {
		return filepath.Abs(opts.Dir)
	}
	if opts.EnvDir != "" {
		return filepath.Abs(opts.EnvDir)
	}
	home, err := homeDir(opts)
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DirName), nil
}

// Path returns the config file path for a psm home directory.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Default returns the configuration written on first run.
func Default(dir, home string) Config {
	return Config{
		PublicKeyPath:  filepath.Join(home, ".ssh", "id_rsa.pub"),
		ServerFilePath: filepath.Join(dir, ServerFileName),
		SSHPath:        lookupTool("ssh"),
		SCPPath:        lookupTool("scp"),
	}
}

// Init loads the configuration, bootstrapping it on first run. The second
// return value is true when the psm home directory was just created; the
// caller must then initialize an empty registry at ServerFilePath.
func Init(opts Options) (Config, bool, error) {
	dir, err := ResolveDir(opts)
	if err != nil {
		return Config{}, false, errors.Wrap(errors.CodeCfgInvalid, "failed to resolve psm home directory", nil, err)
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		home, err := homeDir(opts)
		if err != nil {
			return Config{}, false, errors.Wrap(errors.CodeCfgInvalid, "cannot find user's home directory", nil, err)
		}
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return Config{}, false, errors.Wrap(errors.CodeCfgInvalid, "failed to create psm home directory",
				map[string]any{"path": dir}, err)
		}
		cfg := Default(dir, home)
		if err := cfg.Save(Path(dir)); err != nil {
			return Config{}, false, err
		}
		return cfg, true, nil
	}

	cfg, err := Load(Path(dir))
	if err != nil {
		return Config{}, false, err
	}
	return cfg, false, nil
}

// Load reads and validates a config file.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.New(errors.CodeCfgNotFound, "config file not found", map[string]any{"path": path})
		}
		return Config{}, errors.Wrap(errors.CodeCfgInvalid, "failed to read config file", map[string]any{"path": path}, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.CodeCfgInvalid, "invalid config file", map[string]any{"path": path}, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(errors.CodeCfgInvalid, "incomplete config file", map[string]any{"path": path}, err)
	}
	return cfg, nil
}

// Save writes the config file.
func (c Config) Save(path string) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, "failed to encode config", nil, err)
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return errors.Wrap(errors.CodeCfgInvalid, "failed to write config file", map[string]any{"path": path}, err)
	}
	return nil
}

// Validate checks that every path is set.
func (c Config) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"public_key_path", c.PublicKeyPath},
		{"server_file_path", c.ServerFilePath},
		{"ssh_path", c.SSHPath},
		{"scp_path", c.SCPPath},
	}
	for _, f := range fields {
		if f.value == "" {
			return errors.New(errors.CodeCfgInvalid, "config field is empty", map[string]any{"field": f.name})
		}
	}
	return nil
}

// Apply returns a copy of c with the non-empty overrides applied. Every
// override must name an existing path.
func (c Config) Apply(o Overrides) (Config, error) {
	updates := []struct {
		value  string
		target *string
	}{
		{o.PublicKeyPath, &c.PublicKeyPath},
		{o.ServerFilePath, &c.ServerFilePath},
		{o.SSHPath, &c.SSHPath},
		{o.SCPPath, &c.SCPPath},
	}
	for _, u := range updates {
		if u.value == "" {
			continue
		}
		abs, err := filepath.Abs(u.value)
		if err != nil {
			return Config{}, errors.Wrap(errors.CodeCfgInvalid, "invalid path", map[string]any{"path": u.value}, err)
		}
		if _, err := os.Stat(abs); err != nil {
			return Config{}, errors.Wrap(errors.CodeCfgInvalid, "path not found", map[string]any{"path": u.value}, err)
		}
		*u.target = abs
	}
	return c, nil
}

func homeDir(opts Options) (string, error) {
	if opts.HomeDir != "" {
		return opts.HomeDir, nil
	}
	return os.UserHomeDir()
}

// lookupTool resolves name on PATH, falling back to the bare name so the
// config stays usable if the tool is installed later.
func lookupTool(name string) string {
	if p, err := exec.LookPath(name); err == nil {
		if abs, err := filepath.Abs(p); err == nil {
			return abs
		}
		return p
	}
	return name
}
