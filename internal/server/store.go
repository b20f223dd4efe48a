package server

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/eugenetaranov/psm/internal/errors"
)

// document is the on-disk shape of a registry file.
type document struct {
	Hosts map[string]Server `json:"hosts" yaml:"hosts"`
}

// isYAML reports whether path should be stored as YAML rather than JSON.
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// Load reads a registry file written by Persist.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.CodeRegistryNotFound, "registry file not found",
				map[string]any{"path": path})
		}
		return nil, errors.Wrap(errors.CodeRegistryInvalid, "failed to read registry file",
			map[string]any{"path": path}, err)
	}

	var doc document
	if isYAML(path) {
		err = yaml.Unmarshal(data, &doc)
	} else {
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, errors.Wrap(errors.CodeRegistryInvalid, "invalid registry file",
			map[string]any{"path": path}, err)
	}

	reg := NewRegistry()
	for alias, srv := range doc.Hosts {
		if alias == "" {
			return nil, errors.New(errors.CodeRegistryInvalid, "registry file contains an empty alias",
				map[string]any{"path": path})
		}
		reg.Insert(alias, srv)
	}
	return reg, nil
}

// Persist writes the whole registry to path, replacing the previous file
// atomically. Concurrent writers are not coordinated; the last one wins.
func (r *Registry) Persist(path string) error {
	doc := document{Hosts: r.hosts}

	var (
		payload []byte
		err     error
	)
	if isYAML(path) {
		payload, err = yaml.Marshal(doc)
	} else {
		payload, err = json.MarshalIndent(doc, "", "  ")
		payload = append(payload, '\n')
	}
	if err != nil {
		return errors.Wrap(errors.CodeInternal, "failed to encode registry", nil, err)
	}

	if err := writeFileAtomic(path, payload); err != nil {
		return errors.Wrap(errors.CodeRegistryWrite, "failed to write registry file",
			map[string]any{"path": path}, err)
	}
	return nil
}

// Init persists an empty registry at path.
func Init(path string) error {
	return NewRegistry().Persist(path)
}

// writeFileAtomic writes data to a temp file next to path and renames it
// into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp file %s: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("sync temp file %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp file %s: %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, 0o600); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("chmod temp file %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("atomic rename to %s: %w", path, err)
	}
	return nil
}
