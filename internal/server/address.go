package server

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/eugenetaranov/psm/internal/errors"
)

// targetPattern matches username@address[:port]. The address is a hostname,
// an IPv4 literal or a bracketed IPv6 literal.
var targetPattern = regexp.MustCompile(
	`^([A-Za-z0-9_][A-Za-z0-9._-]*)@([A-Za-z0-9][A-Za-z0-9.-]*|\[[0-9A-Fa-f:.]+\])(?::([0-9]+))?$`,
)

// RemotePath is an alias:path reference used by file transfers.
type RemotePath struct {
	Alias string
	Path  string
}

// ParseTarget parses "user@host[:port]" into a Server. A missing port, or
// one that does not fit in 16 bits, becomes DefaultPort.
func ParseTarget(s string) (Server, error) {
	m := targetPattern.FindStringSubmatch(s)
	if m == nil {
		return Server{}, errors.New(errors.CodeMalformedAddress, "malformed address, expected user@host[:port]",
			map[string]any{"input": s})
	}

	address := strings.TrimSuffix(strings.TrimPrefix(m[2], "["), "]")

	port := DefaultPort
	if m[3] != "" {
		if p, err := strconv.ParseUint(m[3], 10, 16); err == nil {
			port = uint16(p)
		}
	}

	return New(m[1], address, port), nil
}

// ParseRemotePath splits "alias:path" on the first colon. The alias is not
// checked against any registry.
func ParseRemotePath(s string) (RemotePath, error) {
	alias, path, found := strings.Cut(s, ":")
	if !found {
		return RemotePath{}, errors.New(errors.CodeInvalidRemoteSpec, "invalid remote path, expected alias:path",
			map[string]any{"input": s})
	}
	if alias == "" {
		return RemotePath{}, errors.New(errors.CodeInvalidRemoteSpec, "remote path has an empty alias",
			map[string]any{"input": s})
	}
	return RemotePath{Alias: alias, Path: path}, nil
}

// Resolve turns a reference into a Server. The reference is looked up as an
// alias first; if it is unknown and looks like user@host[:port] it is parsed
// directly. An unknown alias is reported as (Server{}, false, nil).
func Resolve(reg *Registry, ref string) (Server, bool, error) {
	if srv, ok := reg.Lookup(ref); ok {
		return srv, true, nil
	}
	if !strings.Contains(ref, "@") {
		return Server{}, false, nil
	}
	srv, err := ParseTarget(ref)
	if err != nil {
		return Server{}, false, err
	}
	return srv, true, nil
}
