// Package server holds the alias registry: the Server record, the parser
// for user@host[:port] and alias:path references, and the on-disk store.
package server

import "fmt"

// DefaultPort is used when a target does not name a port.
const DefaultPort uint16 = 22

// Server is the connection parameters of one remote host.
// It is a value type; the With* methods return modified copies.
type Server struct {
	Username string `json:"username" yaml:"username"`
	Address  string `json:"address" yaml:"address"`
	Port     uint16 `json:"port" yaml:"port"`
}

// New creates a Server from already validated fields.
func New(username, address string, port uint16) Server {
	return Server{Username: username, Address: address, Port: port}
}

// WithUsername returns a copy of s with the username replaced.
func (s Server) WithUsername(username string) Server {
	s.Username = username
	return s
}

// WithAddress returns a copy of s with the address replaced.
func (s Server) WithAddress(address string) Server {
	s.Address = address
	return s
}

// WithPort returns a copy of s with the port replaced.
func (s Server) WithPort(port uint16) Server {
	s.Port = port
	return s
}

// Destination returns the "user@address" form understood by ssh and scp.
func (s Server) Destination() string {
	return s.Username + "@" + s.Address
}

// String returns "user@address:port".
func (s Server) String() string {
	return fmt.Sprintf("%s:%d", s.Destination(), s.Port)
}
