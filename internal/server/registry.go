package server

import "sort"

// Entry is one alias and its record, as returned by Registry.Entries.
type Entry struct {
	Alias  string
	Server Server
}

// Registry maps aliases to servers. Insert and Rename overwrite existing
// aliases; callers that need create-if-absent must Lookup first.
// A Registry is not safe for concurrent use.
type Registry struct {
	hosts map[string]Server
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{hosts: make(map[string]Server)}
}

// Lookup returns the server stored under alias.
func (r *Registry) Lookup(alias string) (Server, bool) {
	srv, ok := r.hosts[alias]
	return srv, ok
}

// Insert stores srv under alias, replacing any existing entry.
func (r *Registry) Insert(alias string, srv Server) *Registry {
	r.hosts[alias] = srv
	return r
}

// Remove deletes alias. Removing an unknown alias is a no-op.
func (r *Registry) Remove(alias string) *Registry {
	delete(r.hosts, alias)
	return r
}

// Rename moves the server at from to to. It returns false, leaving the
// registry untouched, if from is unknown. An existing entry at to is
// overwritten.
func (r *Registry) Rename(from, to string) bool {
	srv, ok := r.hosts[from]
	if !ok {
		return false
	}
	r.Remove(from).Insert(to, srv)
	return true
}

// IsEmpty reports whether the registry has no entries.
func (r *Registry) IsEmpty() bool {
	return len(r.hosts) == 0
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.hosts)
}

// Entries returns all entries sorted by alias.
func (r *Registry) Entries() []Entry {
	entries := make([]Entry, 0, len(r.hosts))
	for alias, srv := range r.hosts {
		entries = append(entries, Entry{Alias: alias, Server: srv})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Alias < entries[j].Alias
	})
	return entries
}
