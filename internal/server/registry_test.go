package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerValueSemantics(t *testing.T) {
	orig := New("bob", "host", 22)

	changed := orig.WithUsername("alice").WithAddress("other").WithPort(2200)

	assert.Equal(t, New("bob", "host", 22), orig)
	assert.Equal(t, New("alice", "other", 2200), changed)
	assert.Equal(t, "alice@other", changed.Destination())
	assert.Equal(t, "alice@other:2200", changed.String())
	assert.True(t, orig == New("bob", "host", 22))
}

func TestInsertLookup(t *testing.T) {
	reg := NewRegistry()
	srv := New("bob", "host.example", 2200)

	got, ok := reg.Lookup("web")
	assert.False(t, ok)
	assert.Equal(t, Server{}, got)

	reg.Insert("web", srv)

	got, ok = reg.Lookup("web")
	require.True(t, ok)
	assert.Equal(t, srv, got)
}

func TestInsertOverwrites(t *testing.T) {
	reg := NewRegistry().
		Insert("web", New("bob", "old", 22)).
		Insert("web", New("bob", "new", 22))

	got, ok := reg.Lookup("web")
	require.True(t, ok)
	assert.Equal(t, "new", got.Address)
	assert.Equal(t, 1, reg.Len())
}

func TestRemove(t *testing.T) {
	reg := NewRegistry().Insert("web", New("bob", "host", 22)).Insert("db", New("root", "db", 22))

	reg.Remove("web")
	_, ok := reg.Lookup("web")
	assert.False(t, ok)
	assert.Equal(t, 1, reg.Len())

	before := reg.Entries()
	reg.Remove("missing")
	assert.Equal(t, before, reg.Entries())
}

func TestRename(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		srv := New("bob", "host", 2200)
		reg := NewRegistry().Insert("old", srv)

		assert.True(t, reg.Rename("old", "new"))

		_, ok := reg.Lookup("old")
		assert.False(t, ok)
		got, ok := reg.Lookup("new")
		require.True(t, ok)
		assert.Equal(t, srv, got)
	})

	t.Run("absent leaves registry unchanged", func(t *testing.T) {
		path := t.TempDir() + "/server.json"
		reg := NewRegistry().Insert("a", New("u", "a", 22)).Insert("b", New("u", "b", 23))
		require.NoError(t, reg.Persist(path))
		before := readFile(t, path)

		assert.False(t, reg.Rename("missing", "a"))

		require.NoError(t, reg.Persist(path))
		assert.Equal(t, before, readFile(t, path))
	})

	t.Run("overwrites existing target", func(t *testing.T) {
		src := New("bob", "src", 22)
		reg := NewRegistry().Insert("from", src).Insert("to", New("eve", "dst", 2222))

		assert.True(t, reg.Rename("from", "to"))

		got, ok := reg.Lookup("to")
		require.True(t, ok)
		assert.Equal(t, src, got)
		assert.Equal(t, 1, reg.Len())
	})

	t.Run("onto itself", func(t *testing.T) {
		srv := New("bob", "host", 22)
		reg := NewRegistry().Insert("same", srv)

		assert.True(t, reg.Rename("same", "same"))

		got, ok := reg.Lookup("same")
		require.True(t, ok)
		assert.Equal(t, srv, got)
	})
}

func TestIsEmpty(t *testing.T) {
	reg := NewRegistry()
	assert.True(t, reg.IsEmpty())

	reg.Insert("web", New("bob", "host", 22))
	assert.False(t, reg.IsEmpty())

	reg.Remove("web")
	assert.True(t, reg.IsEmpty())
}

func TestEntriesSorted(t *testing.T) {
	reg := NewRegistry()
	for _, alias := range []string{"zeta", "alpha", "Mixed", "beta", "alpha2"} {
		reg.Insert(alias, New("u", alias, 22))
	}

	var aliases []string
	for _, e := range reg.Entries() {
		aliases = append(aliases, e.Alias)
		assert.Equal(t, e.Alias, e.Server.Address)
	}
	assert.Equal(t, []string{"Mixed", "alpha", "alpha2", "beta", "zeta"}, aliases)
}
