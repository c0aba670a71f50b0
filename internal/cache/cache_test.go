package cache

import (
	"path/filepath"
	"testing"

	"github.com/nalgeon/be"
)

func TestPutThenGetRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bytecode.db")
	c, err := Open(path)
	be.Err(t, err, nil)
	defer c.Close()

	be.Err(t, c.Put([]byte("key"), []byte("blob")), nil)

	got, ok, err := c.Get([]byte("key"))
	be.Err(t, err, nil)
	be.True(t, ok)
	be.Equal(t, string(got), "blob")
}

func TestGetOnMissingKeyReportsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bytecode.db")
	c, err := Open(path)
	be.Err(t, err, nil)
	defer c.Close()

	_, ok, err := c.Get([]byte("nope"))
	be.Err(t, err, nil)
	be.True(t, !ok)
}

func TestPutOverwritesExistingKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bytecode.db")
	c, err := Open(path)
	be.Err(t, err, nil)
	defer c.Close()

	be.Err(t, c.Put([]byte("key"), []byte("first")), nil)
	be.Err(t, c.Put([]byte("key"), []byte("second")), nil)

	got, ok, err := c.Get([]byte("key"))
	be.Err(t, err, nil)
	be.True(t, ok)
	be.Equal(t, string(got), "second")
}

func TestReopenPersistsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bytecode.db")
	c, err := Open(path)
	be.Err(t, err, nil)
	be.Err(t, c.Put([]byte("key"), []byte("blob")), nil)
	be.Err(t, c.Close(), nil)

	reopened, err := Open(path)
	be.Err(t, err, nil)
	defer reopened.Close()

	got, ok, err := reopened.Get([]byte("key"))
	be.Err(t, err, nil)
	be.True(t, ok)
	be.Equal(t, string(got), "blob")
}
