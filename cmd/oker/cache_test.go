package main

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/AbdelkaderCE/Oker/oker"
	"github.com/nalgeon/be"
)

func compileFixture(t *testing.T, src string) []oker.Instruction {
	t.Helper()
	result, err := oker.Compile([]byte(src))
	be.Err(t, err, nil)
	return result.Final
}

func TestCacheRoundTripReturnsIdenticalBytecode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	src := []byte(`say "hi"`)
	final := compileFixture(t, string(src))

	be.Err(t, storeCached(path, src, final), nil)

	loaded, ok, err := loadCached(path, src, false)
	be.Err(t, err, nil)
	be.True(t, ok)
	be.True(t, reflect.DeepEqual(loaded, final))
}

func TestCacheMissOnDifferentSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	final := compileFixture(t, `say "hi"`)
	be.Err(t, storeCached(path, []byte(`say "hi"`), final), nil)

	_, ok, err := loadCached(path, []byte(`say "bye"`), false)
	be.Err(t, err, nil)
	be.True(t, !ok)
}
