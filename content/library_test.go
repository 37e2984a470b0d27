package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibraryReloadKeepsSnapshotOnFailure(t *testing.T) {
	fsys := fstest.MapFS{"site.yaml": {Data: []byte("name: First\n")}}
	lib, err := NewLibrary(fsys)
	require.NoError(t, err)
	first := lib.Catalog()
	assert.Equal(t, "First", first.Site.Name)

	fsys["site.yaml"] = &fstest.MapFile{Data: []byte("name: [broken\n")}
	require.Error(t, lib.Reload())
	assert.Same(t, first, lib.Catalog())

	fsys["site.yaml"] = &fstest.MapFile{Data: []byte("name: Second\n")}
	require.NoError(t, lib.Reload())
	assert.Equal(t, "Second", lib.Catalog().Site.Name)
	assert.False(t, lib.LoadedAt().IsZero())
}

func TestNewLibraryFailsOnInvalidContent(t *testing.T) {
	_, err := NewLibrary(fstest.MapFS{})
	require.Error(t, err)
}

func TestLibraryWatchReloads(t *testing.T) {
	dir := t.TempDir()
	site := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(site, []byte("name: Before\n"), 0o644))

	lib, err := NewLibrary(os.DirFS(dir))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, lib.Watch(ctx, dir, zerolog.Nop()))

	require.NoError(t, os.WriteFile(site, []byte("name: After\n"), 0o644))
	require.Eventually(t, func() bool {
		return lib.Catalog().Site.Name == "After"
	}, 5*time.Second, 50*time.Millisecond)
}
