package secrets

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRef_ResolveFromEnv(t *testing.T) {
	t.Setenv("SITE_TEST_SECRET", "phc_abc")

	v, err := Ref("SITE_TEST_SECRET").Resolve(context.Background(), EnvStore{})
	require.NoError(t, err)
	assert.Equal(t, "phc_abc", v)
}

func TestRef_NotFound(t *testing.T) {
	t.Setenv("SITE_TEST_SECRET", "")

	_, err := Ref("SITE_TEST_SECRET").Resolve(context.Background(), EnvStore{})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRef_Empty(t *testing.T) {
	_, err := Ref("").Resolve(context.Background(), EnvStore{})
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "POSTHOG_KEY"), []byte("phc_file\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "BLANK"), []byte("  \n"), 0o600))

	store := FileStore{Dir: dir}
	ctx := context.Background()

	v, ok, err := store.Lookup(ctx, "POSTHOG_KEY")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "phc_file", v)

	_, ok, err = store.Lookup(ctx, "BLANK")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = store.Lookup(ctx, "MISSING")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = store.Lookup(ctx, "../etc/passwd")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_PicksUpRotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "KEY")
	store := FileStore{Dir: dir}

	require.NoError(t, os.WriteFile(path, []byte("one"), 0o600))
	v, err := Ref("KEY").Resolve(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, "one", v)

	require.NoError(t, os.WriteFile(path, []byte("two"), 0o600))
	v, err = Ref("KEY").Resolve(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, "two", v)
}

func TestChain_FirstHitWins(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SITE_CHAIN_KEY"), []byte("from-file"), 0o600))
	t.Setenv("SITE_CHAIN_KEY", "from-env")

	v, err := Ref("SITE_CHAIN_KEY").Resolve(context.Background(), Chain{FileStore{Dir: dir}, EnvStore{}})
	require.NoError(t, err)
	assert.Equal(t, "from-file", v)

	v, err = Ref("SITE_CHAIN_KEY").Resolve(context.Background(), Chain{EnvStore{}, FileStore{Dir: dir}})
	require.NoError(t, err)
	assert.Equal(t, "from-env", v)
}
