package auth_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyper-a11/cyber-gst-info/internal/auth"
)

func TestLoadRegistryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.yaml")
	require.NoError(t, os.WriteFile(path, []byte("PAID_KEY: \"2026-11-15\"\nTRIAL_KEY: \"2026-03-18\"\n"), 0o600))

	registry, err := auth.LoadRegistryFile(path)
	require.NoError(t, err)

	assert.Equal(t, 2, registry.Len())
	expiry, ok := registry.Lookup("PAID_KEY")
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 11, 15, 0, 0, 0, 0, time.UTC), expiry)

	_, ok = registry.Lookup("OTHER")
	assert.False(t, ok)
}

func TestLoadRegistryFile_MalformedDate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.yaml")
	require.NoError(t, os.WriteFile(path, []byte("PAID_KEY: \"someday\"\n"), 0o600))

	_, err := auth.LoadRegistryFile(path)
	assert.Error(t, err)
}

func TestLoadRegistryFile_MissingFile(t *testing.T) {
	_, err := auth.LoadRegistryFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestDefaultKeys_AllParse(t *testing.T) {
	registry, err := auth.NewRegistry(auth.DefaultKeys)
	require.NoError(t, err)
	assert.Equal(t, len(auth.DefaultKeys), registry.Len())
}
