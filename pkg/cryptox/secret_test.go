package cryptox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateSecret(t *testing.T) {
	s1, err := GenerateSecret(SecretSize256)
	require.NoError(t, err)
	require.Len(t, s1, 43)

	s2, err := GenerateSecret(SecretSize256)
	require.NoError(t, err)
	require.NotEqual(t, s1, s2, "secrets should be unique")
}

func TestGenerateSecret_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		s, err := GenerateSecret(size)
		require.Error(t, err)
		require.Empty(t, s)
	}
}

func TestLoadOrGeneratePepper(t *testing.T) {
	t.Run("empty path disables pepper", func(t *testing.T) {
		pepper, err := LoadOrGeneratePepper("")
		require.NoError(t, err)
		require.Empty(t, pepper)
	})

	t.Run("generates once and reloads", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "pepper")

		first, err := LoadOrGeneratePepper(path)
		require.NoError(t, err)
		require.NotEmpty(t, first)

		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0600), info.Mode().Perm())

		second, err := LoadOrGeneratePepper(path)
		require.NoError(t, err)
		require.Equal(t, first, second)
	})

	t.Run("empty file is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pepper")
		require.NoError(t, os.WriteFile(path, []byte("  \n"), 0600))

		_, err := LoadOrGeneratePepper(path)
		require.Error(t, err)
	})
}
