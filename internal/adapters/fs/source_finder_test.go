package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("pragma solidity ^0.5.0;"), 0644))
	}
}

func TestSourceFinder(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	writeFiles(t, root,
		"contracts/Token.sol",
		"contracts/Migrations.sol",
		"contracts/README.md",
		"contracts/lib/Math.sol",
		"contracts/.cache/Old.sol",
		"Single.txt",
	)
	contracts := filepath.Join(root, "contracts")
	single := filepath.Join(root, "Single.txt")
	missing := filepath.Join(root, "Missing.sol")

	t.Run("flat directory", func(t *testing.T) {
		set, err := NewSourceFinderAdapter().Find(ctx, []string{contracts}, false)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(contracts, "Migrations.sol"),
			filepath.Join(contracts, "Token.sol"),
		}, set.Files)
		assert.Empty(t, set.Missing)
	})

	t.Run("recursive directory", func(t *testing.T) {
		set, err := NewSourceFinderAdapter().Find(ctx, []string{contracts}, true)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(contracts, "Migrations.sol"),
			filepath.Join(contracts, "Token.sol"),
			filepath.Join(contracts, "lib", "Math.sol"),
		}, set.Files)
	})

	t.Run("files are kept as given and missing inputs reported", func(t *testing.T) {
		token := filepath.Join(contracts, "Token.sol")
		set, err := NewSourceFinderAdapter().Find(ctx, []string{single, missing, token, contracts}, false)
		require.NoError(t, err)
		assert.Equal(t, []string{single, token, filepath.Join(contracts, "Migrations.sol")}, set.Files)
		assert.Equal(t, []string{missing}, set.Missing)
	})
}
