package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docsRoot(args ...string) *cobra.Command {
	root := &cobra.Command{Use: "ffind", Short: "Instant file and content search"}
	root.AddCommand(statusCmd, pingCmd, docsCmd)
	root.SetArgs(append([]string{"gen-docs"}, args...))
	return root
}

func TestGenDocs(t *testing.T) {
	t.Run("man", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, docsRoot("--dir", dir, "--format", "man").Execute())

		page, err := os.ReadFile(filepath.Join(dir, "ffind.1"))
		require.NoError(t, err)
		assert.Contains(t, string(page), "FFIND")
		assert.FileExists(t, filepath.Join(dir, "ffind-status.1"))
		assert.NoFileExists(t, filepath.Join(dir, "ffind-gen-docs.1"), "hidden commands are not documented")
	})

	t.Run("markdown", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, docsRoot("--dir", dir, "--format", "markdown").Execute())
		assert.FileExists(t, filepath.Join(dir, "ffind.md"))
		assert.FileExists(t, filepath.Join(dir, "ffind_ping.md"))
	})

	t.Run("unknown format", func(t *testing.T) {
		err := docsRoot("--dir", t.TempDir(), "--format", "html").Execute()
		assert.ErrorContains(t, err, "unknown format")
	})
}
