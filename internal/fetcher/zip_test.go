package fetcher

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestZIP(t *testing.T, files map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}

func TestExtractZIPFile(t *testing.T) {
	zipPath := createTestZIP(t, map[string]string{
		"sub.txt": "submission data",
		"num.txt": "numeric data",
		"pre.txt": "presentation data",
	})
	destDir := t.TempDir()

	path, err := ExtractZIPFile(zipPath, "sub.txt", destDir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(destDir, "sub.txt"), path)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "submission data", string(content))
}

func TestExtractZIPFile_NotFound(t *testing.T) {
	zipPath := createTestZIP(t, map[string]string{"sub.txt": "x"})

	_, err := ExtractZIPFile(zipPath, "missing.txt", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestExtractZIPFile_BadArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.zip")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0644))

	_, err := ExtractZIPFile(path, "sub.txt", t.TempDir())
	assert.Error(t, err)
}

func TestExtractZIPFile_ZipSlipPrevention(t *testing.T) {
	zipPath := createTestZIP(t, map[string]string{"../evil.txt": "payload"})
	destDir := t.TempDir()

	_, err := ExtractZIPFile(zipPath, "../evil.txt", destDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zip slip")
	assert.NoFileExists(t, filepath.Join(filepath.Dir(destDir), "evil.txt"))
}

func TestExtractZIPFile_Subdirectory(t *testing.T) {
	zipPath := createTestZIP(t, map[string]string{"nested/dir/file.txt": "deep"})
	destDir := t.TempDir()

	path, err := ExtractZIPFile(zipPath, "nested/dir/file.txt", destDir)
	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "deep", string(content))
}
