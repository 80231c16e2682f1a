package archive

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"settings-diff/internal/ziputil"
)

// zipBytes builds an in-memory archive from name/content pairs.
func zipBytes(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		require.NoError(t, ziputil.WriteText(zw, name, []byte(content)))
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// writeZip writes an archive into a temp directory and returns its path.
func writeZip(t *testing.T, entries map[string]string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "test.zip")
	require.NoError(t, os.WriteFile(p, zipBytes(t, entries), 0o644))
	return p
}

func writeBytes(t *testing.T, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "blob.zip")
	require.NoError(t, os.WriteFile(p, data, 0o644))
	return p
}
