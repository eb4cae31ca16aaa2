package dataset

import (
	"archive/zip"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pierrec/lz4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "x,y\n1,2\n2,4\n"

func readAll(t *testing.T, path string) string {
	t.Helper()
	rc, err := Open(path)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(data)
}

func TestOpenPlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))
	assert.Equal(t, sample, readAll(t, path))
}

func TestOpenGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gw := gzip.NewWriter(f)
	_, err = gw.Write([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, f.Close())

	assert.Equal(t, sample, readAll(t, path))
	_, err = os.Stat(path)
	assert.NoError(t, err, "archive must be kept")
}

func TestOpenLZ4(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv.lz4")
	f, err := os.Create(path)
	require.NoError(t, err)
	lw := lz4.NewWriter(f)
	_, err = lw.Write([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, lw.Close())
	require.NoError(t, f.Close())

	assert.Equal(t, sample, readAll(t, path))
}

func TestOpenZipLargestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	small, err := zw.Create("readme.txt")
	require.NoError(t, err)
	_, err = small.Write([]byte("hi"))
	require.NoError(t, err)
	big, err := zw.Create("nested/data.csv")
	require.NoError(t, err)
	_, err = big.Write([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	assert.Equal(t, sample, readAll(t, path))
}

func TestOpenEmptyZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, zip.NewWriter(f).Close())
	require.NoError(t, f.Close())

	_, err = Open(path)
	assert.Error(t, err)
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "data.csv", BaseName("/tmp/data.csv.gz"))
	assert.Equal(t, "data.csv", BaseName("data.csv.lz4"))
	assert.Equal(t, "data.csv", BaseName("data.csv"))
	assert.Equal(t, "data", BaseName("data.zip"))
}
