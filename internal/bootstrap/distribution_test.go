package bootstrap

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type archiveEntry struct {
	name     string
	typeflag byte
	linkname string
	body     string
}

func buildArchive(t *testing.T, entries []archiveEntry) io.Reader {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for _, e := range entries {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     e.name,
			Typeflag: e.typeflag,
			Linkname: e.linkname,
			Mode:     0o755,
			Size:     int64(len(e.body)),
		}))
		if e.typeflag == tar.TypeReg {
			_, err := tw.Write([]byte(e.body))
			require.NoError(t, err)
		}
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return &buf
}

func TestExtractTarGz_StripsTopDir(t *testing.T) {
	t.Parallel()

	dest := t.TempDir()
	r := buildArchive(t, []archiveEntry{
		{name: "kafka_2.13-3.6.0/", typeflag: tar.TypeDir},
		{name: "kafka_2.13-3.6.0/bin/", typeflag: tar.TypeDir},
		{name: "kafka_2.13-3.6.0/bin/kafka-server-start.sh", typeflag: tar.TypeReg, body: "#!/bin/sh\n"},
		{name: "kafka_2.13-3.6.0/bin/start", typeflag: tar.TypeSymlink, linkname: "kafka-server-start.sh"},
	})
	require.NoError(t, extractTarGz(r, dest))

	data, err := os.ReadFile(filepath.Join(dest, "bin", "kafka-server-start.sh"))
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\n", string(data))

	link, err := os.Readlink(filepath.Join(dest, "bin", "start"))
	require.NoError(t, err)
	assert.Equal(t, "kafka-server-start.sh", link)
}

func TestExtractTarGz_RejectsEscapingEntry(t *testing.T) {
	t.Parallel()

	dest := t.TempDir()
	r := buildArchive(t, []archiveEntry{
		{name: "kafka_2.13-3.6.0/../../evil", typeflag: tar.TypeReg, body: "x"},
	})
	err := extractTarGz(r, dest)
	require.Error(t, err)
	assert.ErrorContains(t, err, "escapes destination")
}

func TestExtractTarGz_RejectsEscapingSymlink(t *testing.T) {
	t.Parallel()

	for _, linkname := range []string{"/etc/passwd", "../../outside"} {
		dest := t.TempDir()
		r := buildArchive(t, []archiveEntry{
			{name: "kafka_2.13-3.6.0/bin/", typeflag: tar.TypeDir},
			{name: "kafka_2.13-3.6.0/bin/link", typeflag: tar.TypeSymlink, linkname: linkname},
		})
		err := extractTarGz(r, dest)
		require.Error(t, err, "linkname %q", linkname)
		assert.ErrorContains(t, err, "escapes destination")

		_, err = os.Lstat(filepath.Join(dest, "bin", "link"))
		assert.True(t, os.IsNotExist(err), "link must not be created for %q", linkname)
	}
}

func TestExtractTarGz_AllowsRelativeSymlinkWithinDest(t *testing.T) {
	t.Parallel()

	dest := t.TempDir()
	r := buildArchive(t, []archiveEntry{
		{name: "kafka_2.13-3.6.0/libs/", typeflag: tar.TypeDir},
		{name: "kafka_2.13-3.6.0/libs/tool.jar", typeflag: tar.TypeReg, body: "jar"},
		{name: "kafka_2.13-3.6.0/bin/tool.jar", typeflag: tar.TypeSymlink, linkname: "../libs/tool.jar"},
	})
	require.NoError(t, extractTarGz(r, dest))

	link, err := os.Readlink(filepath.Join(dest, "bin", "tool.jar"))
	require.NoError(t, err)
	assert.Equal(t, "../libs/tool.jar", link)
}

func TestFetchDistribution_AlreadyInstalled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "bin"), 0o755))

	// An existing bin/ short-circuits before any download happens.
	require.NoError(t, FetchDistribution(context.Background(), "3.6.0", dir))
}
