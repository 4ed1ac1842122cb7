package bootstrap

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kraftner/kraftner/internal/kafka"
	"github.com/kraftner/kraftner/internal/util/retry"
)

var downloadClient = &http.Client{Timeout: 5 * time.Minute}

// FetchDistribution downloads the Kafka release tarball for version and
// unpacks it into installDir, stripping the archive's top-level
// directory so bin/ and libs/ land directly under installDir. The
// download is retried with backoff; a non-2xx response other than 404
// counts as transient. An installDir that already contains bin/ is left
// alone.
func FetchDistribution(ctx context.Context, version, installDir string) error {
	if _, err := os.Stat(filepath.Join(installDir, "bin")); err == nil {
		return nil
	}

	url := kafka.DownloadURL(version)
	return retry.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return retry.Permanent(err)
		}
		resp, err := downloadClient.Do(req)
		if err != nil {
			return fmt.Errorf("downloading %s: %w", url, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return retry.Permanent(fmt.Errorf("distribution not found at %s", url))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("downloading %s: unexpected status %s", url, resp.Status)
		}
		return extractTarGz(resp.Body, installDir)
	}, retry.Attempts(5), retry.InitialDelay(3*time.Second), retry.MaxDelay(time.Minute))
}

func extractTarGz(r io.Reader, dest string) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("opening gzip stream: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading archive: %w", err)
		}

		rel := stripTopDir(hdr.Name)
		if rel == "" {
			continue
		}
		target := filepath.Join(dest, rel)
		if !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry %q escapes destination", hdr.Name)
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			f, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, os.FileMode(hdr.Mode))
			if err != nil {
				return err
			}
			if _, err := io.Copy(f, tr); err != nil {
				f.Close()
				return fmt.Errorf("extracting %s: %w", hdr.Name, err)
			}
			if err := f.Close(); err != nil {
				return err
			}
		case tar.TypeSymlink:
			// The link target needs the same containment check as the
			// entry path: an absolute or ../-laden target would point
			// the installed tree outside installDir.
			if filepath.IsAbs(hdr.Linkname) {
				return fmt.Errorf("symlink %q escapes destination", hdr.Name)
			}
			resolved := filepath.Join(filepath.Dir(target), hdr.Linkname)
			if !strings.HasPrefix(resolved, filepath.Clean(dest)+string(os.PathSeparator)) {
				return fmt.Errorf("symlink %q escapes destination", hdr.Name)
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			os.Remove(target)
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return err
			}
		}
	}
}

// stripTopDir drops the leading "kafka_2.13-X.Y.Z/" component.
func stripTopDir(name string) string {
	_, rest, ok := strings.Cut(name, "/")
	if !ok {
		return ""
	}
	return rest
}
