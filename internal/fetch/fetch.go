// Package fetch downloads source archives over HTTP and unpacks them so
// remote catalog trees can be installed like local ones.
package fetch

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/errors"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/paths"
)

const (
	downloadTimeout = 5 * time.Minute
	defaultAttempts = 3
	defaultDelay    = time.Second
	defaultMaxDelay = 10 * time.Second
)

// IsArchiveURL reports whether s is an HTTP(S) URL pointing at a gzipped
// tarball.
func IsArchiveURL(s string) bool {
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return false
	}
	trimmed := s
	if u, err := url.Parse(s); err == nil && u.Path != "" {
		trimmed = u.Path
	}
	return strings.HasSuffix(trimmed, ".tar.gz") || strings.HasSuffix(trimmed, ".tgz")
}

// Fetcher downloads archives into the cache directory and extracts them.
type Fetcher struct {
	client   *http.Client
	logger   *slog.Logger
	cacheDir string
	attempts uint
	delay    time.Duration
	maxDelay time.Duration
}

// New returns a Fetcher with default retry policy and cache location.
// A nil logger falls back to a stderr warn-level logger.
func New(logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		}))
	}
	return &Fetcher{
		client:   &http.Client{Timeout: downloadTimeout},
		logger:   logger,
		cacheDir: paths.ArchiveCacheDir(),
		attempts: defaultAttempts,
		delay:    defaultDelay,
		maxDelay: defaultMaxDelay,
	}
}

// Fetch downloads the archive at rawURL and extracts it into a fresh
// temporary directory, which the caller is responsible for removing.
// Transient failures are retried with backoff.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	archivePath, err := f.Download(ctx, rawURL)
	if err != nil {
		return "", err
	}

	extractDir, err := os.MkdirTemp("", "ockit-src-*")
	if err != nil {
		return "", errors.Wrap(err, "creating extraction directory")
	}

	if err := Extract(archivePath, extractDir); err != nil {
		os.RemoveAll(extractDir)
		return "", errors.Wrapf(err, "extracting %s", archivePath)
	}
	return extractDir, nil
}

// Download fetches rawURL into the archive cache, replacing any previous
// copy, and returns the cached file path.
func (f *Fetcher) Download(ctx context.Context, rawURL string) (string, error) {
	if err := paths.EnsureDir(f.cacheDir, 0); err != nil {
		return "", errors.Wrap(err, "creating archive cache directory")
	}

	dest := filepath.Join(f.cacheDir, cacheName(rawURL))
	err := retry.Do(
		func() error {
			return f.download(ctx, rawURL, dest)
		},
		retry.RetryIf(retryable),
		retry.Attempts(f.attempts),
		retry.Delay(f.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.MaxDelay(f.maxDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			f.logger.Warn("retrying archive download",
				"url", rawURL,
				"attempt", n+1,
				"error", err)
		}),
	)
	if err != nil {
		return "", errors.Wrapf(err, "downloading %s", rawURL)
	}

	f.logger.Debug("archive downloaded", "url", rawURL, "path", dest)
	return dest, nil
}

func (f *Fetcher) download(ctx context.Context, rawURL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return errors.Wrap(err, "building request")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &httpError{status: resp.StatusCode, url: rawURL}
	}

	tmp := dest + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return errors.Wrap(err, "creating archive file")
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(tmp)
		return errors.Wrap(err, "writing archive file")
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return errors.Wrap(err, "closing archive file")
	}
	return os.Rename(tmp, dest)
}

// httpError carries the response status so the retry policy can tell
// transient server failures from permanent client errors.
type httpError struct {
	status int
	url    string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("fetching %s: HTTP %d", e.url, e.status)
}

func retryable(err error) bool {
	var herr *httpError
	if errors.As(err, &herr) {
		return herr.status == http.StatusTooManyRequests || herr.status >= 500
	}
	return true
}

// cacheName derives a stable cache filename from the URL: a short content
// hash of the full URL plus the original basename.
func cacheName(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	base := path.Base(rawURL)
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		base = path.Base(u.Path)
	}
	return hex.EncodeToString(sum[:])[:12] + "-" + base
}

// Extract unpacks a gzipped tarball into dest. Entry paths must stay
// inside dest; anything else fails the extraction. Only directories and
// regular files are materialized.
func Extract(archivePath, dest string) error {
	file, err := os.Open(archivePath)
	if err != nil {
		return errors.Wrap(err, "opening archive")
	}
	defer file.Close()

	gzr, err := gzip.NewReader(file)
	if err != nil {
		return errors.Wrap(err, "reading gzip stream")
	}
	defer gzr.Close()

	tr := tar.NewReader(gzr)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrap(err, "reading tar entry")
		}

		name := filepath.FromSlash(header.Name)
		if !filepath.IsLocal(name) {
			return errors.Newf("archive entry escapes extraction directory: %s", header.Name)
		}
		target := filepath.Join(dest, name)

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return errors.Wrapf(err, "creating directory %s", target)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return errors.Wrapf(err, "creating parent directory for %s", target)
			}
			mode := os.FileMode(header.Mode) & 0o777
			if mode == 0 {
				mode = 0o644
			}
			out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
			if err != nil {
				return errors.Wrapf(err, "creating file %s", target)
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return errors.Wrapf(err, "writing file %s", target)
			}
			if err := out.Close(); err != nil {
				return errors.Wrapf(err, "closing file %s", target)
			}
		}
	}
	return nil
}

// SourceRoot descends through single-directory wrappers, as produced by
// GitHub release tarballs, until it reaches a directory with actual
// content. A directory whose sole entry is a category root is already the
// source root.
func SourceRoot(dir string) string {
	for {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) != 1 || !entries[0].IsDir() {
			return dir
		}
		switch entries[0].Name() {
		case paths.SourceAgentsDir, paths.SourceSkillsDir, paths.SourceCommandsDir:
			return dir
		}
		dir = filepath.Join(dir, entries[0].Name())
	}
}
