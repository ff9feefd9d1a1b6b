package fetch

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/logging"
)

func TestIsArchiveURL(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"https://example.com/src.tar.gz", true},
		{"http://example.com/src.tgz", true},
		{"https://example.com/archive/main.tar.gz?token=abc", true},
		{"https://example.com/repo.git", false},
		{"file:///tmp/src.tar.gz", false},
		{"./local/src.tar.gz", false},
		{"https://example.com/page", false},
	}

	for _, tt := range tests {
		if got := IsArchiveURL(tt.s); got != tt.want {
			t.Errorf("IsArchiveURL(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestExtract(t *testing.T) {
	archive := writeArchive(t, map[string]string{
		"repo-main/":                     "",
		"repo-main/agents/architect.md":  "---\ndescription: Architect\n---\n",
		"repo-main/skills/data/SKILL.md": "---\ndescription: Data\n---\n",
	})

	dest := t.TempDir()
	if err := Extract(archive, dest); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	agent := filepath.Join(dest, "repo-main", "agents", "architect.md")
	data, err := os.ReadFile(agent)
	if err != nil {
		t.Fatalf("reading extracted file: %v", err)
	}
	if !strings.Contains(string(data), "Architect") {
		t.Errorf("extracted content = %q, want description", data)
	}

	skill := filepath.Join(dest, "repo-main", "skills", "data", "SKILL.md")
	if _, err := os.Stat(skill); err != nil {
		t.Errorf("extracted skill missing: %v", err)
	}
}

func TestExtract_RejectsEscapingEntries(t *testing.T) {
	tests := []struct {
		name  string
		entry string
	}{
		{"parent traversal", "../evil.md"},
		{"absolute path", "/etc/evil.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			archive := writeArchive(t, map[string]string{tt.entry: "payload"})
			if err := Extract(archive, t.TempDir()); err == nil {
				t.Fatalf("Extract() accepted entry %q", tt.entry)
			}
		})
	}
}

func TestSourceRoot(t *testing.T) {
	t.Run("collapses wrapper directories", func(t *testing.T) {
		root := t.TempDir()
		inner := filepath.Join(root, "repo-main")
		for _, dir := range []string{"agents", "skills"} {
			if err := os.MkdirAll(filepath.Join(inner, dir), 0o755); err != nil {
				t.Fatal(err)
			}
		}

		if got := SourceRoot(root); got != inner {
			t.Errorf("SourceRoot() = %q, want %q", got, inner)
		}
	})

	t.Run("stops at a lone category root", func(t *testing.T) {
		root := t.TempDir()
		wrapper := filepath.Join(root, "repo-main")
		if err := os.MkdirAll(filepath.Join(wrapper, "skills"), 0o755); err != nil {
			t.Fatal(err)
		}

		if got := SourceRoot(root); got != wrapper {
			t.Errorf("SourceRoot() = %q, want %q", got, wrapper)
		}
	})

	t.Run("returns a flat directory unchanged", func(t *testing.T) {
		root := t.TempDir()
		if err := os.WriteFile(filepath.Join(root, "README.md"), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}

		if got := SourceRoot(root); got != root {
			t.Errorf("SourceRoot() = %q, want %q", got, root)
		}
	})
}

func TestFetcher_Fetch(t *testing.T) {
	archive := archiveBytes(t, map[string]string{
		"repo-main/agents/architect.md": "---\ndescription: Architect\n---\n",
		"repo-main/commands/deploy.md":  "---\ndescription: Deploy\n---\n",
	})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(archive)
	}))
	defer srv.Close()

	f := newTestFetcher(t)
	dir, err := f.Fetch(context.Background(), srv.URL+"/repo.tar.gz")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	defer os.RemoveAll(dir)

	root := SourceRoot(dir)
	if _, err := os.Stat(filepath.Join(root, "agents", "architect.md")); err != nil {
		t.Errorf("fetched tree missing agent: %v", err)
	}

	cached, err := os.ReadDir(f.cacheDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(cached) != 1 || !strings.HasSuffix(cached[0].Name(), "-repo.tar.gz") {
		t.Errorf("cache contents = %v, want one repo.tar.gz entry", cached)
	}
}

func TestFetcher_RetriesServerErrors(t *testing.T) {
	archive := archiveBytes(t, map[string]string{
		"agents/architect.md": "body",
	})
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write(archive)
	}))
	defer srv.Close()

	f := newTestFetcher(t)
	dir, err := f.Fetch(context.Background(), srv.URL+"/repo.tar.gz")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	defer os.RemoveAll(dir)

	if hits != 3 {
		t.Errorf("server hits = %d, want 3", hits)
	}
}

func TestFetcher_DoesNotRetryClientErrors(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := newTestFetcher(t)
	_, err := f.Fetch(context.Background(), srv.URL+"/missing.tar.gz")
	if err == nil {
		t.Fatal("Fetch() succeeded for missing archive")
	}
	if !strings.Contains(err.Error(), "HTTP 404") {
		t.Errorf("error = %v, want HTTP 404", err)
	}
	if hits != 1 {
		t.Errorf("server hits = %d, want 1", hits)
	}
}

func newTestFetcher(t *testing.T) *Fetcher {
	t.Helper()
	f := New(logging.ForTest(t))
	f.cacheDir = t.TempDir()
	f.delay = time.Millisecond
	f.maxDelay = 5 * time.Millisecond
	return f
}

func writeArchive(t *testing.T, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "src.tar.gz")
	if err := os.WriteFile(path, archiveBytes(t, entries), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func archiveBytes(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gzw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gzw)

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if strings.HasSuffix(name, "/") {
			hdr := &tar.Header{Name: name, Typeflag: tar.TypeDir, Mode: 0o755}
			if err := tw.WriteHeader(hdr); err != nil {
				t.Fatal(err)
			}
			continue
		}
		content := entries[name]
		hdr := &tar.Header{
			Name:     name,
			Typeflag: tar.TypeReg,
			Mode:     0o644,
			Size:     int64(len(content)),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}

	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gzw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
