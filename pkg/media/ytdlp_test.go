package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"reelatlas/pkg/config"
)

// stubScript writes an executable shell script standing in for yt-dlp.
func stubScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "yt-dlp-stub")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestDownloader(t *testing.T, binary string) *YTDLP {
	t.Helper()
	y, err := NewYTDLP(config.DownloaderConfig{
		Dir:         t.TempDir(),
		Binary:      binary,
		MaxDuration: config.Duration(5 * time.Minute),
	})
	if err != nil {
		t.Fatal(err)
	}
	return y
}

func TestInfo(t *testing.T) {
	binary := stubScript(t, `echo '{"id":"abc123","title":"A Reel","description":"desc","duration":42.5,"uploader":"someone","extractor_key":"Instagram"}'`)
	y := newTestDownloader(t, binary)

	info, err := y.Info(context.Background(), "https://example.com/reel")
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}
	if info.ID != "abc123" || info.Title != "A Reel" || info.Platform != "Instagram" {
		t.Errorf("unexpected info: %+v", info)
	}
	if info.Duration != 42.5 {
		t.Errorf("Duration = %v", info.Duration)
	}
}

func TestInfo_CommandFails(t *testing.T) {
	binary := stubScript(t, `echo "ERROR: Unsupported URL" >&2; exit 1`)
	y := newTestDownloader(t, binary)

	_, err := y.Info(context.Background(), "https://example.com/nope")
	if !errors.Is(err, ErrDownload) {
		t.Fatalf("expected ErrDownload, got %v", err)
	}
}

func TestDownload(t *testing.T) {
	// The stub extracts the -o template directory and drops a file there,
	// mimicking a real download.
	binary := stubScript(t, `
while [ $# -gt 1 ]; do
  if [ "$1" = "-o" ]; then out="$2"; fi
  shift
done
dir=$(dirname "$out")
touch "$dir/abc123.mp4"
echo '{"id":"abc123","title":"A Reel","extractor_key":"Instagram"}'`)
	y := newTestDownloader(t, binary)

	dl, err := y.Download(context.Background(), "https://example.com/reel")
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	if dl.RequestID == "" {
		t.Fatal("missing request ID")
	}
	if filepath.Base(dl.FilePath) != "abc123.mp4" {
		t.Errorf("FilePath = %q", dl.FilePath)
	}
	if _, err := os.Stat(dl.FilePath); err != nil {
		t.Errorf("downloaded file missing: %v", err)
	}

	y.Cleanup(dl.RequestID)
	if _, err := os.Stat(filepath.Dir(dl.FilePath)); !os.IsNotExist(err) {
		t.Error("workspace not removed by Cleanup")
	}
}

func TestDownload_NoFileProduced(t *testing.T) {
	binary := stubScript(t, `echo '{"id":"abc123","title":"Text post"}'`)
	y := newTestDownloader(t, binary)

	dl, err := y.Download(context.Background(), "https://example.com/post")
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	if dl.FilePath != "" {
		t.Errorf("FilePath = %q, want empty", dl.FilePath)
	}
	if dl.Info.Platform != "Unknown" {
		t.Errorf("Platform = %q, want Unknown", dl.Info.Platform)
	}
}

func TestFindMediaFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"notes.txt", "clip.MP4"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got := findMediaFile(dir)
	if filepath.Base(got) != "clip.MP4" {
		t.Errorf("findMediaFile = %q, want clip.MP4", got)
	}

	if got := findMediaFile(filepath.Join(dir, "missing")); got != "" {
		t.Errorf("findMediaFile on missing dir = %q", got)
	}
}

func TestCleanupAll(t *testing.T) {
	y := newTestDownloader(t, "yt-dlp")
	for _, id := range []string{"aaa", "bbb"} {
		if err := os.MkdirAll(filepath.Join(y.dir, id), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	y.CleanupAll()

	entries, err := os.ReadDir(y.dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("download dir not empty after CleanupAll: %d entries", len(entries))
	}
}

func TestCleanup_RejectsPathTraversal(t *testing.T) {
	y := newTestDownloader(t, "yt-dlp")
	marker := filepath.Join(y.dir, "keep")
	if err := os.MkdirAll(marker, 0o755); err != nil {
		t.Fatal(err)
	}

	y.Cleanup("../" + filepath.Base(y.dir))

	if _, err := os.Stat(marker); err != nil {
		t.Errorf("traversal cleanup must be a no-op: %v", err)
	}
}
