package objectstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDirStore_UploadRoundTrip(t *testing.T) {
	root := t.TempDir()
	s := NewDirStore(root)

	data := []byte("png bytes")
	if err := s.Upload("uploads/avatars/amy.png", data); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(root, "uploads", "avatars", "amy.png"))
	if err != nil {
		t.Fatalf("Reading uploaded file failed: %v", err)
	}
	if string(got) != "png bytes" {
		t.Errorf("Uploaded content = %q", got)
	}
}

func TestDirStore_UploadOverwrites(t *testing.T) {
	s := NewDirStore(t.TempDir())

	if err := s.Upload("a.txt", []byte("old")); err != nil {
		t.Fatalf("First upload failed: %v", err)
	}
	if err := s.Upload("a.txt", []byte("new")); err != nil {
		t.Fatalf("Second upload failed: %v", err)
	}

	url := s.PublicURL("a.txt")
	got, err := os.ReadFile(strings.TrimPrefix(url, "file://"))
	if err != nil {
		t.Fatalf("Reading via PublicURL path failed: %v", err)
	}
	if string(got) != "new" {
		t.Errorf("Content after overwrite = %q", got)
	}
}

func TestDirStore_RejectsEscapingPaths(t *testing.T) {
	s := NewDirStore(t.TempDir())

	for _, path := range []string{"../outside.txt", "/etc/passwd", "a/../../b"} {
		if err := s.Upload(path, []byte("x")); err == nil {
			t.Errorf("Upload(%q) should have been rejected", path)
		}
		if url := s.PublicURL(path); url != "" {
			t.Errorf("PublicURL(%q) = %q, want empty", path, url)
		}
	}
}

func TestDirStore_NoTempFilesLeftBehind(t *testing.T) {
	root := t.TempDir()
	s := NewDirStore(root)

	if err := s.Upload("uploads/cover.jpg", []byte("jpg")); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(root, "uploads"))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".upload-") {
			t.Errorf("Temp file left behind: %s", e.Name())
		}
	}
}
