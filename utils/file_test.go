package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFormatFileSize(t *testing.T) {
	cases := []struct {
		bytes int64
		want  string
	}{
		{0, "0 bytes"},
		{512, "512 bytes"},
		{1023, "1023 bytes"},
		{1024, "1.0 KB"},
		{2048, "2.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{5 * 1048576, "5.0 MB"},
	}
	for _, c := range cases {
		if got := FormatFileSize(c.bytes); got != c.want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", c.bytes, got, c.want)
		}
	}
}

func TestGetMimeType(t *testing.T) {
	cases := map[string]string{
		"report.CSV":   "text/csv",
		"img.png":      "image/png",
		"notes.md":     "text/markdown",
		"mystery.vibe": "application/octet-stream",
	}
	for path, want := range cases {
		if got := GetMimeType(path); got != want {
			t.Errorf("GetMimeType(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestReadFileAsDataURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.txt")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	url, err := ReadFileAsDataURL(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if url != "data:text/plain;base64,aGVsbG8=" {
		t.Errorf("unexpected data URL %q", url)
	}

	if _, err := ReadFileAsDataURL(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}
