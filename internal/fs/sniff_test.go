package fs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLooksLikeText(t *testing.T) {
	tests := []struct {
		name   string
		sample []byte
		want   bool
	}{
		{"empty", nil, true},
		{"ascii", []byte("hello\nworld\n"), true},
		{"utf8", []byte("zażółć gęślą jaźń"), true},
		{"utf8 bom", []byte{0xEF, 0xBB, 0xBF, 'h', 'i'}, true},
		{"utf16 le", []byte{0xFF, 0xFE, 0x41, 0x00, 0x0D, 0x00, 0x0A, 0x00}, true},
		{"utf16 be", []byte{0xFE, 0xFF, 0x00, 0x41}, true},
		{"nul bytes", []byte{0x7f, 'E', 'L', 'F', 0x00, 0x01}, false},
		{"mostly control", []byte{0x01, 0x02, 0x03, 0xFF, 0x04}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LooksLikeText(tt.sample); got != tt.want {
				t.Fatalf("LooksLikeText(%v)=%v want %v", tt.sample, got, tt.want)
			}
		})
	}
}

func TestSniff(t *testing.T) {
	dir := t.TempDir()
	text := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(text, []byte("# notes\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	image := filepath.Join(dir, "photo.PNG")
	if err := os.WriteFile(image, []byte("not really a png"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	blob := filepath.Join(dir, "blob")
	if err := os.WriteFile(blob, []byte{0x00, 0x01, 0x02}, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tests := []struct {
		path string
		want Kind
	}{
		{dir, KindDir},
		{text, KindText},
		{image, KindBinary},
		{blob, KindBinary},
	}
	for _, tt := range tests {
		got, err := Sniff(tt.path)
		if err != nil {
			t.Fatalf("Sniff(%s): %v", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("Sniff(%s)=%s want %s", filepath.Base(tt.path), got, tt.want)
		}
	}

	if got, err := Sniff(filepath.Join(dir, "missing")); err == nil || got != KindMissing {
		t.Fatalf("expected KindMissing with error, got %s, %v", got, err)
	}
}
