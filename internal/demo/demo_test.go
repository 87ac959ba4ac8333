package demo

import (
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"
)

func TestGenerateSlides(t *testing.T) {
	dir := t.TempDir()

	paths, err := GenerateSlides(dir, 7, 960, 540)
	if err != nil {
		t.Fatalf("GenerateSlides: %v", err)
	}

	if len(paths) != 7 {
		t.Fatalf("Expected 7 slides, got %d", len(paths))
	}

	// Имена нумеруются так, чтобы лексикографический порядок совпадал с показом
	if filepath.Base(paths[0]) != "test_slide_01.jpg" {
		t.Errorf("Unexpected first name: %s", filepath.Base(paths[0]))
	}

	for i, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			t.Fatalf("Slide %d missing: %v", i, err)
		}
		cfg, err := jpeg.DecodeConfig(f)
		f.Close()
		if err != nil {
			t.Fatalf("Slide %d not a JPEG: %v", i, err)
		}
		if cfg.Width != 960 || cfg.Height != 540 {
			t.Errorf("Slide %d: %dx%d, want 960x540", i, cfg.Width, cfg.Height)
		}
	}
}

func TestGenerateSlidesRejectsBadInput(t *testing.T) {
	if _, err := GenerateSlides(t.TempDir(), 0, 960, 540); err == nil {
		t.Error("Zero count must fail")
	}
	if _, err := GenerateSlides(t.TempDir(), 1, 100, 100); err == nil {
		t.Error("Tiny canvas must fail")
	}
}
