package source

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.Set(0, 0, color.Black)

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func TestImageSourceDiscovery(t *testing.T) {
	dir := t.TempDir()

	// Создаем вперемешку, чтобы проверить сортировку
	for _, name := range []string{"c.png", "a.png", "b.png"} {
		writeTestPNG(t, filepath.Join(dir, name))
	}
	// Не-изображения и скрытые файлы игнорируются
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(dir, ".hidden.png"), []byte("x"), 0644)

	src, err := NewImageSource(dir)
	if err != nil {
		t.Fatalf("NewImageSource: %v", err)
	}
	defer src.Close()

	if src.SlideCount() != 3 {
		t.Fatalf("Expected 3 slides, got %d", src.SlideCount())
	}

	paths, err := src.SlideFiles(t.TempDir(), 300)
	if err != nil {
		t.Fatalf("SlideFiles: %v", err)
	}

	want := []string{"a.png", "b.png", "c.png"}
	for i, p := range paths {
		if filepath.Base(p) != want[i] {
			t.Errorf("Slide %d: got %s, want %s", i, filepath.Base(p), want[i])
		}
	}
}

func TestImageSourceEmptyDir(t *testing.T) {
	if _, err := NewImageSource(t.TempDir()); err == nil {
		t.Error("Empty directory must fail")
	}
}

func TestImageSourceSingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "only.png")
	writeTestPNG(t, path)

	src, err := NewImageSource(path)
	if err != nil {
		t.Fatalf("NewImageSource: %v", err)
	}
	defer src.Close()

	if src.SlideCount() != 1 {
		t.Errorf("Expected 1 slide, got %d", src.SlideCount())
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Error("Open(\"\") must fail")
	}
}
