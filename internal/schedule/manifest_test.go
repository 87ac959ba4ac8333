package schedule

import (
	"math"
	"path/filepath"
	"testing"
	"time"
)

func TestManifestRoundTrip(t *testing.T) {
	pl, err := NewPlaylist([]string{"a.jpg", "b.jpg"}, []float64{2.0, 3.0})
	if err != nil {
		t.Fatalf("NewPlaylist: %v", err)
	}

	path := filepath.Join(t.TempDir(), "video.yaml")
	want := &Manifest{
		Title:         "Отпуск 2026",
		Created:       time.Now().Round(time.Second),
		Encoder:       "libx264",
		Resolution:    "1920x1080",
		FPS:           30,
		TotalDuration: pl.TotalDuration(),
		Entries:       pl.Entries,
	}

	if err := WriteManifest(want, path); err != nil {
		t.Fatalf("WriteManifest: %v", err)
	}

	got, err := ReadManifest(path)
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}

	if got.Title != want.Title || got.Encoder != want.Encoder || got.FPS != want.FPS {
		t.Errorf("Header mismatch: %+v", got)
	}
	if len(got.Entries) != 3 {
		t.Fatalf("Expected 3 entries (2 slides + sentinel), got %d", len(got.Entries))
	}
	if !got.Entries[2].Sentinel {
		t.Error("Sentinel flag lost in round trip")
	}
	if math.Abs(got.TotalDuration-5.0) > 1e-9 {
		t.Errorf("TotalDuration = %f, want 5.0", got.TotalDuration)
	}
}
