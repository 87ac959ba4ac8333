package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseResolution(t *testing.T) {
	cases := []struct {
		in            string
		width, height int
		wantErr       bool
	}{
		{"1920x1080", 1920, 1080, false},
		{"1280X720", 1280, 720, false},
		{" 720x1280 ", 720, 1280, false},
		{"1920", 0, 0, true},
		{"ax1080", 0, 0, true},
		{"1920xb", 0, 0, true},
		{"0x0", 0, 0, true},
	}

	for _, c := range cases {
		w, h, err := ParseResolution(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseResolution(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseResolution(%q): %v", c.in, err)
			continue
		}
		if w != c.width || h != c.height {
			t.Errorf("ParseResolution(%q): got %dx%d, want %dx%d", c.in, w, h, c.width, c.height)
		}
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		Width:         1920,
		Height:        1080,
		FPS:           30,
		SlideDuration: 3.0,
		OutputVideo:   "out.mp4",
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Valid config rejected: %v", err)
	}

	odd := valid
	odd.Width = 1921
	if err := odd.Validate(); err == nil {
		t.Error("Odd width must be rejected")
	}

	badFPS := valid
	badFPS.FPS = 0
	if err := badFPS.Validate(); err == nil {
		t.Error("Zero FPS must be rejected")
	}

	noOut := valid
	noOut.OutputVideo = ""
	if err := noOut.Validate(); err == nil {
		t.Error("Missing output must be rejected")
	}
}

func TestLoadSettingsMissingFile(t *testing.T) {
	s := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
	def := DefaultSettings()
	if s != def {
		t.Errorf("Missing file should yield defaults, got %+v", s)
	}
}

func TestLoadSettingsPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	os.WriteFile(path, []byte("resolution: 1280x720\nquality: 23\n"), 0644)

	s := LoadSettings(path)
	if s.Resolution != "1280x720" {
		t.Errorf("Expected resolution from file, got %q", s.Resolution)
	}
	if s.Quality != 23 {
		t.Errorf("Expected quality 23, got %d", s.Quality)
	}
	// Missing fields are backfilled with defaults
	if s.FPS != 30 {
		t.Errorf("Expected default FPS 30, got %d", s.FPS)
	}
	if s.SlideDuration != 3.0 {
		t.Errorf("Expected default slide duration 3.0, got %f", s.SlideDuration)
	}
}

func TestSaveAndLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	want := DefaultSettings()
	want.Encoder = "h264_nvenc"
	want.FPS = 60

	if err := SaveSettings(want, path); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	got := LoadSettings(path)
	if got.Encoder != "h264_nvenc" || got.FPS != 60 {
		t.Errorf("Round trip mismatch: %+v", got)
	}
}
