package engine

import (
	"context"
	"math"
	"testing"

	"github.com/chama-x/slidesonic/internal/config"
)

func TestBuildScheduleWithoutAudio(t *testing.T) {
	cfg := &config.Config{SlideDuration: 3.0, FPS: 30}
	p := &SlideshowProject{Config: cfg}

	durations, total, err := p.buildSchedule(context.Background(), 10)
	if err != nil {
		t.Fatalf("buildSchedule: %v", err)
	}

	if math.Abs(total-30.0) > 1e-9 {
		t.Errorf("Total = %f, want 30.0 (10 slides x 3.0s fallback)", total)
	}

	sum := 0.0
	for _, d := range durations {
		sum += d
	}
	if math.Abs(sum-total) > 1e-6 {
		t.Errorf("Sum %f drifts from total %f", sum, total)
	}
}

func TestBuildScheduleDefaultSlideDuration(t *testing.T) {
	// Нулевая длительность слайда заменяется дефолтной
	cfg := &config.Config{SlideDuration: 0, FPS: 30}
	p := &SlideshowProject{Config: cfg}

	_, total, err := p.buildSchedule(context.Background(), 4)
	if err != nil {
		t.Fatalf("buildSchedule: %v", err)
	}
	if math.Abs(total-12.0) > 1e-9 {
		t.Errorf("Total = %f, want 12.0 (4 slides x 3.0s default)", total)
	}
}

func TestBuildScheduleExplicitDuration(t *testing.T) {
	// Явная длительность перебивает и аудио, и длительность слайда
	cfg := &config.Config{SlideDuration: 3.0, TotalDuration: 45.0, FPS: 30, AudioPath: "song/x.mp3"}
	p := &SlideshowProject{Config: cfg}

	durations, total, err := p.buildSchedule(context.Background(), 9)
	if err != nil {
		t.Fatalf("buildSchedule: %v", err)
	}
	if math.Abs(total-45.0) > 1e-9 {
		t.Errorf("Total = %f, want 45.0", total)
	}

	sum := 0.0
	for _, d := range durations {
		sum += d
	}
	if math.Abs(sum-45.0) > 1e-9 {
		t.Errorf("Sum %f must equal the explicit duration", sum)
	}
}

func TestManifestPathFor(t *testing.T) {
	cases := []struct{ in, want string }{
		{"output/video.mp4", "output/video.yaml"},
		{"video.mov", "video.yaml"},
		{"noext", "noext.yaml"},
	}
	for _, c := range cases {
		if got := manifestPathFor(c.in); got != c.want {
			t.Errorf("manifestPathFor(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
