package schedule

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Entry is a single playlist item: an image shown for Duration seconds.
// The terminal entry repeats the last image with no duration; sequential
// players cut the final slide off instantly without it.
type Entry struct {
	Input    string  `yaml:"input"`
	Duration float64 `yaml:"duration,omitempty"`
	Sentinel bool    `yaml:"sentinel,omitempty"`
}

// Playlist is the ordered (image, duration) assignment covering the full
// playback time, terminated by the sentinel entry.
type Playlist struct {
	Entries []Entry `yaml:"entries"`
}

// NewPlaylist pairs images with their durations and appends the sentinel.
func NewPlaylist(images []string, durations []float64) (*Playlist, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("%w (no images)", ErrInvalidInput)
	}
	if len(images) != len(durations) {
		return nil, fmt.Errorf("schedule: %d images vs %d durations", len(images), len(durations))
	}

	entries := make([]Entry, 0, len(images)+1)
	for i, img := range images {
		if durations[i] <= 0 {
			return nil, fmt.Errorf("%w: slide %d has duration %.4f", ErrInvalidInput, i, durations[i])
		}
		entries = append(entries, Entry{Input: img, Duration: durations[i]})
	}
	entries = append(entries, Entry{Input: images[len(images)-1], Sentinel: true})

	return &Playlist{Entries: entries}, nil
}

// SlideCount returns the number of real (non-sentinel) entries.
func (p *Playlist) SlideCount() int {
	n := 0
	for _, e := range p.Entries {
		if !e.Sentinel {
			n++
		}
	}
	return n
}

// TotalDuration sums the non-sentinel durations.
func (p *Playlist) TotalDuration() float64 {
	total := 0.0
	for _, e := range p.Entries {
		if !e.Sentinel {
			total += e.Duration
		}
	}
	return total
}

// ConcatText renders the playlist in the ffmpeg concat demuxer format:
// a `file` line per entry, `duration` lines for non-sentinel entries.
func (p *Playlist) ConcatText() string {
	var b strings.Builder
	for _, e := range p.Entries {
		abs, err := filepath.Abs(e.Input)
		if err != nil {
			abs = e.Input
		}
		fmt.Fprintf(&b, "file '%s'\n", escapeConcatPath(abs))
		if !e.Sentinel {
			fmt.Fprintf(&b, "duration %f\n", e.Duration)
		}
	}
	return b.String()
}

// WriteConcatFile writes the demuxer list to path.
func (p *Playlist) WriteConcatFile(path string) error {
	return os.WriteFile(path, []byte(p.ConcatText()), 0644)
}

func escapeConcatPath(path string) string {
	return strings.ReplaceAll(path, "'", `'\''`)
}
