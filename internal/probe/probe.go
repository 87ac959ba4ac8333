package probe

// Пакет probe извлекает метаданные медиафайлов через ffprobe.

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
)

// Stream — одна дорожка файла (видео, аудио, субтитры).
type Stream struct {
	Index      int    `json:"index"`
	CodecName  string `json:"codec_name"`
	CodecType  string `json:"codec_type"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	SampleRate string `json:"sample_rate,omitempty"`
	Channels   int    `json:"channels,omitempty"`
	Duration   string `json:"duration,omitempty"`
}

// Format — контейнер файла.
type Format struct {
	Filename   string `json:"filename"`
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	BitRate    string `json:"bit_rate"`
}

// Result — разобранный вывод ffprobe.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Duration возвращает длительность файла в секундах.
func (r *Result) Duration() (float64, error) {
	if r.Format.Duration == "" {
		return 0, fmt.Errorf("probe: в метаданных нет длительности")
	}

	d, err := strconv.ParseFloat(r.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("probe: длительность %q не разбирается: %w", r.Format.Duration, err)
	}
	return d, nil
}

// AudioStreams возвращает аудио-дорожки файла.
func (r *Result) AudioStreams() []Stream {
	var out []Stream
	for _, s := range r.Streams {
		if s.CodecType == "audio" {
			out = append(out, s)
		}
	}
	return out
}

// Parse разбирает JSON-вывод ffprobe.
func Parse(data []byte) (*Result, error) {
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("probe: JSON не разбирается: %w", err)
	}
	return &r, nil
}

// File запускает ffprobe и разбирает его вывод.
func File(ctx context.Context, path string) (*Result, error) {
	if path == "" {
		return nil, fmt.Errorf("probe: пустой путь")
	}

	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		"-show_format",
		path,
	}

	out, err := exec.CommandContext(ctx, "ffprobe", args...).Output()
	if err != nil {
		return nil, fmt.Errorf("probe: ffprobe не отработал: %w", err)
	}

	return Parse(out)
}

// AudioDuration возвращает длительность аудио-файла в секундах.
func AudioDuration(ctx context.Context, path string) (float64, error) {
	r, err := File(ctx, path)
	if err != nil {
		return 0, err
	}
	return r.Duration()
}
