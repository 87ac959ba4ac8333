package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Config собирает все параметры одного запуска. Передается явно,
// глобального состояния нет.
type Config struct {
	InputPath     string
	AudioPath     string
	OutputVideo   string
	Title         string
	Width         int
	Height        int
	FPS           int
	Workers       int
	DPI           int
	TotalDuration float64
	SlideDuration float64
	FadeDuration  float64
	VideoEncoder  string
	Preset        string
	Quality       int
	AudioSync     bool
	ShowProgress  bool
	ShowStats     bool
	LogPath       string
}

// Validate проверяет параметры до запуска кодирования.
func (c *Config) Validate() error {
	if c.Width < 2 || c.Height < 2 {
		return fmt.Errorf("config: некорректное разрешение %dx%d", c.Width, c.Height)
	}
	if c.Width%2 != 0 || c.Height%2 != 0 {
		return fmt.Errorf("config: разрешение %dx%d должно быть четным (yuv420p)", c.Width, c.Height)
	}
	if c.FPS < 1 || c.FPS > 120 {
		return fmt.Errorf("config: FPS %d вне диапазона 1-120", c.FPS)
	}
	if c.SlideDuration < 0 {
		return fmt.Errorf("config: отрицательная длительность слайда %.2f", c.SlideDuration)
	}
	if c.OutputVideo == "" {
		return fmt.Errorf("config: не задан выходной файл")
	}
	return nil
}

// Resolution возвращает строку вида "1920x1080" для ffmpeg.
func (c *Config) Resolution() string {
	return fmt.Sprintf("%dx%d", c.Width, c.Height)
}

// ParseResolution разбирает строку вида "1920x1080".
func ParseResolution(s string) (int, int, error) {
	parts := strings.SplitN(strings.ToLower(strings.TrimSpace(s)), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("config: разрешение %q не в формате ШИРИНАxВЫСОТА", s)
	}

	width, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("config: ширина %q не число", parts[0])
	}
	height, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("config: высота %q не число", parts[1])
	}
	if width < 2 || height < 2 {
		return 0, 0, fmt.Errorf("config: разрешение %dx%d слишком маленькое", width, height)
	}

	return width, height, nil
}
