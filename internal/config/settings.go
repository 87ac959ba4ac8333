package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings — сохраняемые между запусками предпочтения пользователя.
// Отсутствующие в файле поля добиваются значениями по умолчанию.
type Settings struct {
	Resolution    string  `yaml:"resolution"`
	FPS           int     `yaml:"fps"`
	SlideDuration float64 `yaml:"slide_duration"`
	FadeDuration  float64 `yaml:"fade_duration"`
	Encoder       string  `yaml:"encoder"` // "" = автоопределение
	Preset        string  `yaml:"preset"`
	Quality       int     `yaml:"quality"` // 0 = авто по энкодеру
	AudioSync     bool    `yaml:"audio_sync"`
}

// DefaultSettings возвращает значения по умолчанию.
func DefaultSettings() Settings {
	return Settings{
		Resolution:    "1920x1080",
		FPS:           30,
		SlideDuration: 3.0,
		FadeDuration:  0.5,
		Encoder:       "",
		Preset:        "medium",
		Quality:       0,
		AudioSync:     true,
	}
}

// LoadSettings читает settings.yaml; если файла нет или он битый,
// возвращает значения по умолчанию.
func LoadSettings(path string) Settings {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			// Файл есть, но нечитаем: работаем с дефолтами
			return DefaultSettings()
		}
		return s
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return DefaultSettings()
	}

	// Пустые поля после разбора добиваем дефолтами
	def := DefaultSettings()
	if s.Resolution == "" {
		s.Resolution = def.Resolution
	}
	if s.FPS == 0 {
		s.FPS = def.FPS
	}
	if s.SlideDuration == 0 {
		s.SlideDuration = def.SlideDuration
	}
	if s.Preset == "" {
		s.Preset = def.Preset
	}

	return s
}

// SaveSettings записывает настройки в YAML.
func SaveSettings(s Settings, path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
