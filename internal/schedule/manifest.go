package schedule

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Manifest describes one produced slideshow: the settings that were used and
// the per-slide timing. It is written next to the output so a run can be
// inspected or reproduced later.
type Manifest struct {
	Title         string    `yaml:"title,omitempty"`
	Created       time.Time `yaml:"created"`
	Encoder       string    `yaml:"encoder"`
	Resolution    string    `yaml:"resolution"`
	FPS           int       `yaml:"fps"`
	AudioPath     string    `yaml:"audio,omitempty"`
	TotalDuration float64   `yaml:"total_duration"`
	Entries       []Entry   `yaml:"entries"`
}

// WriteManifest writes a manifest to a YAML file.
func WriteManifest(m *Manifest, path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ReadManifest reads a manifest from a YAML file.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	return &m, nil
}
