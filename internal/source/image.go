package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chama-x/slidesonic/internal/system"
)

// ImageSource — слайды из папки с изображениями (или одиночного файла).
// Порядок лексикографический, как в исходной папке.
type ImageSource struct {
	paths []string
}

func NewImageSource(path string) (*ImageSource, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var paths []string
	if fi.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			if system.IsImageFile(entry.Name()) {
				paths = append(paths, filepath.Join(path, entry.Name()))
			}
		}
		sort.Strings(paths)
	} else {
		if !system.IsImageFile(path) {
			return nil, fmt.Errorf("source: %s не похож на изображение", path)
		}
		paths = []string{path}
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("source: в %s нет изображений", path)
	}

	return &ImageSource{paths: paths}, nil
}

func (s *ImageSource) SlideCount() int {
	return len(s.paths)
}

// SlideFiles возвращает исходные файлы как есть: изображениям
// материализация не нужна.
func (s *ImageSource) SlideFiles(workDir string, dpi int) ([]string, error) {
	return s.paths, nil
}

func (s *ImageSource) Close() error {
	return nil
}
