package source

import (
	"fmt"
	"strings"
)

// Source — упорядоченный набор слайдов (папка изображений или PDF).
// SlideFiles материализует слайды в файлы, пригодные для concat-демуксера.
type Source interface {
	SlideCount() int
	SlideFiles(workDir string, dpi int) ([]string, error)
	Close() error
}

// Open выбирает реализацию по пути: PDF или папка/файл изображений.
func Open(path string) (Source, error) {
	if path == "" {
		return nil, fmt.Errorf("source: пустой путь")
	}
	if strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return NewPDFSource(path)
	}
	return NewImageSource(path)
}
