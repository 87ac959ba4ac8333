package source

import (
	"fmt"
	"image/jpeg"
	"os"
	"path/filepath"

	"github.com/gen2brain/go-fitz"
)

// PDFSource рендерит страницы PDF в JPEG-файлы через go-fitz.
type PDFSource struct {
	doc  *fitz.Document
	path string
}

func NewPDFSource(path string) (*PDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	return &PDFSource{doc: doc, path: path}, nil
}

func (s *PDFSource) SlideCount() int {
	return s.doc.NumPage()
}

// SlideFiles рендерит каждую страницу в workDir с заданным DPI.
func (s *PDFSource) SlideFiles(workDir string, dpi int) ([]string, error) {
	count := s.doc.NumPage()
	paths := make([]string, 0, count)

	for i := 0; i < count; i++ {
		img, err := s.doc.ImageDPI(i, float64(dpi))
		if err != nil {
			return nil, fmt.Errorf("source: страница %d не отрендерилась: %w", i+1, err)
		}

		path := filepath.Join(workDir, fmt.Sprintf("page_%04d.jpg", i+1))
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 95}); err != nil {
			f.Close()
			return nil, fmt.Errorf("source: страница %d не записалась: %w", i+1, err)
		}
		if err := f.Close(); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	return paths, nil
}

func (s *PDFSource) Close() error {
	return s.doc.Close()
}
