package demo

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"os"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"
)

// Палитра демо-слайдов
var palette = []color.RGBA{
	{73, 109, 137, 255},  // steel blue
	{189, 79, 108, 255},  // raspberry
	{96, 153, 102, 255},  // forest green
	{234, 185, 95, 255},  // golden yellow
	{165, 105, 189, 255}, // purple
}

const (
	borderMargin = 100
	borderWidth  = 10
	qrSize       = 220
)

// GenerateSlides создает count пробных слайдов width x height в dir.
// Каждый слайд: цветной фон, белая рамка и QR-код с номером слайда,
// чтобы порядок был виден в готовом видео.
func GenerateSlides(dir string, count, width, height int) ([]string, error) {
	if count < 1 {
		return nil, fmt.Errorf("demo: нужен хотя бы один слайд")
	}
	if width < qrSize*2 || height < qrSize*2 {
		return nil, fmt.Errorf("demo: холст %dx%d слишком мал", width, height)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	paths := make([]string, 0, count)
	for i := 0; i < count; i++ {
		img := renderSlide(i, width, height)

		path := filepath.Join(dir, fmt.Sprintf("test_slide_%02d.jpg", i+1))
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 95}); err != nil {
			f.Close()
			return nil, fmt.Errorf("demo: слайд %d не записался: %w", i+1, err)
		}
		if err := f.Close(); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	return paths, nil
}

func renderSlide(index, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	bg := palette[index%len(palette)]
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	drawFrame(img, borderMargin, borderWidth)

	// QR-код с номером слайда в правом нижнем углу рамки
	if qr, err := qrcode.New(fmt.Sprintf("slide %d", index+1), qrcode.Medium); err == nil {
		qrImg := qr.Image(qrSize)
		offset := image.Point{
			X: width - borderMargin - borderWidth - qrSize - 20,
			Y: height - borderMargin - borderWidth - qrSize - 20,
		}
		draw.Draw(img, image.Rectangle{Min: offset, Max: offset.Add(image.Point{qrSize, qrSize})},
			qrImg, qrImg.Bounds().Min, draw.Over)
	}

	return img
}

// drawFrame рисует белую рамку с отступом margin от краев.
func drawFrame(img *image.RGBA, margin, width int) {
	b := img.Bounds()
	white := image.NewUniform(color.White)

	outer := image.Rect(b.Min.X+margin, b.Min.Y+margin, b.Max.X-margin, b.Max.Y-margin)

	// Четыре полосы по периметру
	draw.Draw(img, image.Rect(outer.Min.X, outer.Min.Y, outer.Max.X, outer.Min.Y+width), white, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(outer.Min.X, outer.Max.Y-width, outer.Max.X, outer.Max.Y), white, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(outer.Min.X, outer.Min.Y, outer.Min.X+width, outer.Max.Y), white, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(outer.Max.X-width, outer.Min.Y, outer.Max.X, outer.Max.Y), white, image.Point{}, draw.Src)
}
