package prepare

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"runtime"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/chama-x/slidesonic/internal/system"
)

// Options задают целевой холст подготовки слайдов.
type Options struct {
	Width   int
	Height  int
	Workers int
	Quality int // JPEG quality, 0 = 95
}

// Slides масштабирует изображения под холст Width x Height с сохранением
// пропорций (letterbox по черному фону) и пишет результат в outDir.
// Возвращает пути в исходном порядке.
func Slides(ctx context.Context, paths []string, outDir string, opts Options) ([]string, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("prepare: нет слайдов")
	}
	if opts.Width < 2 || opts.Height < 2 {
		return nil, fmt.Errorf("prepare: некорректный холст %dx%d", opts.Width, opts.Height)
	}

	workers := opts.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	quality := opts.Quality
	if quality == 0 {
		quality = 95
	}

	out := make([]string, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			dst := filepath.Join(outDir, fmt.Sprintf("slide_%04d.jpg", i+1))
			if err := prepareOne(p, dst, opts.Width, opts.Height, quality); err != nil {
				return fmt.Errorf("prepare: слайд %s: %w", filepath.Base(p), err)
			}
			out[i] = dst
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

func prepareOne(srcPath, dstPath string, width, height, quality int) error {
	f, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	img, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("декодирование: %w", err)
	}

	canvas := system.GetImage(image.Rect(0, 0, width, height))
	defer system.PutImage(canvas)

	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	xdraw.CatmullRom.Scale(canvas, FitRect(img.Bounds(), width, height), img, img.Bounds(), xdraw.Src, nil)

	out, err := os.Create(dstPath)
	if err != nil {
		return err
	}
	if err := jpeg.Encode(out, canvas, &jpeg.Options{Quality: quality}); err != nil {
		out.Close()
		return fmt.Errorf("кодирование: %w", err)
	}
	return out.Close()
}

// FitRect вписывает исходный прямоугольник в холст width x height
// с сохранением пропорций и центрированием.
func FitRect(src image.Rectangle, width, height int) image.Rectangle {
	srcW, srcH := src.Dx(), src.Dy()
	if srcW == 0 || srcH == 0 {
		return image.Rect(0, 0, width, height)
	}

	scaleX := float64(width) / float64(srcW)
	scaleY := float64(height) / float64(srcH)
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}

	w := int(float64(srcW) * scale)
	h := int(float64(srcH) * scale)
	x := (width - w) / 2
	y := (height - h) / 2

	return image.Rect(x, y, x+w, y+h)
}
