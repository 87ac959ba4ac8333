package engine

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chama-x/slidesonic/internal/config"
	"github.com/chama-x/slidesonic/internal/encoder"
	"github.com/chama-x/slidesonic/internal/hardware"
	"github.com/chama-x/slidesonic/internal/monitor"
	"github.com/chama-x/slidesonic/internal/prepare"
	"github.com/chama-x/slidesonic/internal/probe"
	"github.com/chama-x/slidesonic/internal/schedule"
	"github.com/chama-x/slidesonic/internal/source"
	"github.com/chama-x/slidesonic/internal/system"
)

// SlideshowProject — один прогон: источник слайдов, расписание, кодирование.
type SlideshowProject struct {
	Config  *config.Config
	Source  source.Source
	tempDir string
}

func NewSlideshowProject(cfg *config.Config, src source.Source) *SlideshowProject {
	return &SlideshowProject{Config: cfg, Source: src}
}

// Run выполняет весь конвейер и возвращает первую фатальную ошибку.
func (p *SlideshowProject) Run(ctx context.Context) error {
	startTime := time.Now()

	if err := p.Config.Validate(); err != nil {
		return err
	}

	var err error
	p.tempDir, err = os.MkdirTemp("", "slidesonic_")
	if err != nil {
		return err
	}
	defer os.RemoveAll(p.tempDir)

	slideCount := p.Source.SlideCount()
	if slideCount == 0 {
		return fmt.Errorf("источник не содержит слайдов")
	}

	// 1. Материализация и подготовка слайдов под холст
	rawFiles, err := p.Source.SlideFiles(p.tempDir, p.Config.DPI)
	if err != nil {
		return fmt.Errorf("ошибка чтения источника: %w", err)
	}

	prepStart := time.Now()
	if err := os.MkdirAll(system.ResizedDir, 0755); err != nil {
		return err
	}
	slides, err := prepare.Slides(ctx, rawFiles, system.ResizedDir, prepare.Options{
		Width:   p.Config.Width,
		Height:  p.Config.Height,
		Workers: p.Config.Workers,
	})
	if err != nil {
		return fmt.Errorf("ошибка подготовки слайдов: %w", err)
	}
	prepTime := time.Since(prepStart)

	// 2. Расписание показа
	durations, totalDuration, err := p.buildSchedule(ctx, slideCount)
	if err != nil {
		return err
	}
	p.Config.TotalDuration = totalDuration

	playlist, err := schedule.NewPlaylist(slides, durations)
	if err != nil {
		return err
	}

	playlistPath := filepath.Join(p.tempDir, "filelist.txt")
	if err := playlist.WriteConcatFile(playlistPath); err != nil {
		return fmt.Errorf("ошибка записи плейлиста: %w", err)
	}

	// 3. Выбор кодера
	if p.Config.VideoEncoder == "" {
		caps := hardware.DetectCapabilities(ctx)
		if !caps.Installed {
			return fmt.Errorf("ffmpeg не найден в PATH")
		}
		p.Config.VideoEncoder = hardware.BestEncoder(caps)
		if p.Config.VideoEncoder != "libx264" {
			fmt.Printf("[*] Обнаружено аппаратное ускорение: %s\n", p.Config.VideoEncoder)
		}
	}
	if p.Config.Quality == 0 {
		p.Config.Quality = hardware.DefaultQuality(p.Config.VideoEncoder)
	}

	fmt.Println("--- [SLIDESONIC] ---")
	fmt.Printf("[*] Источник: %s | Слайдов: %d\n", p.Config.InputPath, slideCount)
	fmt.Printf("[*] Разрешение: %dx%d @ %d FPS | Кодер: %s\n",
		p.Config.Width, p.Config.Height, p.Config.FPS, p.Config.VideoEncoder)
	fmt.Printf("[*] Длительность: %.2fs (%.2fs на слайд)\n",
		totalDuration, totalDuration/float64(slideCount))
	fmt.Println("--------------------")

	// 4. Кодирование
	job := &encoder.Job{
		PlaylistPath:  playlistPath,
		AudioPath:     p.Config.AudioPath,
		OutputPath:    p.Config.OutputVideo,
		Encoder:       p.Config.VideoEncoder,
		Preset:        p.Config.Preset,
		Quality:       p.Config.Quality,
		Width:         p.Config.Width,
		Height:        p.Config.Height,
		FPS:           p.Config.FPS,
		FadeDuration:  p.Config.FadeDuration,
		TotalDuration: totalDuration,
	}

	var callback monitor.Callback
	var bar *monitor.Bar
	if p.Config.ShowProgress {
		bar = monitor.NewBar(totalDuration)
		callback = bar.Update
	}

	encodeStart := time.Now()
	err = encoder.Run(ctx, job, p.Config.LogPath, callback)
	bar.Finish()
	if err != nil {
		return fmt.Errorf("ошибка кодирования: %w", err)
	}
	encodeTime := time.Since(encodeStart)

	// 5. Манифест рядом с видео
	manifestPath := manifestPathFor(p.Config.OutputVideo)
	manifest := &schedule.Manifest{
		Title:         p.Config.Title,
		Created:       time.Now(),
		Encoder:       p.Config.VideoEncoder,
		Resolution:    p.Config.Resolution(),
		FPS:           p.Config.FPS,
		AudioPath:     p.Config.AudioPath,
		TotalDuration: totalDuration,
		Entries:       playlist.Entries,
	}
	if err := schedule.WriteManifest(manifest, manifestPath); err != nil {
		log.Printf("[!] Манифест не записался: %v", err)
	}

	if p.Config.ShowStats {
		totalTime := time.Since(startTime)
		fmt.Println("--- [PERFORMANCE REPORT] ---")
		fmt.Printf("Total Time: %.2fs\n", totalTime.Seconds())
		fmt.Printf("Preparation: %.2fs\n", prepTime.Seconds())
		fmt.Printf("Encoding: %.2fs\n", encodeTime.Seconds())
		fmt.Printf("Slides/s: %.2f\n", float64(slideCount)/totalTime.Seconds())
		fmt.Println("----------------------------")
	}

	return nil
}

// buildSchedule выбирает политику длительностей. С аудио и включенной
// синхронизацией расписание точно накрывает дорожку; без аудио работает
// запасная длительность слайда.
func (p *SlideshowProject) buildSchedule(ctx context.Context, slideCount int) ([]float64, float64, error) {
	perSlide := p.Config.SlideDuration
	if perSlide <= 0 {
		perSlide = schedule.DefaultSlideDuration
	}

	// Явно заданная длительность важнее аудио
	if p.Config.TotalDuration > 0 {
		durations, err := schedule.BuildQuantized(slideCount, p.Config.TotalDuration, p.Config.FPS)
		return durations, p.Config.TotalDuration, err
	}

	if p.Config.AudioPath == "" {
		total := perSlide * float64(slideCount)
		durations, err := schedule.Build(slideCount, total)
		return durations, total, err
	}

	audioDur, err := probe.AudioDuration(ctx, p.Config.AudioPath)
	if err != nil {
		log.Printf("[!] Не удалось получить длительность аудио: %v", err)
		total := perSlide * float64(slideCount)
		durations, err := schedule.Build(slideCount, total)
		return durations, total, err
	}

	if p.Config.AudioSync {
		fmt.Printf("[*] Длительность видео установлена по аудио: %.2fs\n", audioDur)
		durations, err := schedule.BuildQuantized(slideCount, audioDur, p.Config.FPS)
		return durations, audioDur, err
	}

	// Без жесткой синхронизации подгоняем слайд под дорожку в разумных рамках
	fitted := schedule.FitSlideDuration(slideCount, audioDur, perSlide)
	if fitted != perSlide {
		fmt.Printf("[*] Длительность слайда подогнана под аудио: %.2fs\n", fitted)
	}
	total := fitted * float64(slideCount)
	durations, err := schedule.Build(slideCount, total)
	return durations, total, err
}

func manifestPathFor(outputVideo string) string {
	ext := filepath.Ext(outputVideo)
	return strings.TrimSuffix(outputVideo, ext) + ".yaml"
}
