package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/chama-x/slidesonic/internal/config"
	"github.com/chama-x/slidesonic/internal/demo"
	"github.com/chama-x/slidesonic/internal/engine"
	"github.com/chama-x/slidesonic/internal/hardware"
	"github.com/chama-x/slidesonic/internal/probe"
	"github.com/chama-x/slidesonic/internal/source"
	"github.com/chama-x/slidesonic/internal/system"
)

const settingsFile = "settings.yaml"

func main() {
	// Увеличиваем лимиты системы (для macOS/Linux)
	system.InitResourceLimits()

	if err := system.EnsureDirs(); err != nil {
		log.Fatalf("[-] Ошибка: %v", err)
	}

	settings := config.LoadSettings(settingsFile)

	inputPtr := flag.String("input", system.ImagesDir, "Папка с изображениями, одиночное изображение или PDF")
	audioPtr := flag.String("audio", "", "Путь к аудио (по умолчанию: самый свежий файл в song/)")
	noAudioPtr := flag.Bool("no-audio", false, "Собрать слайдшоу без звуковой дорожки")
	outputPtr := flag.String("output", "", "Путь к видео (если пусто, генерируется автоматически в output/)")
	titlePtr := flag.String("title", "", "Название слайдшоу (пишется в манифест)")
	resolutionPtr := flag.String("resolution", settings.Resolution, "Разрешение в формате ШИРИНАxВЫСОТА")
	durationPtr := flag.Float64("duration", 0, "Общая длительность видео (0 = по аудио или по -slide-duration)")
	slideDurationPtr := flag.Float64("slide-duration", settings.SlideDuration, "Длительность показа одного слайда в секундах")
	fpsPtr := flag.Int("fps", settings.FPS, "FPS")
	fadePtr := flag.Float64("fade", settings.FadeDuration, "Длительность появления/затухания по краям ролика (сек)")
	encoderPtr := flag.String("encoder", settings.Encoder, "Видеокодер ffmpeg (пусто = автоопределение)")
	presetPtr := flag.String("preset", settings.Preset, "Пресет программного кодера")
	qualityPtr := flag.Int("quality", settings.Quality, "Качество видео (0 = авто, x264: CRF, VideoToolbox: битрейт = Q*100кбит/с)")
	workersPtr := flag.Int("workers", runtime.NumCPU(), "Потоки подготовки изображений")
	dpiPtr := flag.Int("dpi", 300, "DPI рендеринга PDF")
	audioSyncPtr := flag.Bool("audio-sync", settings.AudioSync, "Синхронизировать длительность видео с аудио")
	noProgressPtr := flag.Bool("no-progress", false, "Не рисовать индикатор прогресса")
	statsPtr := flag.Bool("stats", false, "Показать отчет о времени работы")
	saveSettingsPtr := flag.Bool("save-settings", false, "Сохранить текущие параметры как значения по умолчанию")

	analyzePtr := flag.Bool("analyze", false, "Проанализировать систему и возможности ffmpeg и выйти")
	demoPtr := flag.Int("demo", 0, "Создать N пробных слайдов в images/original/ и выйти")
	infoPtr := flag.String("info", "", "Показать метаданные медиафайла и выйти")

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	width, height, err := config.ParseResolution(*resolutionPtr)
	if err != nil {
		log.Fatalf("[-] Ошибка: %v", err)
	}

	// Сервисные режимы
	switch {
	case *analyzePtr:
		if err := runAnalyze(ctx); err != nil {
			log.Fatalf("[-] Ошибка анализа: %v", err)
		}
		return
	case *demoPtr > 0:
		paths, err := demo.GenerateSlides(system.ImagesDir, *demoPtr, width, height)
		if err != nil {
			log.Fatalf("[-] Ошибка генерации слайдов: %v", err)
		}
		fmt.Printf("[+++] Создано %d пробных слайдов в %s\n", len(paths), system.ImagesDir)
		return
	case *infoPtr != "":
		if err := runInfo(ctx, *infoPtr); err != nil {
			log.Fatalf("[-] Ошибка: %v", err)
		}
		return
	}

	if *saveSettingsPtr {
		s := config.Settings{
			Resolution:    *resolutionPtr,
			FPS:           *fpsPtr,
			SlideDuration: *slideDurationPtr,
			FadeDuration:  *fadePtr,
			Encoder:       *encoderPtr,
			Preset:        *presetPtr,
			Quality:       *qualityPtr,
			AudioSync:     *audioSyncPtr,
		}
		if err := config.SaveSettings(s, settingsFile); err != nil {
			log.Printf("[!] Настройки не сохранились: %v", err)
		} else {
			fmt.Printf("[*] Настройки сохранены в %s\n", settingsFile)
		}
	}

	// Аудио: явный путь, либо самый свежий файл в song/
	audioPath := *audioPtr
	if *noAudioPtr {
		audioPath = ""
	} else if audioPath == "" {
		latest, err := system.FindLatestAudio(system.AudioDir)
		if err == nil {
			audioPath = latest
			fmt.Printf("[*] Выбрано аудио: %s\n", audioPath)
		}
	}

	src, err := source.Open(*inputPtr)
	if err != nil {
		log.Fatalf("[-] Ошибка инициализации источника: %v. Положите изображения в %s/", err, system.ImagesDir)
	}
	defer src.Close()

	finalOutput := *outputPtr
	if finalOutput == "" {
		finalOutput = defaultOutputPath(*inputPtr, audioPath)
	}

	cfg := &config.Config{
		InputPath:     *inputPtr,
		AudioPath:     audioPath,
		OutputVideo:   finalOutput,
		Title:         *titlePtr,
		Width:         width,
		Height:        height,
		FPS:           *fpsPtr,
		Workers:       *workersPtr,
		DPI:           *dpiPtr,
		TotalDuration: *durationPtr,
		SlideDuration: *slideDurationPtr,
		FadeDuration:  *fadePtr,
		VideoEncoder:  *encoderPtr,
		Preset:        *presetPtr,
		Quality:       *qualityPtr,
		AudioSync:     *audioSyncPtr,
		ShowProgress:  !*noProgressPtr,
		ShowStats:     *statsPtr,
		LogPath:       filepath.Join(system.LogsDir, "ffmpeg_output.log"),
	}

	project := engine.NewSlideshowProject(cfg, src)
	if err := project.Run(ctx); err != nil {
		log.Fatalf("[-] Ошибка проекта: %v", err)
	}

	fmt.Printf("[+++] Успех! Результат: %s\n", cfg.OutputVideo)
}

// defaultOutputPath собирает имя вида output/<basename>_<timestamp>.mp4.
// За основу берется аудио-файл, иначе источник.
func defaultOutputPath(inputPath, audioPath string) string {
	nameSource := audioPath
	if nameSource == "" {
		nameSource = inputPath
	}

	baseName := filepath.Base(filepath.Clean(nameSource))
	nameOnly := strings.TrimSuffix(baseName, filepath.Ext(baseName))
	cleanName := strings.ReplaceAll(nameOnly, " ", "_")
	if cleanName == "" || cleanName == "." {
		cleanName = "video"
	}
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(system.OutputDir, fmt.Sprintf("%s_%s.mp4", cleanName, timestamp))
}

func runAnalyze(ctx context.Context) error {
	fmt.Println("[*] Анализ системы...")

	report, err := hardware.Analyze(ctx)
	if err != nil {
		return err
	}

	fmt.Println("--- [HARDWARE REPORT] ---")
	fmt.Printf("ОС: %s (%s) | Архитектура: %s\n", report.OS, report.Platform, report.Arch)
	if report.CPUModel != "" {
		fmt.Printf("CPU: %s\n", report.CPUModel)
	}
	fmt.Printf("Ядра: %d логических / %d физических\n", report.CPULogical, report.CPUPhysical)
	fmt.Printf("Память: %s\n", hardware.FormatBytes(report.MemoryTotal))

	if report.FFmpeg.Installed {
		fmt.Printf("FFmpeg: %s\n", report.FFmpeg.Version)
		fmt.Printf("Кодеры: %s\n", strings.Join(report.FFmpeg.Encoders, ", "))
		fmt.Printf("Ускорение: %s\n", strings.Join(report.FFmpeg.HWAccels, ", "))
	} else {
		fmt.Println("FFmpeg: не найден в PATH")
	}
	fmt.Printf("Рекомендуемый кодер: %s\n", report.BestEncoder)
	fmt.Println("-------------------------")

	reportPath := filepath.Join(system.LogsDir, "hardware_report.yaml")
	if err := hardware.SaveReport(report, reportPath); err != nil {
		return err
	}
	fmt.Printf("[*] Отчет сохранен: %s\n", reportPath)
	return nil
}

func runInfo(ctx context.Context, path string) error {
	r, err := probe.File(ctx, path)
	if err != nil {
		return err
	}

	fmt.Printf("Файл: %s (%s)\n", r.Format.Filename, r.Format.FormatName)
	if d, err := r.Duration(); err == nil {
		fmt.Printf("Длительность: %.2fs\n", d)
	}
	for _, s := range r.Streams {
		switch s.CodecType {
		case "video":
			fmt.Printf("  Видео #%d: %s %dx%d\n", s.Index, s.CodecName, s.Width, s.Height)
		case "audio":
			fmt.Printf("  Аудио #%d: %s %s Гц, каналов: %d\n", s.Index, s.CodecName, s.SampleRate, s.Channels)
		default:
			fmt.Printf("  Дорожка #%d: %s (%s)\n", s.Index, s.CodecName, s.CodecType)
		}
	}
	return nil
}
