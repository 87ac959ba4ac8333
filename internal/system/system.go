package system

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"
)

// Каталоги рабочего пространства слайдшоу
const (
	ImagesDir  = "images/original"
	ResizedDir = "images/resized"
	AudioDir   = "song"
	OutputDir  = "output"
	LogsDir    = "logs"
	TempDir    = "temp"
)

var audioExtensions = []string{".mp3", ".wav", ".m4a", ".ogg", ".aac", ".flac"}
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif"}

// InitResourceLimits поднимает лимит открытых файлов (для macOS/Linux).
func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Не удалось получить лимит файлов: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Printf("[!] Не удалось установить лимит файлов: %v", err)
	}
}

// EnsureDirs создает рабочие каталоги, если их нет.
func EnsureDirs() error {
	for _, d := range []string{ImagesDir, ResizedDir, AudioDir, OutputDir, LogsDir, TempDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return fmt.Errorf("не удалось создать каталог %s: %w", d, err)
		}
	}
	return nil
}

// IsAudioFile сообщает, похож ли файл на аудио по расширению.
func IsAudioFile(name string) bool {
	return hasAnySuffix(name, audioExtensions)
}

// IsImageFile сообщает, похож ли файл на изображение по расширению.
func IsImageFile(name string) bool {
	return hasAnySuffix(name, imageExtensions)
}

func hasAnySuffix(name string, exts []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// FindLatestAudio возвращает самый свежий аудио-файл в каталоге.
func FindLatestAudio(dir string) (string, error) {
	return findLatest(dir, IsAudioFile, "аудио-файлов")
}

// FindLatestImage возвращает самое свежее изображение в каталоге.
func FindLatestImage(dir string) (string, error) {
	return findLatest(dir, IsImageFile, "изображений")
}

// FindLatestPDF возвращает самый свежий PDF в каталоге.
func FindLatestPDF(dir string) (string, error) {
	return findLatest(dir, func(name string) bool {
		return strings.HasSuffix(strings.ToLower(name), ".pdf")
	}, "PDF-файлов")
}

func findLatest(dir string, match func(string) bool, kind string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() || !match(f.Name()) {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("в папке %s не найдено %s", dir, kind)
	}

	return latestFile, nil
}
