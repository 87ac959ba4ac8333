package encoder

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/chama-x/slidesonic/internal/monitor"
)

// Job описывает одну сборку слайдшоу: готовый плейлист concat-демуксера,
// опциональное аудио и параметры кодирования.
type Job struct {
	PlaylistPath  string
	AudioPath     string
	OutputPath    string
	Encoder       string
	Preset        string
	Quality       int
	Width         int
	Height        int
	FPS           int
	FadeDuration  float64
	TotalDuration float64
}

// Args собирает аргументы ffmpeg. Команда детерминированно зависит от Job,
// поэтому сборка отделена от запуска и тестируется без ffmpeg.
func (j *Job) Args() []string {
	args := []string{
		"-y", "-hide_banner",
		"-f", "concat", "-safe", "0", "-i", j.PlaylistPath,
	}

	if j.AudioPath != "" {
		args = append(args, "-i", j.AudioPath)
	}

	args = append(args, "-c:v", j.Encoder)
	args = append(args, qualityArgs(j.Encoder, j.Quality, j.Preset)...)
	args = append(args, "-pix_fmt", "yuv420p")

	if j.AudioPath != "" {
		args = append(args, "-c:a", "aac", "-b:a", "192k", "-shortest")
	}

	if vf := j.fadeFilter(); vf != "" {
		args = append(args, "-vf", vf)
	}

	args = append(args,
		"-s", fmt.Sprintf("%dx%d", j.Width, j.Height),
		"-r", fmt.Sprintf("%d", j.FPS),
		"-movflags", "+faststart",
		j.OutputPath,
	)

	return args
}

// fadeFilter строит плавное появление и затухание по краям ролика.
func (j *Job) fadeFilter() string {
	if j.FadeDuration <= 0 || j.TotalDuration <= 2*j.FadeDuration {
		return ""
	}
	return fmt.Sprintf("fade=t=in:st=0:d=%.2f,fade=t=out:st=%.2f:d=%.2f",
		j.FadeDuration, j.TotalDuration-j.FadeDuration, j.FadeDuration)
}

// qualityArgs подбирает флаги качества под кодер: аппаратные кодеры
// не понимают -crf.
func qualityArgs(encoder string, quality int, preset string) []string {
	switch encoder {
	case "h264_videotoolbox", "hevc_videotoolbox":
		// VideoToolbox не поддерживает -q:v на всех версиях, задаем битрейт
		return []string{"-b:v", fmt.Sprintf("%dk", quality*100)}
	case "h264_nvenc", "hevc_nvenc":
		return []string{"-cq", fmt.Sprintf("%d", quality)}
	case "h264_qsv", "hevc_qsv":
		return []string{"-global_quality", fmt.Sprintf("%d", quality)}
	case "h264_vaapi", "hevc_vaapi":
		return []string{"-qp", fmt.Sprintf("%d", quality)}
	default: // libx264, libx265 и прочие программные
		if preset == "" {
			preset = "medium"
		}
		return []string{"-crf", fmt.Sprintf("%d", quality), "-preset", preset}
	}
}

// Run запускает ffmpeg, зеркалит его вывод в лог-файл и скармливает
// парсеру прогресса. Успех определяется кодом выхода процесса
// и наличием выходного файла.
func Run(ctx context.Context, j *Job, logPath string, callback monitor.Callback) error {
	cmd := exec.CommandContext(ctx, "ffmpeg", j.Args()...)

	var logFile *os.File
	if logPath != "" {
		var err error
		logFile, err = os.Create(logPath)
		if err != nil {
			return fmt.Errorf("encoder: лог-файл не создался: %w", err)
		}
		defer logFile.Close()
		cmd.Stdout = logFile
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("encoder: stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("encoder: ffmpeg не запустился: %w", err)
	}

	var tail io.Reader = stderr
	if logFile != nil {
		tail = io.TeeReader(stderr, logFile)
	}

	parser := monitor.NewParser()
	streamErr := parser.Stream(tail, callback)

	if err := cmd.Wait(); err != nil {
		if logPath != "" {
			return fmt.Errorf("encoder: ffmpeg завершился с ошибкой: %w (лог: %s)", err, logPath)
		}
		return fmt.Errorf("encoder: ffmpeg завершился с ошибкой: %w", err)
	}
	if streamErr != nil {
		return streamErr
	}

	if _, err := os.Stat(j.OutputPath); err != nil {
		return fmt.Errorf("encoder: выходной файл не создан: %w", err)
	}

	return nil
}
