package monitor

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Progress — текущее состояние кодирования, собранное из stderr ffmpeg.
type Progress struct {
	Frame   int64
	FPS     float64
	Seconds float64 // позиция в выходном файле
	Bitrate string
	Speed   float64 // множитель реального времени
	Done    bool
}

// Callback вызывается на каждое обновление прогресса.
type Callback func(Progress)

// Parser разбирает строки прогресса ffmpeg: как однострочный -stats
// формат, так и key=value из -progress.
type Parser struct {
	frameRe   *regexp.Regexp
	fpsRe     *regexp.Regexp
	timeRe    *regexp.Regexp
	bitrateRe *regexp.Regexp
	speedRe   *regexp.Regexp
}

func NewParser() *Parser {
	return &Parser{
		// frame=123 и frame= 123
		frameRe:   regexp.MustCompile(`frame=\s*(\d+)`),
		fpsRe:     regexp.MustCompile(`fps=\s*([0-9.]+)`),
		timeRe:    regexp.MustCompile(`(?:out_)?time=\s*([0-9:.]+)`),
		bitrateRe: regexp.MustCompile(`bitrate=\s*([0-9.]+\s*\w+/s)`),
		speedRe:   regexp.MustCompile(`speed=\s*([0-9.]+)x`),
	}
}

// ParseLine обновляет p по одной строке вывода. Возвращает true,
// если хоть одно поле изменилось.
func (pr *Parser) ParseLine(line string, p *Progress) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if line == "progress=end" {
		p.Done = true
		return true
	}

	updated := false

	if m := pr.frameRe.FindStringSubmatch(line); len(m) > 1 {
		if v, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			p.Frame = v
			updated = true
		}
	}
	if m := pr.fpsRe.FindStringSubmatch(line); len(m) > 1 {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			p.FPS = v
			updated = true
		}
	}
	if m := pr.timeRe.FindStringSubmatch(line); len(m) > 1 {
		if s, ok := timeToSeconds(m[1]); ok {
			p.Seconds = s
			updated = true
		}
	}
	if m := pr.bitrateRe.FindStringSubmatch(line); len(m) > 1 {
		p.Bitrate = strings.ReplaceAll(m[1], " ", "")
		updated = true
	}
	if m := pr.speedRe.FindStringSubmatch(line); len(m) > 1 {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			p.Speed = v
			updated = true
		}
	}

	return updated
}

// Stream читает вывод ffmpeg построчно (и \n, и \r — ffmpeg перерисовывает
// строку прогресса) и дергает callback на каждом обновлении.
func (pr *Parser) Stream(r io.Reader, callback Callback) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	scanner.Split(scanCRorLF)

	var p Progress
	for scanner.Scan() {
		if pr.ParseLine(scanner.Text(), &p) && callback != nil {
			callback(p)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("monitor: чтение вывода ffmpeg: %w", err)
	}
	return nil
}

// timeToSeconds разбирает HH:MM:SS.ms в секунды.
func timeToSeconds(s string) (float64, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		// -progress пишет out_time_ms, голые секунды тоже принимаем
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v, true
		}
		return 0, false
	}

	h, err1 := strconv.ParseFloat(parts[0], 64)
	m, err2 := strconv.ParseFloat(parts[1], 64)
	sec, err3 := strconv.ParseFloat(parts[2], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, false
	}

	return h*3600 + m*60 + sec, true
}

// scanCRorLF — bufio.SplitFunc, рвущий строки и по \n, и по \r.
func scanCRorLF(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	for i, b := range data {
		if b == '\n' || b == '\r' {
			return i + 1, data[:i], nil
		}
	}

	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
