package monitor

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Bar рисует прогресс кодирования относительно известной общей длительности.
type Bar struct {
	bar   *progressbar.ProgressBar
	total float64
}

// NewBar создает индикатор на totalDuration секунд выходного видео.
func NewBar(totalDuration float64) *Bar {
	b := progressbar.NewOptions(int(totalDuration*10),
		progressbar.OptionSetDescription("Кодирование"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionClearOnFinish(),
	)
	return &Bar{bar: b, total: totalDuration}
}

// Update переводит позицию кодирования в деления индикатора.
func (b *Bar) Update(p Progress) {
	if b == nil || b.total <= 0 {
		return
	}

	pos := p.Seconds
	if pos > b.total {
		pos = b.total
	}
	b.bar.Set(int(pos * 10))
}

// Finish закрывает индикатор.
func (b *Bar) Finish() {
	if b == nil {
		return
	}
	b.bar.Finish()
}

// ETA оценивает оставшееся время по скорости кодирования.
func ETA(p Progress, totalDuration float64) (time.Duration, bool) {
	if p.Speed <= 0 || totalDuration <= 0 || p.Seconds >= totalDuration {
		return 0, false
	}
	remaining := (totalDuration - p.Seconds) / p.Speed
	return time.Duration(remaining * float64(time.Second)), true
}

// FormatETA печатает оценку по-человечески.
func FormatETA(d time.Duration) string {
	d = d.Round(time.Second)
	if d >= time.Hour {
		return fmt.Sprintf("%dч%02dм", int(d.Hours()), int(d.Minutes())%60)
	}
	if d >= time.Minute {
		return fmt.Sprintf("%dм%02dс", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dс", int(d.Seconds()))
}
