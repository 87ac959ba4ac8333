package hardware

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"gopkg.in/yaml.v3"
)

// Report — сводка по машине и возможностям ffmpeg.
type Report struct {
	Created      time.Time    `yaml:"created"`
	OS           string       `yaml:"os"`
	Platform     string       `yaml:"platform,omitempty"`
	Arch         string       `yaml:"arch"`
	AppleSilicon bool         `yaml:"apple_silicon"`
	CPUModel     string       `yaml:"cpu_model,omitempty"`
	CPULogical   int          `yaml:"cpu_logical"`
	CPUPhysical  int          `yaml:"cpu_physical,omitempty"`
	MemoryTotal  uint64       `yaml:"memory_total_bytes"`
	FFmpeg       Capabilities `yaml:"ffmpeg"`
	BestEncoder  string       `yaml:"best_encoder"`
}

// Analyze собирает отчет: система через gopsutil, кодеры через ffmpeg.
func Analyze(ctx context.Context) (*Report, error) {
	caps := DetectCapabilities(ctx)

	r := &Report{
		Created:      time.Now(),
		OS:           runtime.GOOS,
		Arch:         runtime.GOARCH,
		AppleSilicon: runtime.GOOS == "darwin" && runtime.GOARCH == "arm64",
		FFmpeg:       caps,
		BestEncoder:  BestEncoder(caps),
	}

	if hi, err := host.InfoWithContext(ctx); err == nil {
		r.Platform = fmt.Sprintf("%s %s", hi.Platform, hi.PlatformVersion)
	}

	if logical, err := cpu.CountsWithContext(ctx, true); err == nil {
		r.CPULogical = logical
	} else {
		r.CPULogical = runtime.NumCPU()
	}
	if physical, err := cpu.CountsWithContext(ctx, false); err == nil {
		r.CPUPhysical = physical
	}
	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		r.CPUModel = infos[0].ModelName
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		r.MemoryTotal = vm.Total
	}

	return r, nil
}

// SaveReport пишет отчет в YAML.
func SaveReport(r *Report, path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// FormatBytes форматирует объем памяти по-человечески.
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
