package hardware

import (
	"context"
	"os/exec"
	"regexp"
	"runtime"
	"strings"
)

// Capabilities — что умеет установленный ffmpeg.
type Capabilities struct {
	Installed bool     `yaml:"installed"`
	Version   string   `yaml:"version,omitempty"`
	Encoders  []string `yaml:"encoders,omitempty"`
	HWAccels  []string `yaml:"hwaccels,omitempty"`
}

var versionRe = regexp.MustCompile(`ffmpeg version (\S+)`)

// Интересующие нас кодеры; полный список ffmpeg огромен
var knownEncoders = []string{
	"libx264", "libx265", "libaom-av1", "libsvtav1", "librav1e",
	"h264_videotoolbox", "hevc_videotoolbox",
	"h264_nvenc", "hevc_nvenc",
	"h264_qsv", "hevc_qsv",
	"h264_vaapi", "hevc_vaapi",
	"h264_amf",
}

// HasEncoder сообщает, доступен ли кодер.
func (c *Capabilities) HasEncoder(name string) bool {
	for _, e := range c.Encoders {
		if e == name {
			return true
		}
	}
	return false
}

// HasAccel сообщает, доступно ли аппаратное ускорение.
func (c *Capabilities) HasAccel(name string) bool {
	for _, a := range c.HWAccels {
		if a == name {
			return true
		}
	}
	return false
}

// ParseCapabilities собирает Capabilities из вывода трех команд ffmpeg.
// Вынесено отдельно от запуска процессов, чтобы разбор был тестируемым.
func ParseCapabilities(versionOut, encodersOut, hwaccelsOut string) Capabilities {
	caps := Capabilities{Installed: true}

	if m := versionRe.FindStringSubmatch(versionOut); len(m) > 1 {
		caps.Version = m[1]
	}

	for _, enc := range knownEncoders {
		if strings.Contains(encodersOut, enc) {
			caps.Encoders = append(caps.Encoders, enc)
		}
	}

	for _, line := range strings.Split(hwaccelsOut, "\n") {
		accel := strings.TrimSpace(line)
		if accel == "" || strings.Contains(accel, " ") {
			continue // заголовок "Hardware acceleration methods:"
		}
		caps.HWAccels = append(caps.HWAccels, accel)
	}

	return caps
}

// DetectCapabilities опрашивает установленный ffmpeg.
func DetectCapabilities(ctx context.Context) Capabilities {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return Capabilities{Installed: false}
	}

	run := func(args ...string) string {
		out, err := exec.CommandContext(ctx, "ffmpeg", args...).CombinedOutput()
		if err != nil {
			return ""
		}
		return string(out)
	}

	return ParseCapabilities(run("-version"), run("-hide_banner", "-encoders"), run("-hide_banner", "-hwaccels"))
}

// BestEncoder выбирает кодер по приоритету: VideoToolbox (Apple Silicon),
// NVENC, QuickSync, VAAPI, затем программные libx265/libx264.
func BestEncoder(caps Capabilities) string {
	if runtime.GOOS == "darwin" && runtime.GOARCH == "arm64" &&
		caps.HasAccel("videotoolbox") && caps.HasEncoder("h264_videotoolbox") {
		return "h264_videotoolbox"
	}

	if caps.HasAccel("cuda") && caps.HasEncoder("h264_nvenc") {
		return "h264_nvenc"
	}

	if caps.HasAccel("qsv") && caps.HasEncoder("h264_qsv") {
		return "h264_qsv"
	}

	if caps.HasAccel("vaapi") && caps.HasEncoder("h264_vaapi") {
		return "h264_vaapi"
	}

	if caps.HasEncoder("libx265") {
		return "libx265"
	}

	return "libx264"
}

// DefaultQuality подбирает значение качества под конкретный кодер.
func DefaultQuality(encoder string) int {
	switch encoder {
	case "h264_videotoolbox":
		return 75 // множитель битрейта, не CRF
	case "h264_nvenc":
		return 28
	case "libx265":
		return 28
	default: // libx264 и прочие CRF-кодеры
		return 23
	}
}
