package monitor

import (
	"math"
	"strings"
	"testing"
	"time"
)

func TestParseLineStatsFormat(t *testing.T) {
	// Однострочный -stats формат: все поля сразу
	line := "frame=  300 fps= 29.9 q=28.0 size=    1024kB time=00:00:10.00 bitrate= 838.9kbits/s speed=1.25x"

	var p Progress
	if !NewParser().ParseLine(line, &p) {
		t.Fatal("Stats line not recognized")
	}

	if p.Frame != 300 {
		t.Errorf("Frame = %d, want 300", p.Frame)
	}
	if math.Abs(p.FPS-29.9) > 1e-9 {
		t.Errorf("FPS = %f, want 29.9", p.FPS)
	}
	if math.Abs(p.Seconds-10.0) > 1e-9 {
		t.Errorf("Seconds = %f, want 10.0", p.Seconds)
	}
	if math.Abs(p.Speed-1.25) > 1e-9 {
		t.Errorf("Speed = %f, want 1.25", p.Speed)
	}
}

func TestParseLineKeyValueFormat(t *testing.T) {
	// -progress формат: key=value по строке
	parser := NewParser()
	var p Progress

	lines := []string{
		"frame=120",
		"fps=30.00",
		"out_time=00:00:04.000000",
		"speed=2.0x",
		"progress=end",
	}
	for _, l := range lines {
		parser.ParseLine(l, &p)
	}

	if p.Frame != 120 || math.Abs(p.Seconds-4.0) > 1e-9 || !p.Done {
		t.Errorf("Unexpected progress: %+v", p)
	}
}

func TestParseLineIgnoresNoise(t *testing.T) {
	parser := NewParser()
	var p Progress

	for _, l := range []string{"", "   ", "Press [q] to stop, [?] for help"} {
		if parser.ParseLine(l, &p) {
			t.Errorf("Line %q must not update progress", l)
		}
	}
}

func TestStreamHandlesCarriageReturns(t *testing.T) {
	// ffmpeg перерисовывает строку прогресса через \r
	out := "frame=   10 time=00:00:01.00 speed=1.0x\r" +
		"frame=   20 time=00:00:02.00 speed=1.0x\r" +
		"frame=   30 time=00:00:03.00 speed=1.0x\n"

	var updates []Progress
	err := NewParser().Stream(strings.NewReader(out), func(p Progress) {
		updates = append(updates, p)
	})
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}

	if len(updates) != 3 {
		t.Fatalf("Expected 3 updates, got %d", len(updates))
	}
	last := updates[len(updates)-1]
	if last.Frame != 30 || math.Abs(last.Seconds-3.0) > 1e-9 {
		t.Errorf("Unexpected final progress: %+v", last)
	}
}

func TestTimeToSeconds(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"00:00:10.00", 10.0, true},
		{"01:02:03.5", 3723.5, true},
		{"12.75", 12.75, true},
		{"xx:yy:zz", 0, false},
	}
	for _, c := range cases {
		got, ok := timeToSeconds(c.in)
		if ok != c.ok || (ok && math.Abs(got-c.want) > 1e-9) {
			t.Errorf("timeToSeconds(%q) = %f, %v; want %f, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestETA(t *testing.T) {
	p := Progress{Seconds: 30, Speed: 2.0}
	eta, ok := ETA(p, 90)
	if !ok {
		t.Fatal("ETA must be computable")
	}
	if eta != 30*time.Second {
		t.Errorf("ETA = %v, want 30s", eta)
	}

	if _, ok := ETA(Progress{Seconds: 100, Speed: 1}, 90); ok {
		t.Error("Past the end ETA must not be reported")
	}
	if _, ok := ETA(Progress{Seconds: 10, Speed: 0}, 90); ok {
		t.Error("Zero speed ETA must not be reported")
	}
}

func TestFormatETA(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{45 * time.Second, "45с"},
		{90 * time.Second, "1м30с"},
		{3725 * time.Second, "1ч02м"},
	}
	for _, c := range cases {
		if got := FormatETA(c.in); got != c.want {
			t.Errorf("FormatETA(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
