package schedule

import (
	"errors"
	"fmt"
	"math"
)

// DefaultSlideDuration is used when no audio track is available to derive
// the total duration from.
const DefaultSlideDuration = 3.0

// ErrInvalidInput is returned when a schedule is requested for zero slides
// or a non-positive total duration.
var ErrInvalidInput = errors.New("schedule: slide count and total duration must be positive")

// Build computes a uniform per-slide duration so that slideCount slides
// exactly span totalDuration seconds.
func Build(slideCount int, totalDuration float64) ([]float64, error) {
	if slideCount < 1 || totalDuration <= 0 {
		return nil, fmt.Errorf("%w (slides=%d, total=%.3f)", ErrInvalidInput, slideCount, totalDuration)
	}

	d := totalDuration / float64(slideCount)
	durations := make([]float64, slideCount)
	for i := range durations {
		durations[i] = d
	}
	return durations, nil
}

// BuildQuantized computes frame-aligned per-slide durations. Each slide except
// the last is rounded to a whole number of frames; the rounding remainder is
// folded into the last slide so the sum still equals totalDuration exactly.
func BuildQuantized(slideCount int, totalDuration float64, fps int) ([]float64, error) {
	if slideCount < 1 || totalDuration <= 0 || fps < 1 {
		return nil, fmt.Errorf("%w (slides=%d, total=%.3f, fps=%d)", ErrInvalidInput, slideCount, totalDuration, fps)
	}

	frame := 1.0 / float64(fps)
	// Каждому слайду нужен хотя бы один кадр, иначе квантование невозможно
	if totalDuration < float64(slideCount)*frame {
		return nil, fmt.Errorf("%w: %.3fs is too short for %d slides at %d fps", ErrInvalidInput, totalDuration, slideCount, fps)
	}

	// Округляем вниз: остаток достается последнему слайду, сумма не плывет
	d := totalDuration / float64(slideCount)
	q := math.Floor(d*float64(fps)) / float64(fps)
	if q < frame {
		q = frame
	}

	durations := make([]float64, slideCount)
	spent := 0.0
	for i := 0; i < slideCount-1; i++ {
		durations[i] = q
		spent += q
	}
	durations[slideCount-1] = totalDuration - spent

	return durations, nil
}

// FitSlideDuration adjusts a requested per-slide duration to the audio track
// length. When the slides would overflow the audio by more than 10% the
// duration shrinks (floor 1.5s); when they undershoot by more than 10% it
// grows (cap 6.0s). Within the band the request is kept as-is.
func FitSlideDuration(slideCount int, audioDuration, perSlide float64) float64 {
	if slideCount < 1 || audioDuration <= 0 {
		return perSlide
	}

	total := perSlide * float64(slideCount)
	switch {
	case total > audioDuration*1.1:
		return math.Max(1.5, audioDuration/float64(slideCount))
	case total < audioDuration*0.9:
		return math.Min(6.0, audioDuration/float64(slideCount))
	default:
		return perSlide
	}
}
