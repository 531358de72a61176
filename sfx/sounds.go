package sfx

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

const (
	sampleRate = beep.SampleRate(44100)

	shotDuration = 60 * time.Millisecond
	chimeNote    = 90 * time.Millisecond
)

// ShotSound is a decaying noise burst, the rifle report.
func ShotSound(rate beep.SampleRate, volume float64) beep.Streamer {
	total := rate.N(shotDuration)
	pos := 0
	burst := beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			if pos >= total {
				return i, i > 0
			}
			decay := 1 - float64(pos)/float64(total)
			val := (rand.Float64()*2 - 1) * decay * decay
			samples[i][0] = val
			samples[i][1] = val
			pos++
		}
		return len(samples), true
	})
	return withVolume(burst, volume)
}

// HitSound is a two-note rising chime played when a shot scores.
func HitSound(rate beep.SampleRate, volume float64) (beep.Streamer, error) {
	low, err := generators.SineTone(rate, 880)
	if err != nil {
		return nil, fmt.Errorf("sfx: hit tone: %w", err)
	}
	high, err := generators.SineTone(rate, 1320)
	if err != nil {
		return nil, fmt.Errorf("sfx: hit tone: %w", err)
	}

	n := rate.N(chimeNote)
	chime := beep.Seq(
		beep.Take(n, low),
		beep.Take(n, high),
	)
	return withVolume(chime, volume*0.6), nil
}

// withVolume maps a linear gain onto effects.Volume. Zero or less is silent
// since log2(0) is -Inf.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
