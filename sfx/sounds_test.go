package sfx

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/takeashot/config"
	"github.com/plus3/takeashot/gallery"
)

// drain streams s to completion and returns every sample.
func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

func TestShotSoundLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	samples := drain(ShotSound(rate, 1))

	assert.Len(t, samples, rate.N(shotDuration))
	for i, s := range samples {
		assert.LessOrEqual(t, s[0], 1.0, "sample %d", i)
		assert.GreaterOrEqual(t, s[0], -1.0, "sample %d", i)
		assert.Equal(t, s[0], s[1], "sample %d is not mono", i)
	}
}

func TestShotSoundDecays(t *testing.T) {
	rate := beep.SampleRate(44100)
	samples := drain(ShotSound(rate, 1))

	peak := func(part [][2]float64) float64 {
		var m float64
		for _, s := range part {
			m = max(m, s[0], -s[0])
		}
		return m
	}
	quarter := len(samples) / 4
	assert.Greater(t, peak(samples[:quarter]), peak(samples[len(samples)-quarter:]))
}

func TestHitSoundPlaysTwoNotes(t *testing.T) {
	rate := beep.SampleRate(44100)
	chime, err := HitSound(rate, 1)
	require.NoError(t, err)

	samples := drain(chime)
	assert.Len(t, samples, 2*rate.N(chimeNote))
}

func TestHitSoundRejectsLowRate(t *testing.T) {
	// 1320 Hz sits above the Nyquist limit of a 2 kHz stream.
	_, err := HitSound(beep.SampleRate(2000), 1)
	assert.ErrorContains(t, err, "sfx: hit tone")
}

func TestZeroVolumeIsSilent(t *testing.T) {
	rate := beep.SampleRate(8000)
	for _, s := range drain(ShotSound(rate, 0)) {
		assert.Zero(t, s[0])
		assert.Zero(t, s[1])
	}
}

func TestVolumeScales(t *testing.T) {
	rate := beep.SampleRate(8000)
	loud := drain(withVolume(constant(rate, 0.5), 1))
	quiet := drain(withVolume(constant(rate, 0.5), 0.5))

	require.Len(t, quiet, len(loud))
	assert.InDelta(t, 0.5, loud[0][0], 1e-9)
	assert.InDelta(t, 0.25, quiet[0][0], 1e-9)
}

func constant(rate beep.SampleRate, val float64) beep.Streamer {
	n := rate.N(10 * time.Millisecond)
	return beep.Take(n, beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{val, val}
		}
		return len(samples), true
	}))
}

func TestDisabledPlayerIsQuiet(t *testing.T) {
	p, err := New(config.AudioConfig{Enabled: false, Volume: 1}, nil)
	require.NoError(t, err)
	assert.False(t, p.Enabled())

	assert.NotPanics(t, func() {
		p.PlayShots([]gallery.Shot{{Hits: 1, Points: 10}, {}})
		p.Close()
	})
	assert.Zero(t, p.mixer.Len())
}

func TestMutedPlayer(t *testing.T) {
	p := Muted()
	assert.False(t, p.Enabled())
	assert.NotPanics(t, func() {
		p.PlayShots([]gallery.Shot{{Hits: 2}})
		p.Close()
	})
}
