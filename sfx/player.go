// Package sfx plays the gallery's sound effects through the system speaker.
package sfx

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/plus3/takeashot/config"
	"github.com/plus3/takeashot/gallery"
)

// Player mixes shot feedback onto the speaker. A Player built with audio
// disabled accepts every call and plays nothing.
type Player struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	volume  float64
	enabled bool
	logger  *log.Logger
}

// New initialises the speaker when cfg enables audio.
func New(cfg config.AudioConfig, logger *log.Logger) (*Player, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	p := &Player{
		mixer:  &beep.Mixer{},
		volume: cfg.Volume,
		logger: logger,
	}
	if !cfg.Enabled {
		logger.Debug("audio disabled")
		return p, nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("sfx: failed to open speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.enabled = true
	logger.Debug("audio ready", "rate", int(sampleRate), "volume", cfg.Volume)
	return p, nil
}

// Muted returns a Player that never touches the speaker.
func Muted() *Player {
	return &Player{mixer: &beep.Mixer{}, logger: log.New(io.Discard)}
}

// Enabled reports whether sounds reach the speaker.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// PlayShots queues a report for every shot and a chime for each one that
// scored.
func (p *Player) PlayShots(shots []gallery.Shot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || len(shots) == 0 {
		return
	}

	var queued []beep.Streamer
	for _, shot := range shots {
		queued = append(queued, ShotSound(sampleRate, p.volume))
		if shot.Hits == 0 {
			continue
		}
		chime, err := HitSound(sampleRate, p.volume)
		if err != nil {
			p.logger.Warn("skipping hit sound", "err", err)
			continue
		}
		queued = append(queued, chime)
	}

	speaker.Lock()
	p.mixer.Add(queued...)
	speaker.Unlock()
}

// Close silences the mixer and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.enabled = false
}
