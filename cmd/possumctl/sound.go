package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

const sampleRate = beep.SampleRate(44100)

// cues plays short tones for gameplay transitions. A zero value is silent.
type cues struct {
	enabled bool
}

// newCues opens the speaker. Audio failure is not fatal, the viewer runs silent.
func newCues(enabled bool, log *zap.Logger) *cues {
	if !enabled {
		return &cues{}
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.Warn("audio init failed, running without sound", zap.Error(err))
		return &cues{}
	}
	return &cues{enabled: true}
}

func (c *cues) blip(freq float64, d time.Duration) {
	if !c.enabled {
		return
	}
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	quiet := &effects.Volume{Streamer: beep.Take(sampleRate.N(d), sine), Base: 2, Volume: -3}
	speaker.Play(quiet)
}

func (c *cues) jump()    { c.blip(660, 60*time.Millisecond) }
func (c *cues) land()    { c.blip(220, 40*time.Millisecond) }
func (c *cues) ceiling() { c.blip(110, 80*time.Millisecond) }

func (c *cues) close() {
	if c.enabled {
		speaker.Close()
	}
}
