package glint

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// AudioSettings configures the audio engine. Zero values pick the defaults:
// 44.1 kHz with a 100 ms buffer.
type AudioSettings struct {
	SampleRate int     `yaml:"sample_rate"`
	BufferMs   int     `yaml:"buffer_ms"`
	Volume     float64 `yaml:"volume"`
}

// Audio is the playback engine, lazily created by Window.Audio. The speaker
// is initialized on first playback, not at construction, so creating a
// Window on a machine without audio hardware stays cheap and error-free
// until a sound is actually played.
type Audio struct {
	mu         sync.Mutex
	sampleRate beep.SampleRate
	bufferMs   int
	volume     float64
	inited     bool
	initErr    error
}

// NewAudio returns an engine with the given settings.
func NewAudio(cfg AudioSettings) *Audio {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 44100
	}
	if cfg.BufferMs <= 0 {
		cfg.BufferMs = 100
	}
	return &Audio{
		sampleRate: beep.SampleRate(cfg.SampleRate),
		bufferMs:   cfg.BufferMs,
		volume:     cfg.Volume,
	}
}

func (a *Audio) ensureSpeaker() error {
	if a.inited {
		return a.initErr
	}
	a.inited = true
	buf := a.sampleRate.N(time.Duration(a.bufferMs) * time.Millisecond)
	if err := speaker.Init(a.sampleRate, buf); err != nil {
		a.initErr = fmt.Errorf("init speaker: %w", err)
	}
	return a.initErr
}

// SetVolume adjusts playback gain in doublings: 0 is unity, -1 half, +1
// double. Applies to sounds started after the call.
func (a *Audio) SetVolume(v float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.volume = v
}

// PlayWAV decodes a WAV stream and plays it asynchronously, closing the
// reader when playback finishes.
func (a *Audio) PlayWAV(r io.ReadCloser) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.ensureSpeaker(); err != nil {
		return err
	}

	streamer, format, err := wav.Decode(r)
	if err != nil {
		return fmt.Errorf("decode wav: %w", err)
	}

	var s beep.Streamer = streamer
	if format.SampleRate != a.sampleRate {
		s = beep.Resample(4, format.SampleRate, a.sampleRate, streamer)
	}
	if a.volume != 0 {
		s = &effects.Volume{Streamer: s, Base: 2, Volume: a.volume}
	}

	speaker.Play(beep.Seq(s, beep.Callback(func() {
		streamer.Close()
	})))
	return nil
}

// PlayFile plays a WAV file from disk.
func (a *Audio) PlayFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open sound %s: %w", path, err)
	}
	if err := a.PlayWAV(f); err != nil {
		f.Close()
		return err
	}
	return nil
}
