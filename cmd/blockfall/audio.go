package main

import (
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// sounds plays synthesized effects for match signals. It implements
// match.Audio and debugui.Mixer.
type sounds struct {
	ctx *audio.Context
	pcm map[string][]byte

	mu     sync.Mutex
	volume float64
	muted  bool
}

func newSounds(volume float64, muted bool) *sounds {
	s := &sounds{
		ctx:    audio.NewContext(sampleRate),
		pcm:    make(map[string][]byte, len(effects)),
		volume: volume,
		muted:  muted,
	}
	for signal, tones := range effects {
		s.pcm[string(signal)] = synthesize(tones)
	}
	return s
}

// PlayEvent starts the effect for name and returns immediately.
func (s *sounds) PlayEvent(name string) {
	s.mu.Lock()
	volume, muted := s.volume, s.muted
	s.mu.Unlock()
	if muted || volume == 0 {
		return
	}

	pcm, ok := s.pcm[name]
	if !ok {
		log.Printf("audio: no effect for %q", name)
		return
	}
	p := s.ctx.NewPlayerFromBytes(pcm)
	p.SetVolume(volume)
	p.Play()
}

func (s *sounds) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

func (s *sounds) SetVolume(v float64) {
	s.mu.Lock()
	s.volume = min(max(v, 0), 1)
	s.mu.Unlock()
}

func (s *sounds) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

func (s *sounds) SetMuted(m bool) {
	s.mu.Lock()
	s.muted = m
	s.mu.Unlock()
}

// ToggleMute flips the mute state and returns the new one.
func (s *sounds) ToggleMute() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = !s.muted
	return s.muted
}
