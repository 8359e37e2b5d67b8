package audio

import (
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/goop/event"
	"github.com/lixenwraith/goop/parameter"
)

// Player mixes engine effect cues into the speaker
// Cues of the same type closer than parameter.MinCueGap are dropped
type Player struct {
	mu          sync.Mutex
	cfg         *Config
	mixer       *beep.Mixer
	initialized bool
	last        map[event.EffectType]time.Time
	seed        int64
}

// NewPlayer creates a player, the speaker is not touched until Init
func NewPlayer(cfg *Config) *Player {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Player{
		cfg:   cfg,
		mixer: &beep.Mixer{},
		last:  make(map[event.EffectType]time.Time),
	}
}

// Init opens the speaker and starts the mixer, a disabled config is a no-op
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || !p.cfg.Enabled {
		return nil
	}
	rate := beep.SampleRate(p.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	log.Printf("[goop] audio started at %d Hz", p.cfg.SampleRate)
	return nil
}

// Close silences the mixer and stops the speaker
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

// Handle queues cues for a batch of effects at time now, returning how many were accepted
func (p *Player) Handle(effects []event.Effect, now time.Time) int {
	if !p.cfg.Enabled || len(effects) == 0 {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	var batch []beep.Streamer
	for _, ef := range effects {
		if last, ok := p.last[ef.Type]; ok && now.Sub(last) < parameter.MinCueGap {
			continue
		}
		p.seed++
		s := Cue(ef.Type, p.cfg, rand.New(rand.NewSource(p.seed)))
		if s == nil {
			continue
		}
		p.last[ef.Type] = now
		batch = append(batch, s)
	}
	if len(batch) == 0 {
		return 0
	}

	if p.initialized {
		speaker.Lock()
		p.mixer.Add(batch...)
		speaker.Unlock()
	} else {
		p.mixer.Add(batch...)
	}
	return len(batch)
}

// Pending returns the number of cues still playing in the mixer
func (p *Player) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return p.mixer.Len()
}
