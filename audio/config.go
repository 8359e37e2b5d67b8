package audio

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/lixenwraith/goop/event"
	"github.com/lixenwraith/goop/parameter"
)

// Config holds playback settings
type Config struct {
	Enabled      bool
	MasterVolume float64
	SampleRate   int
	// Volumes scales each cue, missing entries play at full volume
	Volumes map[event.EffectType]float64
}

// DefaultConfig returns audio enabled at moderate volume with fade and evict cues quieter
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		MasterVolume: 0.5,
		SampleRate:   parameter.AudioSampleRate,
		Volumes: map[event.EffectType]float64{
			event.EffectSplash:    0.6,
			event.EffectIgnite:    0.8,
			event.EffectElectrify: 0.7,
			event.EffectFreeze:    0.7,
			event.EffectFade:      0.3,
			event.EffectEvict:     0.4,
		},
	}
}

// Volume returns the effective volume for a cue
func (c *Config) Volume(t event.EffectType) float64 {
	v, ok := c.Volumes[t]
	if !ok {
		v = 1
	}
	return v * c.MasterVolume
}

// LoadConfig overlays GOOP_AUDIO_* environment variables on the defaults
//
//	GOOP_AUDIO_ENABLED=false
//	GOOP_MASTER_VOLUME=0..100
//	GOOP_CUE_VOLUMES='{"splash":0.2,"ignite":1}'
//	GOOP_SAMPLE_RATE=48000
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if v := os.Getenv("GOOP_AUDIO_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Enabled = b
		}
	}

	if v := os.Getenv("GOOP_MASTER_VOLUME"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MasterVolume = min(max(float64(n)/100, 0), 1)
		}
	}

	if v := os.Getenv("GOOP_CUE_VOLUMES"); v != "" {
		var vols map[string]float64
		if err := json.Unmarshal([]byte(v), &vols); err == nil {
			for t := event.EffectSplash; t <= event.EffectEvict; t++ {
				if vol, ok := vols[t.String()]; ok {
					cfg.Volumes[t] = vol
				}
			}
		}
	}

	if v := os.Getenv("GOOP_SAMPLE_RATE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SampleRate = n
		}
	}

	return cfg
}
