package audio

import (
	"math/rand"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/goop/event"
	"github.com/lixenwraith/goop/parameter"
)

// splashCue is a short wet noise burst
func splashCue(cfg *Config, rng *rand.Rand) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	noise := NewNoise(parameter.SplashCueDuration, rate, rng)
	body := NewSweep(320, 120, parameter.SplashCueDuration, WaveSine, rate)
	mixed := beep.Mix(gain(noise, 0.4), gain(body, 0.6))
	return NewEnvelope(mixed, parameter.SplashCueDuration, parameter.SplashCueAttack, parameter.SplashCueRelease, rate)
}

// igniteCue is a rising noise whoosh over a low saw rumble
func igniteCue(cfg *Config, rng *rand.Rand) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := parameter.IgniteCueDuration
	noise := NewEnvelope(NewNoise(d, rate, rng), d, parameter.IgniteCueAttack, parameter.IgniteCueRelease, rate)
	rumble := NewEnvelope(NewSweep(60, 110, d, WaveSaw, rate), d, parameter.IgniteCueAttack, parameter.IgniteCueRelease, rate)
	return beep.Mix(gain(noise, 0.6), gain(rumble, 0.4))
}

// zapCue is a buzzing square sweep
func zapCue(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := parameter.ZapCueDuration
	osc := NewSweep(1400, 600, d, WaveSquare, rate)
	return NewEnvelope(osc, d, parameter.ZapCueAttack, parameter.ZapCueRelease, rate)
}

// freezeCue is a two-note descending sine chime
func freezeCue(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d1, d2 := parameter.FreezeCueNote1Duration, parameter.FreezeCueNote2Duration

	// E6 then B5
	n1 := NewEnvelope(NewTone(1318.51, d1, WaveSine, rate), d1, parameter.FreezeCueAttack, min(parameter.FreezeCueNoteRelease, d1/2), rate)
	n2 := NewEnvelope(NewTone(987.77, d2, WaveSine, rate), d2, parameter.FreezeCueAttack, parameter.FreezeCueNoteRelease, rate)
	return beep.Seq(n1, n2)
}

// fadeCue is a soft falling sine
func fadeCue(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := parameter.FadeCueDuration
	return NewEnvelope(NewSweep(440, 220, d, WaveSine, rate), d, parameter.FadeCueAttack, parameter.FadeCueRelease, rate)
}

// Cue builds the streamer for an effect type at its configured volume, nil for unknown types
func Cue(t event.EffectType, cfg *Config, rng *rand.Rand) beep.Streamer {
	var s beep.Streamer
	switch t {
	case event.EffectSplash, event.EffectEvict:
		s = splashCue(cfg, rng)
	case event.EffectIgnite:
		s = igniteCue(cfg, rng)
	case event.EffectElectrify:
		s = zapCue(cfg)
	case event.EffectFreeze:
		s = freezeCue(cfg)
	case event.EffectFade:
		s = fadeCue(cfg)
	default:
		return nil
	}
	return gain(s, cfg.Volume(t))
}
