package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/goop/event"
	"github.com/lixenwraith/goop/parameter"
)

const testRate = beep.SampleRate(44100)

// drain streams s to completion and returns every sample
func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
	t.Fatal("streamer never finished")
	return nil
}

func TestToneWaves(t *testing.T) {
	tests := []struct {
		name string
		wave Wave
		ok   func(v float64) bool
	}{
		{"sine", WaveSine, func(v float64) bool { return v >= -1 && v <= 1 }},
		{"square", WaveSquare, func(v float64) bool { return v == 1 || v == -1 }},
		{"saw", WaveSaw, func(v float64) bool { return v >= -1 && v < 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := drain(t, NewTone(440, 50*time.Millisecond, tt.wave, testRate))
			if len(samples) != testRate.N(50*time.Millisecond) {
				t.Fatalf("len = %d, want %d", len(samples), testRate.N(50*time.Millisecond))
			}
			for i, s := range samples {
				if !tt.ok(s[0]) || s[0] != s[1] {
					t.Fatalf("sample %d = %v", i, s)
				}
			}
		})
	}
}

func TestNoiseDeterministic(t *testing.T) {
	a := drain(t, NewNoise(10*time.Millisecond, testRate, nil))
	b := drain(t, NewNoise(10*time.Millisecond, testRate, nil))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs with same seed", i)
		}
		if a[i][0] < -1 || a[i][0] > 1 {
			t.Fatalf("sample %d out of range", i)
		}
	}
}

func TestEnvelopeBoundsAndRamps(t *testing.T) {
	d := 100 * time.Millisecond
	// 0 Hz square holds phase 0, a constant +1 source
	src := NewTone(0, time.Second, WaveSquare, testRate)
	env := NewEnvelope(src, d, 10*time.Millisecond, 20*time.Millisecond, testRate)

	samples := drain(t, env)
	if len(samples) != testRate.N(d) {
		t.Fatalf("len = %d, want %d", len(samples), testRate.N(d))
	}
	if samples[0][0] != 0 {
		t.Errorf("first sample = %v, want 0", samples[0][0])
	}
	mid := samples[len(samples)/2][0]
	if mid != 1 {
		t.Errorf("sustain = %v, want 1", mid)
	}
	last := samples[len(samples)-1][0]
	if last <= 0 || last > 0.01 {
		t.Errorf("last sample = %v, want small positive", last)
	}
}

func TestCueForEveryEffect(t *testing.T) {
	cfg := DefaultConfig()
	for ty := event.EffectSplash; ty <= event.EffectEvict; ty++ {
		t.Run(ty.String(), func(t *testing.T) {
			s := Cue(ty, cfg, nil)
			if s == nil {
				t.Fatal("nil cue")
			}
			samples := drain(t, s)
			if len(samples) == 0 {
				t.Fatal("empty cue")
			}
			peak := 0.0
			for _, v := range samples {
				if math.IsNaN(v[0]) {
					t.Fatal("NaN sample")
				}
				peak = max(peak, math.Abs(v[0]))
			}
			if peak == 0 {
				t.Error("silent cue")
			}
		})
	}
	if Cue(event.EffectType(200), cfg, nil) != nil {
		t.Error("unknown effect produced a cue")
	}
}

func TestFreezeCueLength(t *testing.T) {
	samples := drain(t, Cue(event.EffectFreeze, DefaultConfig(), nil))
	want := testRate.N(parameter.FreezeCueNote1Duration) + testRate.N(parameter.FreezeCueNote2Duration)
	if len(samples) != want {
		t.Errorf("len = %d, want %d", len(samples), want)
	}
}

func TestZeroVolumeIsSilent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MasterVolume = 0
	for _, v := range drain(t, Cue(event.EffectElectrify, cfg, nil)) {
		if v[0] != 0 {
			t.Fatalf("sample %v at zero volume", v)
		}
	}
}

func TestPlayerRateLimit(t *testing.T) {
	p := NewPlayer(DefaultConfig())
	now := time.Unix(0, 0)
	burst := []event.Effect{
		{Type: event.EffectSplash},
		{Type: event.EffectSplash},
		{Type: event.EffectIgnite},
	}

	if n := p.Handle(burst, now); n != 2 {
		t.Errorf("first batch accepted %d, want 2", n)
	}
	if n := p.Handle(burst[:1], now.Add(parameter.MinCueGap/2)); n != 0 {
		t.Errorf("within gap accepted %d, want 0", n)
	}
	if n := p.Handle(burst[:1], now.Add(parameter.MinCueGap)); n != 1 {
		t.Errorf("after gap accepted %d, want 1", n)
	}
	if p.Pending() != 3 {
		t.Errorf("Pending = %d, want 3", p.Pending())
	}
}

func TestPlayerDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false
	p := NewPlayer(cfg)
	if err := p.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if n := p.Handle([]event.Effect{{Type: event.EffectFade}}, time.Now()); n != 0 {
		t.Errorf("disabled player accepted %d cues", n)
	}
	p.Close()
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("GOOP_AUDIO_ENABLED", "false")
	t.Setenv("GOOP_MASTER_VOLUME", "150")
	t.Setenv("GOOP_CUE_VOLUMES", `{"ignite":0.25,"bogus":1}`)
	t.Setenv("GOOP_SAMPLE_RATE", "48000")

	cfg := LoadConfig()
	if cfg.Enabled {
		t.Error("Enabled = true")
	}
	if cfg.MasterVolume != 1 {
		t.Errorf("MasterVolume = %v, want clamped 1", cfg.MasterVolume)
	}
	if cfg.Volumes[event.EffectIgnite] != 0.25 {
		t.Errorf("ignite volume = %v", cfg.Volumes[event.EffectIgnite])
	}
	if cfg.SampleRate != 48000 {
		t.Errorf("SampleRate = %d", cfg.SampleRate)
	}
	if got := cfg.Volume(event.EffectIgnite); got != 0.25 {
		t.Errorf("Volume = %v", got)
	}
}
