package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 50 * time.Millisecond

	// MinCueGap is the minimum spacing between two cues of the same kind
	MinCueGap = 60 * time.Millisecond
)

// Splash Cue (placement)
const (
	SplashCueDuration = 90 * time.Millisecond
	SplashCueAttack   = 4 * time.Millisecond
	SplashCueRelease  = 60 * time.Millisecond
)

// Ignite Cue
const (
	IgniteCueDuration = 250 * time.Millisecond
	IgniteCueAttack   = 20 * time.Millisecond
	IgniteCueRelease  = 180 * time.Millisecond
)

// Zap Cue (electrify)
const (
	ZapCueDuration = 120 * time.Millisecond
	ZapCueAttack   = 2 * time.Millisecond
	ZapCueRelease  = 40 * time.Millisecond
)

// Freeze Cue
const (
	FreezeCueAttack        = 5 * time.Millisecond
	FreezeCueNoteRelease   = 120 * time.Millisecond
	FreezeCueNote1Duration = 100 * time.Millisecond
	FreezeCueNote2Duration = 200 * time.Millisecond
)

// Fade Cue
const (
	FadeCueDuration = 200 * time.Millisecond
	FadeCueAttack   = 100 * time.Millisecond
	FadeCueRelease  = 100 * time.Millisecond
)
