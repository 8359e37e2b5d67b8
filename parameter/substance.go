package parameter

// Substance defaults, applied when a definition leaves a field zero
const (
	// DefaultLifespan is the full remaining lifespan (seconds) of a freshly placed cell
	DefaultLifespan = 10.0

	// DefaultFadeThreshold is the remaining lifespan (seconds) below which a cell is fading
	DefaultFadeThreshold = 1.5

	// DefaultFalloffWeight scales how much an area-fill edge shortens lifespan
	// lifespan = full * (1 - fraction*weight)
	DefaultFalloffWeight = 0.5

	// DefaultSplashChance is the probability a placement fires its one-shot effect
	DefaultSplashChance = 0.02

	// DefaultBurnDuration is the lifespan (seconds) a burning cell is cut to
	DefaultBurnDuration = 3.0

	// DefaultIgniteSpreadDelay is the delay (seconds) before fire jumps to a neighbor
	DefaultIgniteSpreadDelay = 0.15

	// DefaultElectrifyDuration is the charge time (seconds) of an electrified cell
	DefaultElectrifyDuration = 2.0

	// DefaultFreezeDuration is the time (seconds) a frozen cell stays frozen
	DefaultFreezeDuration = 5.0

	// MinPlacedLifespan floors area-fill lifespans so edge cells outlive one tick
	MinPlacedLifespan = 0.1
)
