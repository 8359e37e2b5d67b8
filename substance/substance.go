package substance

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/goop/parameter"
	"github.com/lixenwraith/goop/terrain"
)

// MergePolicy decides how a re-placement refreshes an existing cell's lifespan
type MergePolicy uint8

const (
	// MergeMax keeps the larger of current and new lifespan
	MergeMax MergePolicy = iota
	// MergeOverride replaces the lifespan with the new value
	MergeOverride
	// MergeIgnore leaves the lifespan untouched
	MergeIgnore
)

var mergeNames = [...]string{"max", "override", "ignore"}

func (m MergePolicy) String() string {
	if int(m) < len(mergeNames) {
		return mergeNames[m]
	}
	return fmt.Sprintf("merge(%d)", uint8(m))
}

// UnmarshalText lets TOML configs write merge = "override"
func (m *MergePolicy) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for i, n := range mergeNames {
		if n == s {
			*m = MergePolicy(i)
			return nil
		}
	}
	return fmt.Errorf("unknown merge policy %q", s)
}

func (m MergePolicy) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Definition is the behavior of one substance type
// Zero numeric fields are filled from parameter defaults by Normalize
type Definition struct {
	Name string `toml:"name"`

	// Lifespan is the full lifespan in seconds, negative makes every cell permanent
	Lifespan      float64 `toml:"lifespan"`
	FadeThreshold float64 `toml:"fade_threshold"`
	FalloffWeight float64 `toml:"falloff_weight"`

	Merge                 MergePolicy `toml:"merge"`
	FireOverridesLifespan bool        `toml:"fire_overrides_lifespan"`

	Flammable         bool    `toml:"flammable"`
	BurnDuration      float64 `toml:"burn_duration"`
	IgniteSpreadDelay float64 `toml:"ignite_spread_delay"`
	SelfIgniteDelay   float64 `toml:"self_ignite_delay"` // 0 disables
	InheritFire       bool    `toml:"inherit_fire"`

	Electrifiable     bool    `toml:"electrifiable"`
	ElectrifyDuration float64 `toml:"electrify_duration"`

	Freezable      bool    `toml:"freezable"`
	FreezeDuration float64 `toml:"freeze_duration"`

	SplashChance float64 `toml:"splash_chance"`

	// Terrain lists allowed class names, empty means floor only
	Terrain []string `toml:"terrain"`

	// Color is a "#rrggbb" hint for renderers, the engine ignores it
	Color string `toml:"color"`

	allowed terrain.ClassSet
}

// Normalize fills defaults and resolves terrain names, it must run before the definition is used
func (d *Definition) Normalize() error {
	if d.Name == "" {
		return fmt.Errorf("substance definition without name")
	}
	if d.Lifespan == 0 {
		d.Lifespan = parameter.DefaultLifespan
	}
	if d.FadeThreshold == 0 {
		d.FadeThreshold = parameter.DefaultFadeThreshold
	}
	if d.FalloffWeight == 0 {
		d.FalloffWeight = parameter.DefaultFalloffWeight
	}
	if d.FalloffWeight < 0 || d.FalloffWeight > 1 {
		return fmt.Errorf("substance %q: falloff_weight %v outside [0,1]", d.Name, d.FalloffWeight)
	}
	if d.BurnDuration == 0 {
		d.BurnDuration = parameter.DefaultBurnDuration
	}
	if d.IgniteSpreadDelay == 0 {
		d.IgniteSpreadDelay = parameter.DefaultIgniteSpreadDelay
	}
	if d.ElectrifyDuration == 0 {
		d.ElectrifyDuration = parameter.DefaultElectrifyDuration
	}
	if d.FreezeDuration == 0 {
		d.FreezeDuration = parameter.DefaultFreezeDuration
	}
	if d.SplashChance == 0 {
		d.SplashChance = parameter.DefaultSplashChance
	}
	if d.SplashChance < 0 || d.SplashChance > 1 {
		return fmt.Errorf("substance %q: splash_chance %v outside [0,1]", d.Name, d.SplashChance)
	}

	d.allowed = 0
	if len(d.Terrain) == 0 {
		d.allowed = terrain.SetOf(terrain.Floor)
	}
	for _, name := range d.Terrain {
		c, err := terrain.ParseClass(name)
		if err != nil {
			return fmt.Errorf("substance %q: %w", d.Name, err)
		}
		d.allowed |= terrain.SetOf(c)
	}
	return nil
}

// Permanent reports whether cells of this substance never expire
func (d *Definition) Permanent() bool {
	return d.Lifespan < 0
}

// Allows reports whether the terrain class may hold this substance
func (d *Definition) Allows(c terrain.Class) bool {
	return d.allowed.Has(c)
}

// LifespanFor converts a falloff fraction (0 = center, 1 = edge) to an initial lifespan
func (d *Definition) LifespanFor(fraction float64) float64 {
	if d.Permanent() {
		return -1
	}
	if fraction < 0 {
		fraction = 0
	} else if fraction > 1 {
		fraction = 1
	}
	l := d.Lifespan * (1 - fraction*d.FalloffWeight)
	if l < parameter.MinPlacedLifespan {
		l = parameter.MinPlacedLifespan
	}
	return l
}

// MergeLifespan applies the policy to an existing lifespan
// Permanent cells are never shrunk, the bool result reports whether the merge was refused for that reason
func (d *Definition) MergeLifespan(current, incoming float64, burning bool) (float64, bool) {
	if current < 0 {
		return current, incoming >= 0
	}
	if incoming < 0 {
		return incoming, false
	}
	if burning && d.FireOverridesLifespan {
		return current, false
	}
	switch d.Merge {
	case MergeOverride:
		return incoming, false
	case MergeIgnore:
		return current, false
	default:
		if incoming > current {
			return incoming, false
		}
		return current, false
	}
}
