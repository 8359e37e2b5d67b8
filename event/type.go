package event

import "github.com/lixenwraith/goop/core"

// EffectType identifies a one-shot effect trigger emitted by the engine
type EffectType uint8

const (
	// EffectSplash fires on a rate-limited fraction of placements
	// Trigger: Store.Place create path | Consumer: audio, renderer
	EffectSplash EffectType = iota

	// EffectIgnite fires when a cell catches fire
	// Trigger: Engine.Ignite, ignition timer expiry
	EffectIgnite

	// EffectElectrify fires once per propagation event at its start cell
	// Trigger: Propagator.Trigger
	EffectElectrify

	// EffectFreeze fires when a cell freezes
	// Trigger: Engine.Freeze
	EffectFreeze

	// EffectFade fires once per cell when it crosses the fade threshold
	// Trigger: lifecycle tick
	EffectFade

	// EffectEvict fires when a placement displaces another store's cell
	// Trigger: Store.Place create path
	EffectEvict

	effectTypeCount
)

var effectNames = [effectTypeCount]string{"splash", "ignite", "electrify", "freeze", "fade", "evict"}

func (t EffectType) String() string {
	if t >= effectTypeCount {
		return "unknown"
	}
	return effectNames[t]
}

// Effect is one trigger point, the engine never interprets it further
type Effect struct {
	Type  EffectType
	Pos   core.Point
	Store uint8
	Frame int64
}
