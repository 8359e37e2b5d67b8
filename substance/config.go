package substance

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// File is the on-disk layout of a substance config
//
//	[[substance]]
//	name = "oil"
//	flammable = true
type File struct {
	Substances []Definition `toml:"substance"`
}

// Parse decodes and normalizes TOML substance definitions, rejecting unknown keys
func Parse(data []byte) ([]Definition, error) {
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode substance config: %w", err)
	}
	return finish(f, md)
}

// Load reads and parses a substance config file
func Load(path string) ([]Definition, error) {
	var f File
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to load substance config %s: %w", path, err)
	}
	return finish(f, md)
}

func finish(f File, md toml.MetaData) ([]Definition, error) {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown substance config keys: %s", strings.Join(keys, ", "))
	}
	if len(f.Substances) == 0 {
		return nil, fmt.Errorf("substance config defines no substances")
	}

	seen := make(map[string]bool, len(f.Substances))
	for i := range f.Substances {
		d := &f.Substances[i]
		if err := d.Normalize(); err != nil {
			return nil, err
		}
		if seen[d.Name] {
			return nil, fmt.Errorf("duplicate substance %q", d.Name)
		}
		seen[d.Name] = true
	}
	return f.Substances, nil
}

// builtinConfig is the default substance set used when no config file is given
const builtinConfig = `
[[substance]]
name = "goop"
lifespan = 12.0
electrifiable = true
freezable = true
color = "#6fbf3f"

[[substance]]
name = "oil"
lifespan = 20.0
merge = "max"
flammable = true
fire_overrides_lifespan = true
burn_duration = 2.5
color = "#5a4a2a"

[[substance]]
name = "water"
lifespan = 8.0
merge = "override"
electrifiable = true
freezable = true
terrain = ["floor", "pit"]
color = "#3f7fdf"

[[substance]]
name = "napalm"
lifespan = 6.0
flammable = true
self_ignite_delay = 1.0
inherit_fire = true
color = "#df6f1f"

[[substance]]
name = "tar"
lifespan = -1.0
flammable = true
burn_duration = 4.0
color = "#202020"
`

// Builtin returns the default substance set
func Builtin() []Definition {
	defs, err := Parse([]byte(builtinConfig))
	if err != nil {
		panic(fmt.Sprintf("builtin substance config invalid: %v", err))
	}
	return defs
}
