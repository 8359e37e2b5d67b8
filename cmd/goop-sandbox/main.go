package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/goop/audio"
	"github.com/lixenwraith/goop/core"
	"github.com/lixenwraith/goop/engine"
	"github.com/lixenwraith/goop/parameter"
	"github.com/lixenwraith/goop/render"
	"github.com/lixenwraith/goop/substance"
	"github.com/lixenwraith/goop/terrain"
)

var (
	configFlag = flag.String("config", "", "Substance TOML file (builtin set when empty)")
	widthFlag  = flag.Int("width", parameter.DefaultGridWidth, "Grid width")
	heightFlag = flag.Int("height", parameter.DefaultGridHeight, "Grid height")
	seedFlag   = flag.Int64("seed", time.Now().UnixNano(), "Terrain and splash seed")
	scaleFlag  = flag.Int("scale", 4, "Corridor width of generated terrain")
	braidFlag  = flag.Float64("braid", 0.3, "Terrain braiding [0.0 - 1.0]")
	pitsFlag   = flag.Float64("pits", 0.15, "Chance a room becomes a pit")
	audioFlag  = flag.Bool("audio", true, "Play effect cues")
	logFlag    = flag.String("log", "", "Log file (logging discarded when empty)")
)

func main() {
	flag.Parse()

	if *logFlag != "" {
		f, err := os.OpenFile(*logFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	defs, err := loadDefinitions(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load substances: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}

	// Restore the terminal before printing a crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mGOOP SANDBOX CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	screen.EnableMouse()
	screen.HideCursor()

	dims := core.Dims{W: *widthFlag, H: *heightFlag}
	sb, err := newSandbox(screen, dims, defs, *seedFlag)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to build engine: %v\n", err)
		os.Exit(1)
	}

	cfg := audio.LoadConfig()
	cfg.Enabled = cfg.Enabled && *audioFlag
	if cfg.Enabled {
		player := audio.NewPlayer(cfg)
		if err := player.Init(); err != nil {
			log.Printf("[goop] audio unavailable: %v", err)
		} else {
			defer player.Close()
			sb.player = player
		}
	}

	sb.run()
}

func loadDefinitions(path string) ([]substance.Definition, error) {
	if path == "" {
		return substance.Builtin(), nil
	}
	return substance.Load(path)
}

func generateTerrain(dims core.Dims, seed int64) *terrain.Map {
	return terrain.Generate(terrain.GenConfig{
		Dims:      dims,
		Scale:     *scaleFlag,
		Braiding:  *braidFlag,
		PitChance: *pitsFlag,
		Seed:      seed,
	})
}

// sandbox wires one engine to the screen, the mouse, and the audio player
type sandbox struct {
	screen   tcell.Screen
	eng      *engine.Engine
	terrain  *terrain.Map
	renderer *render.TerminalRenderer
	player   *audio.Player

	selected int
	radius   int
	cursor   core.Point
	zone     engine.ZoneID
	paused   bool
	seed     int64
	source   int
}

func newSandbox(screen tcell.Screen, dims core.Dims, defs []substance.Definition, seed int64) (*sandbox, error) {
	tm := generateTerrain(dims, seed)
	eng := engine.New(engine.Config{Dims: dims, Terrain: tm, Seed: seed})
	for i := range defs {
		if _, err := eng.AddStore(&defs[i]); err != nil {
			return nil, err
		}
	}

	sb := &sandbox{
		screen:   screen,
		eng:      eng,
		terrain:  tm,
		renderer: render.NewTerminalRenderer(screen, eng, tm, 0, 1),
		radius:   3,
		seed:     seed,
	}
	sb.renderer.DrawAll()
	return sb, nil
}

func (sb *sandbox) store() *engine.Store {
	return sb.eng.Stores()[sb.selected]
}

func (sb *sandbox) run() {
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go func() {
		for {
			ev := sb.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()
	defer close(quit)

	ticker := time.NewTicker(parameter.SimTickInterval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev := <-events:
			if !sb.handle(ev) {
				return
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if !sb.paused {
				sb.eng.Tick(dt)
				sb.eng.ResumePropagation(0)
			}
			if sb.player != nil {
				sb.player.Handle(sb.eng.Effects().Consume(), now)
			} else {
				sb.eng.Effects().Consume()
			}
			sb.renderer.RenderDirty()
			sb.drawStatus()
		}
	}
}

// handle applies one input event, returning false to quit
func (sb *sandbox) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		sb.screen.Sync()
		sb.renderer.DrawAll()
	case *tcell.EventMouse:
		x, y := ev.Position()
		sb.cursor = core.Point{X: x, Y: y - 1}
		switch {
		case ev.Buttons()&tcell.Button1 != 0:
			sb.source++
			_, _ = sb.eng.PlaceArea(sb.store().ID(), engine.AreaFill{
				Points:   []core.Point{sb.cursor},
				Radius:   sb.radius,
				SourceID: sb.source,
				Frame:    sb.eng.Frame(),
			})
		case ev.Buttons()&tcell.Button2 != 0:
			_, _ = sb.eng.RemoveCircle(sb.cursor, sb.radius)
		}
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			return sb.handleRune(ev.Rune())
		}
	}
	return true
}

func (sb *sandbox) handleRune(r rune) bool {
	switch {
	case r >= '1' && r <= '9':
		if i := int(r - '1'); i < len(sb.eng.Stores()) {
			sb.selected = i
		}
	case r == 'q':
		return false
	case r == '+' || r == '=':
		sb.radius = min(sb.radius+1, 20)
	case r == '-':
		sb.radius = max(sb.radius-1, 0)
	case r == 'i':
		_, _ = sb.eng.IgniteCircle(sb.cursor, sb.radius)
	case r == 'e':
		sb.eng.TriggerPropagation(sb.cursor)
	case r == 'f':
		_, _ = sb.eng.FreezeCircle(sb.cursor, sb.radius)
	case r == 'x':
		_, _ = sb.eng.Extinguish(sb.cursor)
	case r == 'z':
		if sb.zone != 0 {
			sb.eng.RemoveExclusionZone(sb.zone)
			sb.zone = 0
		} else {
			sb.zone = sb.eng.AddExclusionZone(sb.cursor, sb.radius)
		}
	case r == 'p':
		sb.paused = !sb.paused
	case r == 'r':
		sb.reload()
	case r == 'v':
		if err := sb.eng.Validate(); err != nil {
			log.Printf("[goop] validate: %v", err)
		}
	}
	return true
}

// reload is a level transition: gate placements, clear every store, swap terrain
func (sb *sandbox) reload() {
	sb.eng.SetLoading(true)
	sb.eng.ResetAll()
	sb.zone = 0
	sb.seed++
	sb.terrain = generateTerrain(sb.eng.Layout().Dims, sb.seed)
	sb.eng.SetTerrain(sb.terrain)
	sb.renderer.SetTerrain(sb.terrain)
	sb.eng.SetLoading(false)
	sb.renderer.DrawAll()
}

func (sb *sandbox) drawStatus() {
	state := ""
	if sb.paused {
		state = " [paused]"
	}
	suffix := fmt.Sprintf("| %s r=%d%s | LMB place RMB erase i e f x z p r q", sb.store().Def().Name, sb.radius, state)
	sb.renderer.DrawStatus(0, suffix)
}
