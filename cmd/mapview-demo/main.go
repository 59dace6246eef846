package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/mapview/config"
	"github.com/lixenwraith/mapview/graphics"
	"github.com/lixenwraith/mapview/logging"
	"github.com/lixenwraith/mapview/mapview"
	"github.com/lixenwraith/mapview/terminal"
	"github.com/lixenwraith/mapview/world"
)

var (
	configFlag = flag.String("config", "", "Path to YAML configuration")
	seedFlag   = flag.Int64("seed", 1337, "World generation seed")
	logFlag    = flag.String("log", "", "Diagnostic log file (empty disables logging)")
)

const frameInterval = 33 * time.Millisecond

func main() {
	// Panic recovery: restore the terminal before printing the trace,
	// otherwise it lands on a raw-mode screen.
	var screen tcell.Screen
	defer func() {
		if r := recover(); r != nil {
			if screen != nil {
				screen.Fini()
			}
			fmt.Fprintf(os.Stderr, "mapview-demo crashed: %v\n", r)
			fmt.Fprintf(os.Stderr, "%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Discard()
	if *logFlag != "" {
		f, err := os.OpenFile(*logFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = logging.New(f, logging.ParseLevel(cfg.Log.GetLevel()))
	}

	screen, err = tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "terminal: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "terminal: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	backend := terminal.NewBackend(screen)

	store := world.NewTileMap(world.DefaultAwareRange)
	player := generateWorld(store, *seedFlag)

	view, err := mapview.New(store, backend, logger, mapview.SystemClock())
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "mapview: %v\n", err)
		os.Exit(1)
	}
	store.AddObserver(view)

	applyConfig(view, cfg)
	view.FollowCreature(player)
	view.SetCrosshairTexture(terminal.NewSolidTexture(
		graphics.Size{Width: 2, Height: 2},
		graphics.Color{R: 255, G: 255, B: 0, A: 160},
	))

	run(screen, backend, view, store, player, cfg, logger)
}

func applyConfig(view *mapview.MapView, cfg *config.Config) {
	_ = view.SetVisibleDimension(graphics.Size{
		Width:  cfg.View.GetWidth(),
		Height: cfg.View.GetHeight(),
	})
	view.SetAutoViewMode(cfg.View.AutoViewMode)
	view.SetMultifloor(cfg.View.Multifloor)
	view.SetDrawNames(cfg.Draw.Names)
	view.SetDrawHealthBars(cfg.Draw.HealthBars)
	view.SetDrawManaBar(cfg.Draw.ManaBar)
	view.SetDrawLights(cfg.Draw.Lights)
	view.SetDrawTexts(cfg.Draw.Texts)
	view.SetDrawFloorShadowing(cfg.Draw.FloorShadowing)
}

func run(screen tcell.Screen, backend *terminal.Backend, view *mapview.MapView, store *world.TileMap, player *world.BasicCreature, cfg *config.Config, logger *logging.Logger) {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(quit)
				return
			}
			events <- ev
		}
	}()

	fadeIn := cfg.Fade.GetFadeIn().Seconds()
	fadeOut := cfg.Fade.GetFadeOut().Seconds()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-quit:
			return
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				backend.HandleResize()
			case *tcell.EventKey:
				if !handleKey(ev, view, store, player, fadeIn, fadeOut, logger) {
					return
				}
			}
		case <-ticker.C:
			w, h := screen.Size()
			view.Draw(graphics.Rect{Size: graphics.Size{Width: w, Height: h}})
			backend.Present()
		}
	}
}

// handleKey dispatches a key event; returns false on quit.
func handleKey(ev *tcell.EventKey, view *mapview.MapView, store *world.TileMap, player *world.BasicCreature, fadeIn, fadeOut float64, logger *logging.Logger) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		movePlayer(store, player, view, world.North)
	case tcell.KeyDown:
		movePlayer(store, player, view, world.South)
	case tcell.KeyLeft:
		movePlayer(store, player, view, world.West)
	case tcell.KeyRight:
		movePlayer(store, player, view, world.East)
	case tcell.KeyPgUp:
		shiftFloor(view, -1)
	case tcell.KeyPgDn:
		shiftFloor(view, +1)
	}

	switch ev.Rune() {
	case 'q':
		return false
	case 'k':
		movePlayer(store, player, view, world.North)
	case 'j':
		movePlayer(store, player, view, world.South)
	case 'h':
		movePlayer(store, player, view, world.West)
	case 'l':
		movePlayer(store, player, view, world.East)
	case '+', '=':
		resizeView(view, -2, logger)
	case '-':
		resizeView(view, +2, logger)
	case 'f':
		view.LockFirstVisibleFloor(view.CameraPosition().Z)
	case 'u':
		view.UnlockFirstVisibleFloor()
	case 'm':
		view.SetMultifloor(!view.IsMultifloor())
	case 'g':
		toggleShader(view, terminal.GrayscaleShader(), fadeIn, fadeOut)
	case 'n':
		toggleShader(view, terminal.NightShader(), fadeIn, fadeOut)
	case 'v':
		view.SetViewMode((view.ViewMode() + 1) % 4)
	}
	return true
}

func movePlayer(store *world.TileMap, player *world.BasicCreature, view *mapview.MapView, dir world.Direction) {
	var dx, dy int
	switch dir {
	case world.North:
		dy = -1
	case world.South:
		dy = 1
	case world.West:
		dx = -1
	case world.East:
		dx = 1
	}
	store.RemoveThing(player)
	player.Pos = player.Pos.Translated(dx, dy)
	player.Dir = dir
	store.AddThing(player)
	view.SetCameraPosition(player.Pos)
}

func shiftFloor(view *mapview.MapView, dz int) {
	pos := view.CameraPosition()
	pos.Z += dz
	if pos.Z < 0 || pos.Z > world.MaxFloor {
		return
	}
	view.SetCameraPosition(pos)
}

func resizeView(view *mapview.MapView, delta int, logger *logging.Logger) {
	dim := view.VisibleDimension()
	dim.Width += delta
	dim.Height += delta
	if err := view.SetVisibleDimension(dim); err != nil {
		logger.Debugf("resize rejected: %v", err)
	}
}

// toggleShader swaps the effect in, or fades it out when already active.
func toggleShader(view *mapview.MapView, shader graphics.Shader, fadeIn, fadeOut float64) {
	current := view.Shader()
	if current != nil && current.Name() == shader.Name() {
		view.SetShader(nil, fadeIn, fadeOut)
		return
	}
	view.SetShader(shader, fadeIn, fadeOut)
}
