// Package main is a small interactive harness for the scene input core. It
// opens an Ebitengine window, wires the default view/edit contexts, and
// prints the actions the input layer publishes.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/dshills/sceneinput/internal/binding"
	"github.com/dshills/sceneinput/internal/config"
	"github.com/dshills/sceneinput/internal/event"
	"github.com/dshills/sceneinput/internal/focus"
	"github.com/dshills/sceneinput/internal/manager"
	"github.com/dshills/sceneinput/internal/pick"
	"github.com/dshills/sceneinput/internal/raw"
	"github.com/dshills/sceneinput/internal/source"
	"github.com/dshills/sceneinput/internal/source/ebitenhost"
)

const historySize = 12

func main() {
	os.Exit(run())
}

func run() int {
	var configPath string
	var bindingsPath string
	flag.StringVar(&configPath, "config", "", "Path to TOML configuration file")
	flag.StringVar(&bindingsPath, "bindings", "", "Path to TOML or Lua binding profile")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFile(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		cfg = loaded
	}

	game, err := newGame(cfg, bindingsPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if configPath != "" {
		watcher, err := config.NewWatcher(configPath, game.applyConfig,
			config.WithErrorHandler(func(err error) {
				logger.Warn("config reload failed", "err", err)
			}))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer watcher.Close()
	}

	ebiten.SetWindowSize(960, 540)
	ebiten.SetWindowTitle("sceneinput demo")
	if err := ebiten.RunGame(game); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// game is the Ebitengine shell around the input core.
type game struct {
	mgr     *manager.Manager
	host    *ebitenhost.Host
	pointer *source.Pointer
	touch   *source.Touch

	mu      sync.Mutex
	history []string
	focused bool
	modal   bool
}

// TextInputFocused implements focus.Query. The demo has no text fields.
func (g *game) TextInputFocused() bool {
	return false
}

// ModalOpen implements focus.Query.
func (g *game) ModalOpen() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.modal
}

func newGame(cfg config.Config, bindingsPath string, logger *slog.Logger) (*game, error) {
	mgr := manager.New(
		manager.WithLogger(logger),
		manager.WithPicker(groundPicker()),
	)

	keyboard := source.NewKeyboard("keyboard", mgr)
	pointer := source.NewPointer("mouse", mgr)
	pointer.SetWheelStep(cfg.WheelStep)
	pointer.SetDoubleClickWindow(cfg.DoubleClick())
	touch := source.NewTouch("touch", mgr, source.TouchConfig{
		LongPressDelay:  cfg.LongPress(),
		JitterTolerance: cfg.JitterTolerance,
	})
	for _, src := range []source.Source{keyboard, pointer, touch} {
		if err := mgr.RegisterSource(src, false); err != nil {
			return nil, err
		}
	}

	contexts := []*binding.Context{binding.ViewContext(), binding.EditContext()}
	if bindingsPath != "" {
		loaded, err := loadBindings(bindingsPath)
		if err != nil {
			return nil, err
		}
		contexts = loaded
	}
	for _, ctx := range contexts {
		if err := mgr.RegisterContext(ctx, false); err != nil {
			return nil, err
		}
	}
	if err := mgr.SetContext(contexts[0].Name()); err != nil {
		return nil, err
	}

	g := &game{
		mgr:     mgr,
		host:    ebitenhost.New(keyboard, pointer, touch),
		pointer: pointer,
		touch:   touch,
		focused: true,
	}

	if pri, ok := cfg.PriorityOf(config.LayerModal); ok {
		mgr.AddBlocker(config.LayerModal, pri, focus.ModalPredicate(g))
	}
	if pri, ok := cfg.PriorityOf(config.LayerTextInput); ok {
		mgr.AddBlocker(config.LayerTextInput, pri, focus.TextInputPredicate(g))
	}

	if _, err := mgr.Bus().SubscribeFunc(event.TopicAllActions, func(ev event.Event) error {
		if act, ok := ev.Payload.(manager.Action); ok {
			g.record(act)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return g, nil
}

// loadBindings loads a binding profile by file extension.
func loadBindings(path string) ([]*binding.Context, error) {
	if filepath.Ext(path) == ".lua" {
		return binding.LoadLua(path)
	}
	return binding.NewLoader().LoadFile(path)
}

// applyConfig is the live-reload hook for the tunables that can change after
// startup.
func (g *game) applyConfig(cfg config.Config) {
	g.touch.SetThresholds(cfg.LongPress(), cfg.JitterTolerance)
	g.pointer.SetWheelStep(cfg.WheelStep)
	g.pointer.SetDoubleClickWindow(cfg.DoubleClick())
}

func (g *game) record(act manager.Action) {
	line := act.Name
	if act.HasValue {
		line += fmt.Sprintf(" value=%.2f", act.Value)
	}
	if act.HasDelta {
		line += fmt.Sprintf(" delta=(%.0f,%.0f)", act.Delta.X, act.Delta.Y)
	}
	if act.Hit != nil && act.Hit.Hit {
		line += fmt.Sprintf(" hit=(%.0f,%.0f,%.0f)", act.Hit.Point.X, act.Hit.Point.Y, act.Hit.Point.Z)
	}
	g.mu.Lock()
	g.history = append(g.history, line)
	if len(g.history) > historySize {
		g.history = g.history[len(g.history)-historySize:]
	}
	g.mu.Unlock()
}

// Update implements ebiten.Game.
func (g *game) Update() error {
	if focused := ebiten.IsFocused(); focused != g.focused {
		g.focused = focused
		if !focused {
			g.host.Reset()
			g.mgr.ClearAllActionStates()
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.toggleContext()
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.mu.Lock()
		g.modal = !g.modal
		g.mu.Unlock()
		return nil
	}

	g.host.Poll()
	return nil
}

func (g *game) toggleContext() {
	next := "edit"
	if g.mgr.ActiveContext() == "edit" {
		next = "view"
	}
	if err := g.mgr.SetContext(next); err != nil {
		// Custom profiles may define other context names; ignore.
		return
	}
}

// Draw implements ebiten.Game.
func (g *game) Draw(screen *ebiten.Image) {
	g.mu.Lock()
	lines := make([]string, len(g.history))
	copy(lines, g.history)
	modal := g.modal
	g.mu.Unlock()

	status := fmt.Sprintf("context: %s  (Tab switches, Esc toggles modal)", g.mgr.ActiveContext())
	if modal {
		status += "\nmodal open: scene input blocked"
	}
	text := fmt.Sprintf("%s\n\n%s", status, strings.Join(lines, "\n"))
	ebitenutil.DebugPrint(screen, text)
}

// Layout implements ebiten.Game.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// groundPicker projects screen coordinates onto a flat demo ground plane.
func groundPicker() pick.Picker {
	return pick.PickerFunc(func(pos raw.Position) pick.Result {
		return pick.Result{
			Hit:    true,
			Point:  pick.Point{X: pos.X / 10, Y: 0, Z: pos.Y / 10},
			Target: "ground",
		}
	})
}
