package main

import (
	"context"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/debugui"
	debugui_ebiten "github.com/plus3/blockfall/debugui/ebiten"
	"github.com/plus3/blockfall/input"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/match"
)

const volumeStep = 0.1

// Game implements ebiten.Game. Each Update runs one match tick; Draw paints
// the last frame the match rendered.
type Game struct {
	ctx      context.Context
	match    *match.Match
	clock    loop.Clock
	keymap   *input.Keymap
	controls *controls
	queue    *input.Queue
	canvas   *canvas
	sounds   *sounds

	imgui   *debugui_ebiten.ImguiBackend
	overlay *debugui.ImguiSystem

	restart          bool
	terminate        bool
	screenW, screenH int
}

func newGame(ctx context.Context, cfg config.Config, keymap *input.Keymap) (*Game, error) {
	g := &Game{
		ctx:      ctx,
		clock:    loop.NewSystemClock(),
		keymap:   keymap,
		controls: newControls(keymap, cfg.Game.Players),
		queue:    &input.Queue{},
		sounds:   newSounds(cfg.Audio.Volume, cfg.Audio.Muted),
	}
	g.canvas = &canvas{muted: g.sounds.Muted}

	mcfg := cfg.Match()
	mcfg.Logger = log.Default()
	m, err := match.New(mcfg, match.Options{
		Renderer: g.canvas,
		HUD:      g.canvas,
		Audio:    g.sounds,
		Clock:    g.clock,
		Input:    input.SourceFunc(g.poll),
	})
	if err != nil {
		return nil, err
	}
	g.match = m
	g.canvas.match = m
	g.screenW, g.screenH = m.ScreenSize()
	ebiten.SetTPS(cfg.Timing.TickRate)

	if !cfg.Debug.Overlay {
		ebiten.SetWindowSize(g.screenW, g.screenH)
		ebiten.SetWindowTitle("blockfall")
		return g, nil
	}

	g.imgui = debugui_ebiten.NewImguiBackend("blockfall", g.screenW+440, max(g.screenH, 640))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g.overlay = &debugui.ImguiSystem{}
	g.controls.capture = &g.overlay.InputState

	inspector := debugui.NewMatchInspector(m)
	inspector.Input = g.queue
	inspector.Mixer = g.sounds
	inspector.OnRestart = func() { g.restart = true }
	g.overlay.Add(inspector.Render)

	perf := debugui.NewPerformanceStats(120)
	timer := debugui.NewFrameTimer()
	g.overlay.Add(func() {
		perf.Render(m.Scheduler().GetStats(), timer.GetDeltaTime())
	})
	m.Scheduler().Register(g.overlay)
	return g, nil
}

// poll merges device input with events pushed by the inspector.
func (g *Game) poll(now int64) []input.Event {
	events := g.controls.Poll(now)
	return append(events, g.queue.Poll(now)...)
}

func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	g.hotkeys()
	if g.restart {
		g.restart = false
		if err := g.match.Restart(); err != nil {
			return err
		}
	}

	if g.imgui != nil {
		if err := g.imgui.Frame(g.tick); err != nil {
			return err
		}
	} else if err := g.tick(); err != nil {
		return err
	}

	if g.terminate || (g.match.Done() && g.match.Result().Quit) {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) tick() error {
	if !g.match.Done() {
		g.match.Update(g.clock.NowMillis())
		return nil
	}
	// The match no longer ticks, so the overlay is drawn directly.
	if g.overlay != nil {
		g.overlay.Draw()
	}
	return nil
}

// hotkeys handles keys that belong to the front end rather than a player.
func (g *Game) hotkeys() {
	if g.overlay != nil && g.overlay.InputState.WantCaptureKeyboard {
		return
	}
	if g.unbound(ebiten.KeyM) && inpututil.IsKeyJustPressed(ebiten.KeyM) {
		log.Printf("audio muted: %v", g.sounds.ToggleMute())
	}
	if g.unbound(ebiten.KeyMinus) && inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		g.sounds.SetVolume(g.sounds.Volume() - volumeStep)
	}
	if g.unbound(ebiten.KeyEqual) && inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.sounds.SetVolume(g.sounds.Volume() + volumeStep)
	}
	if g.match.Done() && g.unbound(ebiten.KeyR) && inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.restart = true
	}
	// A finished match no longer polls input, so Escape is handled here.
	if g.match.Done() && inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.terminate = true
	}
}

func (g *Game) unbound(k ebiten.Key) bool {
	_, bound := g.keymap.Lookup(input.Key(k))
	return !bound
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.canvas.Draw(screen)
	if g.imgui != nil {
		g.imgui.Overlay(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return g.screenW, g.screenH
}
