// Package ebitenhost runs an animated graph inside an Ebitengine game.
//
// The Game owns a FrameLoop installed as the default frame source and
// advances it by one tick per Update. Props bound to Game.Sink with a
// *Sprite as host reference are drawn every frame.
package ebitenhost

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/animated"
)

// Config configures a Game.
type Config struct {
	Title         string
	Width, Height int
	// TPS is the update rate. Zero uses ebiten.DefaultTPS.
	TPS        int
	ShowFPS    bool
	ClearColor animated.Color
}

// Game is an ebiten.Game hosting animated props.
type Game struct {
	cfg  Config
	loop *animated.FrameLoop

	sprites []*Sprite
	pixel   *ebiten.Image
	fps     fpsOverlay

	// OnUpdate runs before the frame loop advances. A non-nil error stops
	// the game.
	OnUpdate func(dt time.Duration) error
}

// NewGame creates a game and installs its frame loop as the default frame
// source.
func NewGame(cfg Config) *Game {
	if cfg.TPS <= 0 {
		cfg.TPS = ebiten.DefaultTPS
	}
	g := &Game{cfg: cfg, loop: animated.NewFrameLoop()}
	animated.SetFrameSource(g.loop)
	return g
}

// Loop returns the frame loop advanced by Update.
func (g *Game) Loop() *animated.FrameLoop { return g.loop }

// AddSprite adds s to the draw list. Sprites draw in insertion order.
func (g *Game) AddSprite(s *Sprite) {
	g.sprites = append(g.sprites, s)
}

// Sprites returns the draw list.
func (g *Game) Sprites() []*Sprite { return g.sprites }

// Sink returns the HostSink that applies props to *Sprite host references.
func (g *Game) Sink() animated.HostSink {
	return animated.HostSinkFunc(func(ref any, props map[string]any) {
		if s, ok := ref.(*Sprite); ok {
			s.Apply(props)
		}
	})
}

// Update advances animations by one tick.
func (g *Game) Update() error {
	dt := time.Second / time.Duration(g.cfg.TPS)
	if g.OnUpdate != nil {
		if err := g.OnUpdate(dt); err != nil {
			return err
		}
	}
	g.loop.Advance(dt)
	if g.cfg.ShowFPS {
		g.fps.update(dt)
	}
	return nil
}

// Draw clears the screen and draws every sprite.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.ClearColor)
	if g.pixel == nil {
		g.pixel = ebiten.NewImage(1, 1)
		g.pixel.Fill(animated.Color{R: 1, G: 1, B: 1, A: 1})
	}
	for _, s := range g.sprites {
		if s.Opacity <= 0 {
			continue
		}
		op := &ebiten.DrawImageOptions{GeoM: s.GeoM()}
		op.ColorScale.ScaleWithColor(s.Color)
		op.ColorScale.ScaleAlpha(float32(s.Opacity))
		screen.DrawImage(g.pixel, op)
	}
	if g.cfg.ShowFPS {
		g.fps.draw(screen)
	}
}

// Layout returns the configured logical size.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens the window and blocks until the game ends.
func Run(g *Game) error {
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	ebiten.SetTPS(g.cfg.TPS)
	return ebiten.RunGame(g)
}
