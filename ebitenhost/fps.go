package ebitenhost

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/phanxgames/animated"
)

// fpsOverlay shows FPS, TPS and the active interaction count, refreshed
// about twice a second.
type fpsOverlay struct {
	img     *ebiten.Image
	elapsed time.Duration
	text    string
}

const fpsRefresh = 500 * time.Millisecond

func (o *fpsOverlay) update(dt time.Duration) {
	o.elapsed += dt
	if o.elapsed < fpsRefresh && o.text != "" {
		return
	}
	o.elapsed = 0
	active := 0
	if m, ok := animated.Interactions().(*animated.InteractionManager); ok {
		active = m.Active()
	}
	o.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nActive: %d", ebiten.ActualFPS(), ebiten.ActualTPS(), active)
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	if o.img == nil {
		// 120x48 fits three short lines of debug text.
		o.img = ebiten.NewImage(120, 48)
	}
	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, o.text)
	screen.DrawImage(o.img, nil)
}
