package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/animated"
)

// Sprite is a solid rectangle whose layout and look are driven by props.
// Pass it as the host reference of an animated.Props bound to Game.Sink.
type Sprite struct {
	Name string

	X, Y, W, H float64
	Opacity    float64
	Color      animated.Color
	// Transform is applied around the sprite's center.
	Transform [6]float64

	// Writes counts props updates received.
	Writes int
}

// NewSprite creates an opaque white sprite.
func NewSprite(name string, x, y, w, h float64) *Sprite {
	return &Sprite{
		Name:      name,
		X:         x,
		Y:         y,
		W:         w,
		H:         h,
		Opacity:   1,
		Color:     animated.Color{R: 1, G: 1, B: 1, A: 1},
		Transform: [6]float64{1, 0, 0, 1, 0, 0},
	}
}

// Apply copies the recognised props onto the sprite. A nested "style" map
// is applied the same way. Unknown keys are ignored.
func (s *Sprite) Apply(props map[string]any) {
	s.Writes++
	s.apply(props)
}

func (s *Sprite) apply(props map[string]any) {
	for k, v := range props {
		switch k {
		case "style":
			if m, ok := v.(map[string]any); ok {
				s.apply(m)
			}
		case "left":
			s.X = number(v, s.X)
		case "top":
			s.Y = number(v, s.Y)
		case "width":
			s.W = number(v, s.W)
		case "height":
			s.H = number(v, s.H)
		case "opacity":
			s.Opacity = number(v, s.Opacity)
		case "backgroundColor", "color":
			switch c := v.(type) {
			case animated.Color:
				s.Color = c
			case string:
				if parsed, err := animated.ParseColor(c); err == nil {
					s.Color = parsed
				}
			}
		case "transform":
			if list, ok := v.([]map[string]any); ok {
				s.Transform = animated.ComposeTransform(list)
			}
		}
	}
}

func number(v any, fallback float64) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int:
		return float64(x)
	}
	return fallback
}

// GeoM maps the unit square onto the sprite: scale to size, transform
// around the center, then move to (X, Y).
func (s *Sprite) GeoM() ebiten.GeoM {
	var g ebiten.GeoM
	g.Scale(s.W, s.H)
	g.Translate(-s.W/2, -s.H/2)

	var t ebiten.GeoM
	m := s.Transform
	t.SetElement(0, 0, m[0])
	t.SetElement(1, 0, m[1])
	t.SetElement(0, 1, m[2])
	t.SetElement(1, 1, m[3])
	t.SetElement(0, 2, m[4])
	t.SetElement(1, 2, m[5])
	g.Concat(t)

	g.Translate(s.X+s.W/2, s.Y+s.H/2)
	return g
}
