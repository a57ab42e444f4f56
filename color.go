package animated

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorTransparent is fully transparent black.
var ColorTransparent = Color{}

// RGBA implements image/color.Color (premultiplied, 16-bit).
func (c Color) RGBA() (r, g, b, a uint32) {
	a8 := clampUnit(c.A)
	return uint32(clampUnit(c.R)*a8*0xffff + 0.5),
		uint32(clampUnit(c.G)*a8*0xffff + 0.5),
		uint32(clampUnit(c.B)*a8*0xffff + 0.5),
		uint32(a8*0xffff + 0.5)
}

// CSS formats the color as "rgba(r, g, b, a)" with 0-255 channels.
func (c Color) CSS() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)",
		int(math.Round(clampUnit(c.R)*255)),
		int(math.Round(clampUnit(c.G)*255)),
		int(math.Round(clampUnit(c.B)*255)),
		strconv.FormatFloat(clampUnit(c.A), 'f', -1, 64))
}

// namedColors holds the CSS names commonly used in style outputs.
var namedColors = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#008000",
	"lime":    "#00ff00",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"cyan":    "#00ffff",
	"aqua":    "#00ffff",
	"magenta": "#ff00ff",
	"fuchsia": "#ff00ff",
	"gray":    "#808080",
	"grey":    "#808080",
	"silver":  "#c0c0c0",
	"maroon":  "#800000",
	"olive":   "#808000",
	"navy":    "#000080",
	"purple":  "#800080",
	"teal":    "#008080",
	"orange":  "#ffa500",
	"pink":    "#ffc0cb",
}

// ParseColor parses hex (#rgb, #rgba, #rrggbb, #rrggbbaa), rgb()/rgba(),
// hsl()/hsla(), "transparent" and a set of CSS color names.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "transparent" {
		return ColorTransparent, nil
	}
	if hex, ok := namedColors[s]; ok {
		s = hex
	}
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s)
	case strings.HasPrefix(s, "rgb"):
		return parseFuncColor(s, "rgb", func(v []float64) Color {
			return Color{v[0] / 255, v[1] / 255, v[2] / 255, 1}
		})
	case strings.HasPrefix(s, "hsl"):
		return parseFuncColor(s, "hsl", func(v []float64) Color {
			c := colorful.Hsl(v[0], v[1]/100, v[2]/100).Clamped()
			return Color{c.R, c.G, c.B, 1}
		})
	}
	return Color{}, configErr("color "+strconv.Quote(s), ErrBadColor)
}

func parseHexColor(s string) (Color, error) {
	alpha := 1.0
	digits := s[1:]
	switch len(digits) {
	case 4:
		a, err := strconv.ParseUint(strings.Repeat(digits[3:], 2), 16, 8)
		if err != nil {
			return Color{}, configErr("color "+strconv.Quote(s), ErrBadColor)
		}
		alpha = float64(a) / 255
		digits = digits[:3]
	case 8:
		a, err := strconv.ParseUint(digits[6:], 16, 8)
		if err != nil {
			return Color{}, configErr("color "+strconv.Quote(s), ErrBadColor)
		}
		alpha = float64(a) / 255
		digits = digits[:6]
	}
	c, err := colorful.Hex("#" + digits)
	if err != nil {
		return Color{}, configErr("color "+strconv.Quote(s), ErrBadColor)
	}
	return Color{c.R, c.G, c.B, alpha}, nil
}

// parseFuncColor parses "name(a, b, c)" and "namea(a, b, c, alpha)".
func parseFuncColor(s, name string, build func([]float64) Color) (Color, error) {
	bad := configErr("color "+strconv.Quote(s), ErrBadColor)
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return Color{}, bad
	}
	fn := s[:open]
	if fn != name && fn != name+"a" {
		return Color{}, bad
	}
	parts := strings.Split(s[open+1:len(s)-1], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, bad
	}
	vals := make([]float64, len(parts))
	for i, p := range parts {
		p = strings.TrimSuffix(strings.TrimSpace(p), "%")
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return Color{}, bad
		}
		vals[i] = f
	}
	c := build(vals)
	if len(vals) == 4 {
		c.A = clampUnit(vals[3])
	}
	return c, nil
}
