package animated

import (
	"math"
	"sort"

	"github.com/tanema/gween/ease"
)

// Curve maps linear progress in [0, 1] to eased progress. Curves may
// overshoot (elastic, back) outside [0, 1].
type Curve func(t float64) float64

// Linear returns t unchanged.
func Linear(t float64) float64 { return t }

// EaseCurve adapts a gween easing function to a Curve.
func EaseCurve(fn ease.TweenFunc) Curve {
	if fn == nil {
		return Linear
	}
	return func(t float64) float64 {
		return float64(fn(float32(t), 0, 1, 1))
	}
}

// CSS-equivalent cubic bezier curves.
var (
	Ease      = BezierEase(0.25, 0.1, 0.25, 1.0)
	EaseIn    = BezierEase(0.42, 0, 1, 1)
	EaseOut   = BezierEase(0, 0, 0.58, 1)
	EaseInOut = BezierEase(0.42, 0, 0.58, 1)
)

// BezierEase returns a cubic-bezier curve with control points (x1,y1) and
// (x2,y2), like CSS cubic-bezier().
func BezierEase(x1, y1, x2, y2 float64) Curve {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}

		u := t
		// Newton-Raphson converges quickly for most values.
		for range 8 {
			x := bezierSample(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				return bezierSample(y1, y2, clampUnit(u))
			}
			dx := bezierSlope(x1, x2, u)
			if math.Abs(dx) < 1e-7 {
				break
			}
			u -= x / dx
		}

		// Bisection fallback.
		lo, hi := 0.0, 1.0
		u = clampUnit(u)
		for range 12 {
			x := bezierSample(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				break
			}
			if x > 0 {
				hi = u
			} else {
				lo = u
			}
			u = (lo + hi) * 0.5
		}
		return bezierSample(y1, y2, u)
	}
}

func bezierSample(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func bezierSlope(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// easings maps script-facing names to gween easing functions.
var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"inQuad":       ease.InQuad,
	"outQuad":      ease.OutQuad,
	"inOutQuad":    ease.InOutQuad,
	"inCubic":      ease.InCubic,
	"outCubic":     ease.OutCubic,
	"inOutCubic":   ease.InOutCubic,
	"inQuart":      ease.InQuart,
	"outQuart":     ease.OutQuart,
	"inOutQuart":   ease.InOutQuart,
	"inQuint":      ease.InQuint,
	"outQuint":     ease.OutQuint,
	"inOutQuint":   ease.InOutQuint,
	"inSine":       ease.InSine,
	"outSine":      ease.OutSine,
	"inOutSine":    ease.InOutSine,
	"inExpo":       ease.InExpo,
	"outExpo":      ease.OutExpo,
	"inOutExpo":    ease.InOutExpo,
	"inCirc":       ease.InCirc,
	"outCirc":      ease.OutCirc,
	"inOutCirc":    ease.InOutCirc,
	"inElastic":    ease.InElastic,
	"outElastic":   ease.OutElastic,
	"inOutElastic": ease.InOutElastic,
	"inBack":       ease.InBack,
	"outBack":      ease.OutBack,
	"inOutBack":    ease.InOutBack,
	"inBounce":     ease.InBounce,
	"outBounce":    ease.OutBounce,
	"inOutBounce":  ease.InOutBounce,
}

// EasingByName looks up a gween easing function by its camel-case name
// ("linear", "inOutQuad", "outBounce", ...).
func EasingByName(name string) (ease.TweenFunc, bool) {
	fn, ok := easings[name]
	return fn, ok
}

// EasingNames returns the registered easing names, sorted.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
