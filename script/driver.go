package script

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/phanxgames/animated"
)

// driverConfig is the union of the timing, spring and decay settings a
// step's config map may carry.
type driverConfig struct {
	ToValue float64 `mapstructure:"toValue"`
	ToNode  string  `mapstructure:"toNode"`

	Duration time.Duration `mapstructure:"duration"`
	Easing   string        `mapstructure:"easing"`

	Stiffness         float64 `mapstructure:"stiffness"`
	Damping           float64 `mapstructure:"damping"`
	Mass              float64 `mapstructure:"mass"`
	Tension           float64 `mapstructure:"tension"`
	Friction          float64 `mapstructure:"friction"`
	Bounciness        float64 `mapstructure:"bounciness"`
	Speed             float64 `mapstructure:"speed"`
	Velocity          float64 `mapstructure:"velocity"`
	OvershootClamping bool    `mapstructure:"overshootClamping"`
	Deceleration      float64 `mapstructure:"deceleration"`

	Delay              time.Duration `mapstructure:"delay"`
	DisableInteraction bool          `mapstructure:"disableInteraction"`
	UseNativeDriver    bool          `mapstructure:"useNativeDriver"`
}

func decodeDriverConfig(raw map[string]any) (driverConfig, error) {
	var cfg driverConfig
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &cfg,
	})
	if err != nil {
		return cfg, err
	}
	if err := dec.Decode(raw); err != nil {
		return cfg, fmt.Errorf("driver config: %w", err)
	}
	return cfg, nil
}

// animation builds the animation for an animate step on the runner's
// frame loop.
func (r *Runner) animation(v *animated.Value, kind string, cfg driverConfig) (animated.Animation, error) {
	var toNode animated.Scalar
	if cfg.ToNode != "" {
		n, ok := r.scalars[cfg.ToNode]
		if !ok {
			return nil, fmt.Errorf("unknown node %q", cfg.ToNode)
		}
		toNode = n
	}

	switch kind {
	case "timing":
		tc := animated.TimingConfig{
			ToValue:            cfg.ToValue,
			ToNode:             toNode,
			Duration:           cfg.Duration,
			Delay:              cfg.Delay,
			DisableInteraction: cfg.DisableInteraction,
			UseNativeDriver:    cfg.UseNativeDriver,
			Frames:             r.loop,
		}
		if cfg.Easing != "" {
			fn, ok := animated.EasingByName(cfg.Easing)
			if !ok {
				return nil, fmt.Errorf("unknown easing %q", cfg.Easing)
			}
			tc.Easing = fn
		}
		return animated.Timing(v, tc), nil
	case "spring":
		return animated.Spring(v, animated.SpringConfig{
			ToValue:            cfg.ToValue,
			ToNode:             toNode,
			Stiffness:          cfg.Stiffness,
			Damping:            cfg.Damping,
			Mass:               cfg.Mass,
			Tension:            cfg.Tension,
			Friction:           cfg.Friction,
			Bounciness:         cfg.Bounciness,
			Speed:              cfg.Speed,
			Velocity:           cfg.Velocity,
			OvershootClamping:  cfg.OvershootClamping,
			Delay:              cfg.Delay,
			DisableInteraction: cfg.DisableInteraction,
			UseNativeDriver:    cfg.UseNativeDriver,
			Frames:             r.loop,
		}), nil
	case "decay":
		return animated.Decay(v, animated.DecayConfig{
			Velocity:           cfg.Velocity,
			Deceleration:       cfg.Deceleration,
			Delay:              cfg.Delay,
			DisableInteraction: cfg.DisableInteraction,
			UseNativeDriver:    cfg.UseNativeDriver,
			Frames:             r.loop,
		}), nil
	}
	return nil, fmt.Errorf("unknown driver %q", kind)
}
