package animated

// Tracking makes a Value follow another node. It is a flush leaf under the
// followed node: each flush that reaches it restarts the follower's driver
// towards the followed node's current value.
type Tracking struct {
	graphNode
	value   *Value
	parent  Scalar
	factory func(to float64) Driver
	cb      func(Result)
}

// NewTracking creates a tracking leaf that re-animates value towards
// parent. factory builds the driver for each restart; cb receives each
// run's result. Install it with value.Track.
func NewTracking(value *Value, parent Scalar, factory func(to float64) Driver, cb func(Result)) *Tracking {
	if value == nil || factory == nil {
		panic("animated: tracking needs a value and a driver factory")
	}
	t := &Tracking{value: value, parent: parent, factory: factory, cb: cb}
	t.init(t, KindTracking, scalarInput(parent))
	return t
}

// Value returns the follower.
func (t *Tracking) Value() *Value { return t.value }

// Resolve returns the followed node's current value.
func (t *Tracking) Resolve() any { return t.parent.Float() }

func (t *Tracking) update() {
	if t.detached || t.value.detached {
		debugCheckDetached(&t.graphNode, "tracking update")
		return
	}
	t.value.Animate(t.factory(t.parent.Float()), t.cb)
}

func (t *Tracking) nativeConfig() map[string]any {
	return map[string]any{
		"type":    KindTracking.String(),
		"toValue": t.parent.graph().tag,
		"value":   t.value.tag,
	}
}
