package animated

// ValueXY pairs two Values for 2D gestures and positions.
type ValueXY struct {
	X, Y *Value

	listeners map[string][2]string
}

// NewValueXY creates the pair at v.
func NewValueXY(v Vec2) *ValueXY {
	return &ValueXY{X: NewValue(v.X), Y: NewValue(v.Y), listeners: make(map[string][2]string)}
}

// Vec2 returns the resolved pair.
func (xy *ValueXY) Vec2() Vec2 {
	return Vec2{xy.X.Float(), xy.Y.Float()}
}

// SetValue sets both base values, stopping any running drivers.
func (xy *ValueXY) SetValue(v Vec2) {
	xy.X.SetValue(v.X)
	xy.Y.SetValue(v.Y)
}

// SetOffset sets both offsets.
func (xy *ValueXY) SetOffset(o Vec2) {
	xy.X.SetOffset(o.X)
	xy.Y.SetOffset(o.Y)
}

// FlattenOffset merges both offsets into the base values.
func (xy *ValueXY) FlattenOffset() {
	xy.X.FlattenOffset()
	xy.Y.FlattenOffset()
}

// ExtractOffset moves both base values into the offsets.
func (xy *ValueXY) ExtractOffset() {
	xy.X.ExtractOffset()
	xy.Y.ExtractOffset()
}

// StopAnimation stops both values and reports the final pair.
func (xy *ValueXY) StopAnimation(cb func(Vec2)) {
	xy.X.StopAnimation(nil)
	xy.Y.StopAnimation(nil)
	if cb != nil {
		cb(xy.Vec2())
	}
}

// ResetAnimation stops both values, restores their starting values and
// reports the final pair.
func (xy *ValueXY) ResetAnimation(cb func(Vec2)) {
	xy.X.ResetAnimation(nil)
	xy.Y.ResetAnimation(nil)
	if cb != nil {
		cb(xy.Vec2())
	}
}

// AddListener calls fn with the pair whenever either component updates.
func (xy *ValueXY) AddListener(fn func(Vec2)) string {
	id := nextListenerID()
	wrapped := func(float64) { fn(xy.Vec2()) }
	xy.listeners[id] = [2]string{xy.X.AddListener(wrapped), xy.Y.AddListener(wrapped)}
	return id
}

// RemoveListener unregisters a listener added with AddListener.
func (xy *ValueXY) RemoveListener(id string) {
	ids, ok := xy.listeners[id]
	if !ok {
		return
	}
	delete(xy.listeners, id)
	xy.X.RemoveListener(ids[0])
	xy.Y.RemoveListener(ids[1])
}

// RemoveAllListeners unregisters every listener added with AddListener.
func (xy *ValueXY) RemoveAllListeners() {
	for id := range xy.listeners {
		xy.RemoveListener(id)
	}
}

// Layout returns {"left": X, "top": Y} for use in a Style.
func (xy *ValueXY) Layout() map[string]any {
	return map[string]any{"left": xy.X, "top": xy.Y}
}

// TranslateTransform returns the transform list translating by the pair.
func (xy *ValueXY) TranslateTransform() []map[string]any {
	return []map[string]any{{"translateX": xy.X}, {"translateY": xy.Y}}
}
