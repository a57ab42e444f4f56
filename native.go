package animated

// NativeValueEvent is delivered by the native API whenever an offloaded
// value changes on the host side.
type NativeValueEvent struct {
	Tag   int
	Value float64
}

// NativeAPI is the optional acceleration surface. When set, nodes that are
// made native are mirrored to it and animations started with
// UseNativeDriver run on the host instead of the frame source.
type NativeAPI interface {
	CreateAnimatedNode(tag int, config map[string]any)
	DropAnimatedNode(tag int)
	ConnectAnimatedNodes(parentTag, childTag int)
	DisconnectAnimatedNodes(parentTag, childTag int)

	SetAnimatedNodeValue(tag int, value float64)
	SetAnimatedNodeOffset(tag int, offset float64)
	FlattenAnimatedNodeOffset(tag int)
	ExtractAnimatedNodeOffset(tag int)

	StartListeningToAnimatedNodeValue(tag int)
	StopListeningToAnimatedNodeValue(tag int)

	// StartAnimatingNode runs a driver on the host. onEnd must be invoked
	// once when the host animation completes or is stopped.
	StartAnimatingNode(animationID, tag int, config map[string]any, onEnd func(Result))
	StopAnimation(animationID int)

	// OnValueUpdate subscribes to the host's value event stream. The
	// returned function cancels the subscription.
	OnValueUpdate(fn func(NativeValueEvent)) (cancel func())
}

var (
	native                 NativeAPI
	nativeTagCounter       int
	nativeAnimationCounter int
)

// SetNativeAPI installs the process-wide native API and returns the
// previous one so callers can restore it. Pass nil to disable offloading;
// nodes already offloaded keep their mode but stop mirroring.
func SetNativeAPI(api NativeAPI) NativeAPI {
	prev := native
	native = api
	return prev
}

func nativeAPI() NativeAPI { return native }

func nextNativeTag() int {
	nativeTagCounter++
	return nativeTagCounter
}

func nextNativeAnimationID() int {
	nativeAnimationCounter++
	return nativeAnimationCounter
}

// makeNative switches the node to offloaded mode. It runs at most once per
// node: inputs are offloaded first so their tags exist when this node is
// created and connected, then children follow. Returns false when no
// native API is installed.
func (g *graphNode) makeNative() bool {
	if g.mode == modeOffloaded {
		return true
	}
	api := nativeAPI()
	if api == nil {
		return false
	}
	g.mode = modeOffloaded
	g.tag = nextNativeTag()
	for _, in := range g.inputs {
		in.graph().makeNative()
	}
	g.registerNative()
	for _, child := range g.children {
		child.graph().makeNative()
	}
	if v, ok := g.self.(*Value); ok && len(v.listeners) > 0 {
		v.startListeningNative()
	}
	return true
}

// registerNative creates the host node and connects it to its inputs.
func (g *graphNode) registerNative() {
	api := nativeAPI()
	if api == nil {
		return
	}
	api.CreateAnimatedNode(g.tag, g.self.nativeConfig())
	for _, in := range g.inputs {
		if in.graph().mode == modeOffloaded {
			api.ConnectAnimatedNodes(in.graph().tag, g.tag)
		}
	}
}

// dropNative releases the host node. The tag is kept so that attaching
// again recreates it.
func (g *graphNode) dropNative() {
	if g.mode != modeOffloaded {
		return
	}
	if api := nativeAPI(); api != nil {
		api.DropAnimatedNode(g.tag)
	}
}

// NativeTag returns the host tag of an offloaded node, or 0.
func NativeTag(n Node) int {
	return n.graph().tag
}

// MakeNative offloads n and every node connected to it. It reports
// whether offloading is possible (a native API is installed).
func MakeNative(n Node) bool {
	return n.graph().makeNative()
}
