package animated

// --- ID counters ---

// nodeIDCounter is a plain counter (no atomic: the graph is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// ResetState resets the process-wide counters (node IDs, listener IDs,
// native tags and native animation IDs), the default interaction registry
// and the default frame source. Tests call it between cases so that IDs
// and registries do not leak across them. It must not be called while
// nodes from a previous run are still in use.
func ResetState() {
	nodeIDCounter = 0
	listenerIDCounter = 0
	nativeTagCounter = 0
	nativeAnimationCounter = 0
	ResetInteractions()
	frames = NewFrameLoop()
}

// --- Node ---

// Node is the capability shared by every variant of the animation graph.
// The set of variants is closed: *Value, *Interpolation, *Arithmetic, *Mod,
// *DiffClamp, *Style, *Transform, *Props and *Tracking.
type Node interface {
	// ID returns the process-unique identity of the node.
	ID() uint32
	// Kind returns the variant tag.
	Kind() NodeKind
	// Resolve returns the externally observable value of the node.
	Resolve() any
	// Children returns the nodes that depend on this node, in the order
	// they were attached. The returned slice MUST NOT be mutated.
	Children() []Node
	// Detach releases the node's inputs. Idempotent.
	Detach()
	// IsDetached reports whether the node is currently detached.
	IsDetached() bool

	graph() *graphNode
	lastChildRemoved()
	nativeConfig() map[string]any
}

// Scalar is a Node whose resolved value is a number.
type Scalar interface {
	Node
	Float() float64
}

// flushLeaf is implemented by the nodes a flush recomputes.
type flushLeaf interface {
	Node
	update()
}

// nodeMode is the offload state of a node.
type nodeMode uint8

const (
	modeLocal     nodeMode = iota // values computed in-process
	modeOffloaded                 // mirrored to the native API
)

// graphNode holds the edge sets shared by all variants. Variants embed it
// and call init from their constructor.
type graphNode struct {
	id       uint32
	kind     NodeKind
	self     Node
	inputs   []Node
	children []Node
	detached bool

	mode nodeMode
	tag  int
}

// init assigns identity and registers the node as a child of each input.
// Panics if an input is nil.
func (g *graphNode) init(self Node, kind NodeKind, inputs ...Node) {
	for _, in := range inputs {
		if in == nil {
			panic("animated: nil input node for " + kind.String())
		}
	}
	g.id = nextNodeID()
	g.kind = kind
	g.self = self
	g.inputs = inputs
	g.attach()
}

// ID returns the node's identity.
func (g *graphNode) ID() uint32 { return g.id }

// Kind returns the variant tag.
func (g *graphNode) Kind() NodeKind { return g.kind }

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (g *graphNode) Children() []Node { return g.children }

// IsDetached reports whether Detach has been called and the node has not
// been attached again since.
func (g *graphNode) IsDetached() bool { return g.detached }

// IsNative reports whether the node has been offloaded to the native API.
func (g *graphNode) IsNative() bool { return g.mode == modeOffloaded }

func (g *graphNode) graph() *graphNode { return g }

// attach clears the detached flag and re-registers with every input.
func (g *graphNode) attach() {
	g.detached = false
	reregister := g.mode == modeOffloaded
	for _, in := range g.inputs {
		in.graph().addChild(g.self)
	}
	if reregister {
		g.registerNative()
		if v, ok := g.self.(*Value); ok && len(v.listeners) > 0 {
			v.startListeningNative()
		}
	}
}

// Detach removes this node from each input's child set. An input left
// without children detaches in turn. Idempotent.
func (g *graphNode) Detach() {
	if g.detached {
		return
	}
	g.detached = true
	for _, in := range g.inputs {
		in.graph().removeChild(g.self)
	}
	g.dropNative()
}

// lastChildRemoved is called when the child set becomes empty. Derived
// nodes have no reason to stay attached once nothing reads them.
func (g *graphNode) lastChildRemoved() {
	g.self.Detach()
}

// addChild appends child to the edge set. Duplicate adds are ignored.
// Adding a child to a detached node attaches it again.
func (g *graphNode) addChild(child Node) {
	if g.detached {
		g.attach()
	}
	n := len(g.children)
	g.children = appendUnique(g.children, child)
	if len(g.children) == n {
		return
	}
	if globalDebug {
		debugCheckChildCount(g)
	}
	if g.mode == modeOffloaded {
		child.graph().makeNative()
	}
}

// removeChild drops child from the edge set. No-op if child is unknown.
func (g *graphNode) removeChild(child Node) {
	n := len(g.children)
	g.children = removeElement(g.children, child)
	if len(g.children) == n {
		return
	}
	if api := nativeAPI(); api != nil && g.mode == modeOffloaded && child.graph().mode == modeOffloaded {
		api.DisconnectAnimatedNodes(g.tag, child.graph().tag)
	}
	if len(g.children) == 0 {
		g.self.lastChildRemoved()
	}
}

// inputTags returns the native tags of the node's inputs, in order.
func (g *graphNode) inputTags() []int {
	tags := make([]int, len(g.inputs))
	for i, in := range g.inputs {
		tags[i] = in.graph().tag
	}
	return tags
}

// --- Helpers ---

func appendUnique[T comparable](slice []T, item T) []T {
	for _, existing := range slice {
		if existing == item {
			return slice
		}
	}
	return append(slice, item)
}

// removeElement removes item from slice. Uses copy+nil-like zeroing to
// avoid retaining a dangling reference in the backing array.
func removeElement[T comparable](slice []T, item T) []T {
	for i, existing := range slice {
		if existing == item {
			copy(slice[i:], slice[i+1:])
			var zero T
			slice[len(slice)-1] = zero
			return slice[:len(slice)-1]
		}
	}
	return slice
}
