package ecs

import (
	"slices"

	"github.com/phanxgames/animated"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// NativeNodeData mirrors one offloaded node.
type NativeNodeData struct {
	Tag       int
	Config    map[string]any
	Value     float64
	Offset    float64
	Parents   []int
	Listening bool
	// Animation is the ID of the host animation running on the node, or 0.
	Animation int
}

// NativeNode is the component carried by mirrored nodes.
var NativeNode = donburi.NewComponentType[NativeNodeData]()

// ValueEvent carries host-side value changes.
var ValueEvent = events.NewEventType[animated.NativeValueEvent]()

// Bridge is an animated.NativeAPI backed by a donburi world. Each created
// node becomes an entity; value events travel through the world's event
// queue and reach subscribers on ProcessEvents.
type Bridge struct {
	world    donburi.World
	entities map[int]donburi.Entity

	running map[int]running
	subs    map[int]func(animated.NativeValueEvent)
	order   []int
	nextSub int
}

type running struct {
	tag   int
	onEnd func(animated.Result)
}

// NewBridge creates a bridge and subscribes it to ValueEvent on world.
func NewBridge(world donburi.World) *Bridge {
	b := &Bridge{
		world:    world,
		entities: make(map[int]donburi.Entity),
		running:  make(map[int]running),
		subs:     make(map[int]func(animated.NativeValueEvent)),
	}
	ValueEvent.Subscribe(world, b.deliver)
	return b
}

// Node returns the mirrored state of tag.
func (b *Bridge) Node(tag int) (NativeNodeData, bool) {
	entry, ok := b.entry(tag)
	if !ok {
		return NativeNodeData{}, false
	}
	return *NativeNode.Get(entry), true
}

// Len returns the number of mirrored nodes.
func (b *Bridge) Len() int { return len(b.entities) }

func (b *Bridge) entry(tag int) (*donburi.Entry, bool) {
	e, ok := b.entities[tag]
	if !ok || !b.world.Valid(e) {
		return nil, false
	}
	return b.world.Entry(e), true
}

func (b *Bridge) update(tag int, fn func(*NativeNodeData)) {
	if entry, ok := b.entry(tag); ok {
		fn(NativeNode.Get(entry))
	}
}

// CreateAnimatedNode creates the entity for tag.
func (b *Bridge) CreateAnimatedNode(tag int, config map[string]any) {
	if _, ok := b.entities[tag]; ok {
		b.DropAnimatedNode(tag)
	}
	e := b.world.Create(NativeNode)
	data := NativeNodeData{Tag: tag, Config: config}
	if v, ok := config["value"].(float64); ok {
		data.Value = v
	}
	if o, ok := config["offset"].(float64); ok {
		data.Offset = o
	}
	NativeNode.SetValue(b.world.Entry(e), data)
	b.entities[tag] = e
}

// DropAnimatedNode removes the entity for tag.
func (b *Bridge) DropAnimatedNode(tag int) {
	e, ok := b.entities[tag]
	if !ok {
		return
	}
	delete(b.entities, tag)
	if b.world.Valid(e) {
		b.world.Remove(e)
	}
}

// ConnectAnimatedNodes records parentTag as an input of childTag.
func (b *Bridge) ConnectAnimatedNodes(parentTag, childTag int) {
	b.update(childTag, func(n *NativeNodeData) { n.Parents = append(n.Parents, parentTag) })
}

// DisconnectAnimatedNodes removes parentTag from the inputs of childTag.
func (b *Bridge) DisconnectAnimatedNodes(parentTag, childTag int) {
	b.update(childTag, func(n *NativeNodeData) {
		for i, p := range n.Parents {
			if p == parentTag {
				n.Parents = append(n.Parents[:i], n.Parents[i+1:]...)
				return
			}
		}
	})
}

// SetAnimatedNodeValue sets the mirrored base value.
func (b *Bridge) SetAnimatedNodeValue(tag int, value float64) {
	b.update(tag, func(n *NativeNodeData) { n.Value = value })
}

// SetAnimatedNodeOffset sets the mirrored offset.
func (b *Bridge) SetAnimatedNodeOffset(tag int, offset float64) {
	b.update(tag, func(n *NativeNodeData) { n.Offset = offset })
}

// FlattenAnimatedNodeOffset merges the offset into the value.
func (b *Bridge) FlattenAnimatedNodeOffset(tag int) {
	b.update(tag, func(n *NativeNodeData) {
		n.Value += n.Offset
		n.Offset = 0
	})
}

// ExtractAnimatedNodeOffset moves the value into the offset.
func (b *Bridge) ExtractAnimatedNodeOffset(tag int) {
	b.update(tag, func(n *NativeNodeData) {
		n.Offset += n.Value
		n.Value = 0
	})
}

// StartListeningToAnimatedNodeValue makes Emit publish events for tag.
func (b *Bridge) StartListeningToAnimatedNodeValue(tag int) {
	b.update(tag, func(n *NativeNodeData) { n.Listening = true })
}

// StopListeningToAnimatedNodeValue stops publishing events for tag.
func (b *Bridge) StopListeningToAnimatedNodeValue(tag int) {
	b.update(tag, func(n *NativeNodeData) { n.Listening = false })
}

// StartAnimatingNode records the animation on the node. The host finishes
// it with Finish.
func (b *Bridge) StartAnimatingNode(animationID, tag int, config map[string]any, onEnd func(animated.Result)) {
	b.running[animationID] = running{tag: tag, onEnd: onEnd}
	b.update(tag, func(n *NativeNodeData) { n.Animation = animationID })
}

// StopAnimation ends a running animation with Finished=false.
func (b *Bridge) StopAnimation(animationID int) {
	b.end(animationID, false)
}

// Finish completes a running animation at value: the final value is
// published as a value event and the animation ends with Finished=true.
func (b *Bridge) Finish(animationID int, value float64) {
	r, ok := b.running[animationID]
	if !ok {
		return
	}
	b.Emit(r.tag, value)
	b.end(animationID, true)
}

func (b *Bridge) end(animationID int, finished bool) {
	r, ok := b.running[animationID]
	if !ok {
		return
	}
	delete(b.running, animationID)
	b.update(r.tag, func(n *NativeNodeData) {
		if n.Animation == animationID {
			n.Animation = 0
		}
	})
	if r.onEnd != nil {
		r.onEnd(animated.Result{Finished: finished})
	}
}

// Running returns the number of host animations in flight.
func (b *Bridge) Running() int { return len(b.running) }

// OnValueUpdate subscribes fn to value events. Subscribers are called in
// subscription order.
func (b *Bridge) OnValueUpdate(fn func(animated.NativeValueEvent)) (cancel func()) {
	b.nextSub++
	id := b.nextSub
	b.subs[id] = fn
	b.order = append(b.order, id)
	return func() {
		if _, ok := b.subs[id]; !ok {
			return
		}
		delete(b.subs, id)
		b.order = slices.DeleteFunc(b.order, func(s int) bool { return s == id })
	}
}

// Emit sets the host value of tag and queues a value event when the node
// is listened to. Events reach the graph on ProcessEvents.
func (b *Bridge) Emit(tag int, value float64) {
	listening := false
	b.update(tag, func(n *NativeNodeData) {
		n.Value = value
		listening = n.Listening
	})
	if listening {
		ValueEvent.Publish(b.world, animated.NativeValueEvent{Tag: tag, Value: value})
	}
}

// ProcessEvents delivers queued value events.
func (b *Bridge) ProcessEvents() {
	ValueEvent.ProcessEvents(b.world)
}

func (b *Bridge) deliver(_ donburi.World, e animated.NativeValueEvent) {
	for _, id := range slices.Clone(b.order) {
		if fn, ok := b.subs[id]; ok {
			fn(e)
		}
	}
}

var _ animated.NativeAPI = (*Bridge)(nil)
