package ecs

import (
	"maps"

	"github.com/phanxgames/animated"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// PropsData holds the last props written to an entity.
type PropsData struct {
	Values map[string]any
	// Writes counts ApplyProps calls for the entity.
	Writes int
}

// Props is the component written by the sink.
var Props = donburi.NewComponentType[PropsData]()

// PropsApplied is published after each write.
type PropsApplied struct {
	Entity donburi.Entity
	Values map[string]any
}

// PropsAppliedEvent carries PropsApplied events.
var PropsAppliedEvent = events.NewEventType[PropsApplied]()

type propsSink struct {
	world donburi.World
}

// NewPropsSink creates a HostSink writing to world. Host references must be
// donburi.Entity values; writes to anything else, or to entities that are
// no longer valid, are dropped.
func NewPropsSink(world donburi.World) animated.HostSink {
	return &propsSink{world: world}
}

func (s *propsSink) ApplyProps(hostRef any, props map[string]any) {
	entity, ok := hostRef.(donburi.Entity)
	if !ok || !s.world.Valid(entity) {
		return
	}
	entry := s.world.Entry(entity)
	if !entry.HasComponent(Props) {
		entry.AddComponent(Props)
	}
	data := Props.Get(entry)
	if data.Values == nil {
		data.Values = make(map[string]any, len(props))
	}
	maps.Copy(data.Values, props)
	data.Writes++
	PropsAppliedEvent.Publish(s.world, PropsApplied{Entity: entity, Values: props})
}
