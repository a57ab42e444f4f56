package animated

import "sort"

// HostSink is the boundary to the rendering system. ApplyProps receives
// the host reference a Props node is bound to and a fresh map of resolved
// values; the map is owned by the sink.
type HostSink interface {
	ApplyProps(hostRef any, props map[string]any)
}

// HostSinkFunc adapts a function to HostSink.
type HostSinkFunc func(hostRef any, props map[string]any)

// ApplyProps calls f.
func (f HostSinkFunc) ApplyProps(hostRef any, props map[string]any) { f(hostRef, props) }

// Props is the flush leaf that binds animated values to a host target.
// Entries may be nodes, static values, or a "style" map which is wrapped
// in a Style node.
//
// Every flush that reaches a Props pushes all of its resolved entries to
// the sink in one ApplyProps call.
type Props struct {
	graphNode
	entries map[string]any
	keys    []string

	sink HostSink
	ref  any
}

// NewProps builds a Props node bound to sink and hostRef. A nil sink is
// allowed; updates are then dropped until SetHost is called.
func NewProps(entries map[string]any, sink HostSink, hostRef any) *Props {
	p := &Props{entries: make(map[string]any, len(entries)), sink: sink, ref: hostRef}
	for k, v := range entries {
		if k == "style" {
			if m, ok := v.(map[string]any); ok {
				v = NewStyle(m)
			}
		}
		p.entries[k] = v
		p.keys = append(p.keys, k)
	}
	sort.Strings(p.keys)
	p.init(p, KindProps, nodeEntries(p.keys, p.entries)...)
	return p
}

// SetHost rebinds the props to another sink and host reference.
func (p *Props) SetHost(sink HostSink, hostRef any) {
	p.sink = sink
	p.ref = hostRef
}

// HostRef returns the bound host reference.
func (p *Props) HostRef() any { return p.ref }

// Resolve returns a fresh map of every entry's resolved value.
func (p *Props) Resolve() any {
	return resolveEntries(p.keys, p.entries, false)
}

// AnimatedValues returns the resolved values of the node entries only.
func (p *Props) AnimatedValues() map[string]any {
	return resolveEntries(p.keys, p.entries, true)
}

// Attach registers the props with its inputs again after Detach, typically
// when a host view is remounted.
func (p *Props) Attach() {
	if p.detached {
		p.attach()
	}
}

// update pushes the resolved entries to the sink.
func (p *Props) update() {
	if p.detached {
		debugCheckDetached(&p.graphNode, "props update")
		return
	}
	if p.sink == nil {
		return
	}
	p.sink.ApplyProps(p.ref, p.Resolve().(map[string]any))
}

func (p *Props) nativeConfig() map[string]any {
	tags := map[string]any{}
	for _, k := range p.keys {
		if n, ok := p.entries[k].(Node); ok {
			tags[k] = n.graph().tag
		}
	}
	return map[string]any{"type": KindProps.String(), "props": tags}
}
