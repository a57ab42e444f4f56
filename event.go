package animated

import (
	"sort"
	"strings"
)

// Event maps fields of host events onto values, such as a scroll offset
// onto a header animation:
//
//	onScroll := animated.NewEvent(map[string]*animated.Value{
//		"nativeEvent.contentOffset.y": scrollY,
//	}, nil)
//	onScroll.Handle(event)
//
// Paths are dot-separated keys into nested map[string]any events.
type Event struct {
	mapping  map[string]*Value
	paths    []string
	listener func(map[string]any)

	queue     []map[string]any
	scheduled bool
}

// NewEvent creates an event mapping. listener, if non-nil, is called with
// each event after the mapped values have been set.
func NewEvent(mapping map[string]*Value, listener func(map[string]any)) *Event {
	e := &Event{mapping: make(map[string]*Value, len(mapping)), listener: listener}
	for path, v := range mapping {
		e.mapping[path] = v
		e.paths = append(e.paths, path)
	}
	sort.Strings(e.paths)
	return e
}

// Handle sets every mapped value found in event. Paths missing from the
// event or not holding a number are skipped.
func (e *Event) Handle(event map[string]any) {
	for _, path := range e.paths {
		if f, ok := lookupNumber(event, path); ok {
			e.mapping[path].SetValue(f)
		}
	}
	if e.listener != nil {
		e.listener(event)
	}
}

func lookupNumber(event map[string]any, path string) (float64, bool) {
	var cur any = event
	for _, key := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return 0, false
		}
		if cur, ok = m[key]; !ok {
			return 0, false
		}
	}
	switch x := cur.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	}
	return 0, false
}
