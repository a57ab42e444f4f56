package animated

// Handle is a token for one in-flight interaction-sensitive animation.
type Handle uint64

// InteractionRegistry defers low-priority work while handles are active.
// Every handle created by a driver run is cleared exactly once when that
// run ends.
type InteractionRegistry interface {
	CreateInteractionHandle() Handle
	ClearInteractionHandle(h Handle)
}

// InteractionManager is the default InteractionRegistry. Tasks queued with
// RunAfterInteractions run once no handle is active.
type InteractionManager struct {
	// OnStart is called when the first handle becomes active.
	OnStart func()
	// OnComplete is called when the last active handle is cleared, before
	// queued tasks run.
	OnComplete func()

	next   Handle
	active map[Handle]struct{}
	queue  []func()
}

// NewInteractionManager creates an idle manager.
func NewInteractionManager() *InteractionManager {
	return &InteractionManager{active: make(map[Handle]struct{})}
}

// CreateInteractionHandle registers a new active handle.
func (m *InteractionManager) CreateInteractionHandle() Handle {
	m.next++
	h := m.next
	if len(m.active) == 0 && m.OnStart != nil {
		m.OnStart()
	}
	m.active[h] = struct{}{}
	observer.InteractionsActive(len(m.active))
	return h
}

// ClearInteractionHandle releases h. Clearing an unknown or already
// cleared handle is a no-op.
func (m *InteractionManager) ClearInteractionHandle(h Handle) {
	if _, ok := m.active[h]; !ok {
		debugf("clear of unknown interaction handle %d ignored", h)
		return
	}
	delete(m.active, h)
	observer.InteractionsActive(len(m.active))
	if len(m.active) > 0 {
		return
	}
	if m.OnComplete != nil {
		m.OnComplete()
	}
	m.drain()
}

// RunAfterInteractions runs fn immediately when idle, otherwise once the
// last active handle is cleared. Tasks run in the order they were queued.
func (m *InteractionManager) RunAfterInteractions(fn func()) {
	if fn == nil {
		return
	}
	if len(m.active) == 0 {
		fn()
		return
	}
	m.queue = append(m.queue, fn)
}

// Active returns the number of active handles.
func (m *InteractionManager) Active() int {
	return len(m.active)
}

// drain runs queued tasks until the queue is empty or a task starts a new
// interaction.
func (m *InteractionManager) drain() {
	for len(m.queue) > 0 && len(m.active) == 0 {
		fn := m.queue[0]
		copy(m.queue, m.queue[1:])
		m.queue[len(m.queue)-1] = nil
		m.queue = m.queue[:len(m.queue)-1]
		fn()
	}
}

// interactions is the process-wide registry used by Value.Animate.
var interactions InteractionRegistry = NewInteractionManager()

// SetInteractionRegistry replaces the process-wide registry and returns the
// previous one.
func SetInteractionRegistry(r InteractionRegistry) InteractionRegistry {
	prev := interactions
	if r == nil {
		r = NewInteractionManager()
	}
	interactions = r
	return prev
}

// Interactions returns the process-wide registry.
func Interactions() InteractionRegistry { return interactions }

// ResetInteractions installs a fresh InteractionManager.
func ResetInteractions() {
	interactions = NewInteractionManager()
}
