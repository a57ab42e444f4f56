package animated

// Observer receives graph and driver events. Implementations must be cheap:
// they run inline on the frame path.
type Observer interface {
	// FlushCompleted is called after each flush with the number of leaves
	// recomputed.
	FlushCompleted(leaves int)
	// DriverStarted is called when a Value starts a driver.
	DriverStarted(kind string)
	// DriverEnded is called once per started driver.
	DriverEnded(kind string, finished bool)
	// InteractionsActive reports the number of active handles of the
	// default InteractionManager after each change.
	InteractionsActive(n int)
}

type nopObserver struct{}

func (nopObserver) FlushCompleted(int)       {}
func (nopObserver) DriverStarted(string)     {}
func (nopObserver) DriverEnded(string, bool) {}
func (nopObserver) InteractionsActive(int)   {}

var observer Observer = nopObserver{}

// SetObserver installs o as the process-wide observer and returns the
// previous one. Pass nil to disable observation.
func SetObserver(o Observer) Observer {
	prev := observer
	if o == nil {
		o = nopObserver{}
	}
	observer = o
	return prev
}
