package animated

import (
	"fmt"
	"os"
)

// globalDebug enables diagnostics on stderr. Off by default: the graph
// never logs in release mode.
var globalDebug bool

// SetDebug enables or disables debug diagnostics.
func SetDebug(enabled bool) {
	globalDebug = enabled
}

// debugf prints a diagnostic line to stderr when debug mode is on.
func debugf(format string, args ...any) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[animated] "+format+"\n", args...)
}

// debugCheckDetached reports an operation on a detached node. The
// operation itself is skipped by the caller.
func debugCheckDetached(g *graphNode, op string) {
	if g.detached {
		debugf("%s on detached %s node (ID %d) ignored", op, g.kind, g.id)
	}
}

// debugMaxChildCount is the fan-out above which addChild warns.
const debugMaxChildCount = 1000

func debugCheckChildCount(g *graphNode) {
	if len(g.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[animated] warning: %s node %d has %d children (threshold %d)\n",
			g.kind, g.id, len(g.children), debugMaxChildCount)
	}
}
