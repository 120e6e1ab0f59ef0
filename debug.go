package scrollview

import (
	"fmt"
	"log"
	"os"
	"time"
)

// debugEnabled mirrors the most recently set debug flag so that node and
// packer operations (which lack a Scene pointer) can check it cheaply.
var debugEnabled bool

// SetDebugLogging enables or disables diagnostic logging and debug checks
// package-wide. Scene.SetDebugMode calls this.
func SetDebugLogging(enabled bool) {
	debugEnabled = enabled
}

// logf writes a diagnostic line through the standard logger when debug
// logging is enabled.
func logf(format string, args ...any) {
	if !debugEnabled {
		return
	}
	log.Printf("scrollview: "+format, args...)
}

// debugStats holds per-frame timing. Only populated when Scene.debug is true.
type debugStats struct {
	inputTime    time.Duration
	scheduleTime time.Duration
	tasks        int
	nodes        int
}

// debugLog prints timing stats to stderr.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[scrollview] input: %v | schedule: %v | tasks: %d | nodes: %d\n",
		stats.inputTime, stats.scheduleTime, stats.tasks, stats.nodes)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. In release mode callers skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("scrollview debug: %s on disposed node %q", op, n.Name))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[scrollview] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}

// countNodes returns the size of the subtree rooted at n.
func countNodes(n *Node) int {
	c := 1
	for _, child := range n.children {
		c += countNodes(child)
	}
	return c
}
