package stage

import (
	"fmt"
	"os"
	"time"
)

// globalDebug mirrors the most recent Scene.SetDebugMode call so tree
// operations, which have no scene reference, can run their checks.
var globalDebug bool

// debugStats holds per-frame timing and draw-call metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	traverseTime  time.Duration
	submitTime    time.Duration
	commandCount  int
	drawCallCount int
}

// debugLog prints timing and draw-call stats to stderr.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	total := stats.traverseTime + stats.submitTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[bunnyworld] traverse: %v | submit: %v | total: %v\n",
		stats.traverseTime, stats.submitTime, total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[bunnyworld] commands: %d | draw calls: %d | tweens: %d | timers: %d\n",
		stats.commandCount, stats.drawCallCount, s.tweens.Len(), s.clock.Len())
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("stage debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
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
		_, _ = fmt.Fprintf(os.Stderr, "[bunnyworld] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns on stderr if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[bunnyworld] warning: node %q has %d children (threshold %d)\n",
			n.Name, len(n.children), debugMaxChildCount)
	}
}

// countDrawCalls counts individual draw calls from the command list.
// Particle commands count as the number of alive particles.
func countDrawCalls(commands []drawCommand) int {
	count := 0
	for i := range commands {
		cmd := &commands[i]
		switch cmd.kind {
		case commandParticle:
			if cmd.emitter != nil {
				count += cmd.emitter.alive
			}
		default:
			count++
		}
	}
	return count
}
