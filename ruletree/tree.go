package ruletree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"sync/atomic"

	"github.com/npillmayer/cascade/dom/style"
)

// gcThreshold is the number of free-list pushes MaybeGC tolerates
// before it triggers a sweep. It bounds free-list growth without
// forcing a sweep on every release.
const gcThreshold = 300

// RuleTree owns the root rule node and the free list. Create one per
// document with New; see the package documentation for the sharing and
// reclamation model.
type RuleTree struct {
	root     *RuleNode
	freeHead atomic.Pointer[RuleNode]
}

// New creates a rule tree containing only the root node.
func New() *RuleTree {
	t := &RuleTree{}
	t.freeHead.Store(freeListEmpty)
	root := &RuleNode{tree: t, level: style.LowestLevel}
	root.refcount.Store(1) // the tree's own reference, given up in Shutdown
	t.root = root
	return t
}

// Root returns a handle to the root node. The handle is borrowed: the
// root is kept alive by the tree itself, is never parked on the free
// list and never destroyed, so callers neither clone nor release it
// (cloning is still fine, and balanced clones/releases stay balanced).
func (t *RuleTree) Root() StrongRuleNode {
	return StrongRuleNode{n: t.root}
}

// MatchedRule is one entry of the ordered result of selector matching:
// a style source positioned at a cascade level. Lists of these are what
// the matcher hands over to InsertOrderedRules.
type MatchedRule struct {
	Source style.Source
	Level  style.CascadeLevel
}

// InsertOrderedRules builds — or, far more often, reuses — the rule
// chain for an ordered list of matched rules and returns an owned
// handle to the chain's terminal node. The list must be sorted by
// non-decreasing cascade level. For an empty list the returned handle
// is an owned handle to the root.
func (t *RuleTree) InsertOrderedRules(rules []MatchedRule) StrongRuleNode {
	current := t.Root().Clone()
	for _, m := range rules {
		next := current.EnsureChild(t.Root(), m.Source, m.Level)
		current.Release()
		current = next
	}
	return current
}

// GC sweeps the free list: it steals the whole list atomically, then
// destroys every stolen node whose refcount is still zero, unlinking it
// from its parent's children map and treating ancestors whose refcount
// thereby reaches zero the same way. Stolen nodes that were resurrected
// in the meantime are simply no longer on the list afterwards.
//
// Precondition: the caller guarantees that no other goroutine mutates
// the tree during the sweep. GC restructures children maps; running it
// concurrently with EnsureChild or handle release/upgrade is a race.
// The style engine calls it between restyle passes.
func (t *RuleTree) GC() {
	t.gcSweep()
}

// MaybeGC runs a sweep iff more than gcThreshold nodes were pushed onto
// the free list since the last sweep; otherwise it is a no-op. The
// quiescence precondition of GC applies when the sweep triggers.
func (t *RuleTree) MaybeGC() {
	if t.root.approximateFreeCount.Load() > gcThreshold {
		tracer().Debugf("free list exceeded %d entries, sweeping", gcThreshold)
		t.gcSweep()
	}
}

func (t *RuleTree) gcSweep() {
	head := t.freeHead.Swap(freeListEmpty)
	assertThat(head != freeListTornDown, "GC on a torn-down rule tree")
	swept, destroyed := 0, 0
	for n := head; n != freeListEmpty; {
		next := n.nextFree.Swap(nil)
		assertThat(next != nil, "free-list entry without a successor link")
		// Revert the pretend-alive unit the release protocol added
		// before parking the node.
		if n.refcount.Add(-1) == 0 {
			n.detach()
			destroyed++
		}
		swept++
		if next == freeListTail {
			break
		}
		n = next
	}
	t.root.approximateFreeCount.Store(0)
	tracer().Debugf("rule tree GC: swept %d pooled nodes, destroyed %d", swept, destroyed)
}

// Shutdown tears the tree down: an exhaustive sweep, then the free-list
// head is marked as permanently torn down, then the tree gives up its
// own reference on the root. Strong handles still held by clients stay
// valid; releasing the last handle to a node now destroys the node
// directly instead of parking it. The quiescence precondition of GC
// applies to the sweep part.
func (t *RuleTree) Shutdown() {
	t.gcSweep()
	t.freeHead.Store(freeListTornDown)
	rc := t.root.refcount.Add(-1)
	assertThat(rc >= 0, "rule tree root refcount underflow on shutdown")
}

// NodeCount returns the number of nodes reachable from the root,
// including the root itself. A diagnostic; it takes children read locks
// along the way, so the result is approximate next to concurrent
// mutators.
func (t *RuleTree) NodeCount() int {
	return 1 + countBelow(t.root)
}

func countBelow(n *RuleNode) int {
	count := 0
	for _, ch := range n.children.snapshot() {
		count += 1 + countBelow(ch)
	}
	return count
}
