package ruletree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"runtime"

	"github.com/npillmayer/cascade/dom/style"
)

// StrongRuleNode is an owning handle to a rule node: it holds one unit
// of the node's refcount. Handles are small values; comparing two with
// == compares node identity, which is how callers detect "same style".
//
// Ownership is explicit: Clone produces a second owned handle, Release
// gives one up. A handle must be released exactly once and not used
// afterwards.
type StrongRuleNode struct {
	n *RuleNode
}

// IsNull is true for the zero handle.
func (s StrongRuleNode) IsNull() bool {
	return s.n == nil
}

// IsRoot is true if the handle points at the tree's root node.
func (s StrongRuleNode) IsRoot() bool {
	return s.n.isRoot()
}

// Clone produces another owned handle to the same node.
func (s StrongRuleNode) Clone() StrongRuleNode {
	assertThat(s.n != nil, "clone of a null handle")
	rc := s.n.refcount.Add(1)
	assertThat(rc > 1, "clone observed a rule node without owners")
	return StrongRuleNode{n: s.n}
}

// Release gives up ownership. If this was the node's last strong handle
// the node goes out of use: it is not destroyed but parked on the
// tree's free list, so that a rule which stops matching for a moment
// (think :hover) can be resurrected with a single atomic increment.
// Actual destruction is deferred to RuleTree.GC.
func (s StrongRuleNode) Release() {
	n := s.n
	assertThat(n != nil, "release of a null handle")
	rc := n.refcount.Add(-1)
	assertThat(rc >= 0, "rule node refcount underflow")
	if rc > 0 || n.isRoot() {
		return
	}
	// Pretend to be alive while parked: re-add one refcount unit before
	// pushing. An upgrade racing with us observed the zero count and is
	// spinning until nextFree is published; the pretend unit guarantees
	// the count cannot hit zero again while the node is on the list, so
	// a node is never pushed twice.
	n.refcount.Add(1)
	n.tree.pushFree(n)
}

// weakRuleNode is a non-owning reference into the tree. Weak references
// live only inside children maps; clients never see them.
type weakRuleNode struct {
	n *RuleNode
}

// upgrade turns a weak reference into an owned strong handle. If the
// increment observes a prior count of zero, the node is concurrently
// being retired: the releasing goroutine dropped the count to zero and
// is between that decrement and its free-list push. We wait for the
// push to become visible before handing the node out; the window is one
// CAS loop, so a spin is cheaper than any blocking primitive. Go's
// atomics are sequentially consistent, which makes the nextFree
// publication visible to this loop without explicit fences.
func (w weakRuleNode) upgrade() StrongRuleNode {
	n := w.n
	if n.refcount.Add(1) == 1 {
		for n.nextFree.Load() == nil {
			runtime.Gosched()
		}
		tracer().Debugf("resurrected rule node %v from the free list", n)
	}
	return StrongRuleNode{n: n}
}

// EnsureChild returns an owned handle to the child of this node for
// (level, source), creating it if no such child exists yet. This is the
// one write path of the tree: elements call it once per matched rule
// while walking their ordered rule list, levels must therefore be
// non-decreasing along the chain. root must be the root handle of the
// tree this node belongs to.
//
// Two concurrent (or sequential) callers asking for the same source at
// the same level below the same parent get pointer-identical nodes;
// that is the caching guarantee the tree exists for.
func (s StrongRuleNode) EnsureChild(root StrongRuleNode, source style.Source, level style.CascadeLevel) StrongRuleNode {
	n := s.n
	assertThat(!source.IsNull(), "a non-root rule node needs a style source")
	assertThat(level >= n.level, "cascade level may not decrease along a rule chain")
	assertThat(root.n == n.rootNode(), "EnsureChild called with a foreign root handle")
	key := childKey{level: level, src: source.Key()}

	n.children.RLock()
	if child, ok := n.children.m[key]; ok {
		strong := weakRuleNode{n: child}.upgrade()
		n.children.RUnlock()
		return strong
	}
	n.children.RUnlock()

	n.children.Lock()
	defer n.children.Unlock()
	if child, ok := n.children.m[key]; ok {
		// another goroutine inserted while we upgraded the lock
		return weakRuleNode{n: child}.upgrade()
	}
	child := &RuleNode{
		tree:   n.tree,
		root:   root.n,
		parent: s.Clone(),
		source: source,
		level:  level,
	}
	child.refcount.Store(1)
	if n.children.m == nil {
		n.children.m = make(map[childKey]*RuleNode)
	}
	n.children.m[key] = child
	tracer().Debugf("new rule node %v below %v", child, n)
	return StrongRuleNode{n: child}
}

// Parent returns a borrowed handle to the node one cascade step up, or
// nil for the root. Callers keep it alive past the lifetime of s by
// cloning it.
func (s StrongRuleNode) Parent() *StrongRuleNode {
	if s.n.isRoot() {
		return nil
	}
	return &s.n.parent
}

// StyleSource returns the rule identity this node was created for. It
// is the null source on the root.
func (s StrongRuleNode) StyleSource() style.Source {
	return s.n.source
}

// CascadeLevel returns the cascade level this node sits at.
func (s StrongRuleNode) CascadeLevel() style.CascadeLevel {
	return s.n.level
}

// Importance projects the node's cascade level onto normal/important.
func (s StrongRuleNode) Importance() style.Importance {
	return s.n.level.Importance()
}

func (s StrongRuleNode) String() string {
	if s.n == nil {
		return "(null rule node)"
	}
	return s.n.String()
}

// SelfAndAncestors iterates from this node up to and including the
// root, i.e. over the element's matched rules from highest cascade
// level to lowest. The yielded handles are borrowed: they stay valid
// only as long as s does.
func (s StrongRuleNode) SelfAndAncestors() AncestorIter {
	return AncestorIter{cur: s.n}
}

// AncestorIter walks a rule chain upwards. See SelfAndAncestors.
type AncestorIter struct {
	cur *RuleNode
}

// Next returns the next chain node, root last. The second return value
// is false when the iterator is exhausted.
func (it *AncestorIter) Next() (StrongRuleNode, bool) {
	if it.cur == nil {
		return StrongRuleNode{}, false
	}
	n := it.cur
	if n.isRoot() {
		it.cur = nil
	} else {
		it.cur = n.parent.n
	}
	return StrongRuleNode{n: n}, true
}
