package ruletree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/npillmayer/cascade/dom/style"
)

// RuleNode is one matched rule positioned at one cascade level; the
// atomic unit of the rule tree. Nodes are never handed out directly:
// clients hold StrongRuleNode handles instead.
//
// root, parent and source are simultaneously set or simultaneously
// null; they are null exactly on the tree's root node. The root carries
// style.LowestLevel as its level tag.
type RuleNode struct {
	tree   *RuleTree
	root   *RuleNode      // nil iff this node is the root
	parent StrongRuleNode // owns one refcount unit on the parent; null iff root
	source style.Source   // null iff root
	level  style.CascadeLevel

	// refcount counts live strong handles, plus one "pretend alive"
	// unit while the node sits on the free list (see handle.go).
	refcount atomic.Int64

	// nextFree is the intrusive free-list link. nil means the node is
	// not on the free list; freeListTail marks the last list entry;
	// anything else is the next pooled node.
	nextFree atomic.Pointer[RuleNode]

	children childMap

	// approximateFreeCount is maintained on the root node only. It
	// counts free-list pushes since the last sweep and drives MaybeGC.
	approximateFreeCount atomic.Uint32
}

func (n *RuleNode) isRoot() bool {
	return n.root == nil
}

// rootNode returns the root of the tree this node belongs to.
func (n *RuleNode) rootNode() *RuleNode {
	if n.root == nil {
		return n
	}
	return n.root
}

func (n *RuleNode) String() string {
	if n.isRoot() {
		return fmt.Sprintf("(RuleNode root rc=%d #ch=%d)", n.refcount.Load(), n.children.length())
	}
	return fmt.Sprintf("(RuleNode %s rc=%d #ch=%d)", n.level, n.refcount.Load(), n.children.length())
}

// detach destroys a node whose refcount has dropped to zero during a
// sweep (or after tree teardown): it unlinks the node from its parent's
// children map and gives up the node's reference on its parent. If that
// was the parent's last reference, the parent is destroyed as well.
func (n *RuleNode) detach() {
	assertThat(!n.isRoot(), "the rule tree root is never destroyed")
	assertThat(n.refcount.Load() == 0, "detaching a rule node that is still in use")
	p := n.parent.n
	p.children.remove(childKey{level: n.level, src: n.source.Key()})
	if p.refcount.Add(-1) == 0 && !p.isRoot() {
		p.detach()
	}
}

// --- Children map ------------------------------------------------------

// childKey identifies a child below a given parent: same source at the
// same cascade level means same child. Sources compare by identity.
type childKey struct {
	level style.CascadeLevel
	src   style.SourceKey
}

// childMap is the per-node concurrent table of weak child references.
// Cache hits take the read lock only; a miss upgrades to the write lock
// and re-checks before inserting (see StrongRuleNode.EnsureChild). The
// map holds no refcount units: children are kept alive by their own
// handles, or parked on the free list when out of use.
type childMap struct {
	sync.RWMutex
	m map[childKey]*RuleNode
}

func (cm *childMap) length() int {
	cm.RLock()
	defer cm.RUnlock()
	return len(cm.m)
}

func (cm *childMap) remove(key childKey) {
	cm.Lock()
	defer cm.Unlock()
	delete(cm.m, key)
}

// snapshot returns the current children, ordered by cascade level.
// Used by diagnostics and the sweep bookkeeping, not by the hot path.
func (cm *childMap) snapshot() []*RuleNode {
	cm.RLock()
	children := make([]*RuleNode, 0, len(cm.m))
	for _, ch := range cm.m {
		children = append(children, ch)
	}
	cm.RUnlock()
	sort.Slice(children, func(i, j int) bool {
		return children[i].level < children[j].level
	})
	return children
}
