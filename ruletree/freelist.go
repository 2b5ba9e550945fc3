package ruletree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// The free list is an intrusive, lock-free stack threaded through the
// nextFree fields of out-of-use nodes. Head and links are tagged with
// dedicated sentinel nodes instead of a separate state word:
//
//	head == freeListEmpty      list is empty
//	head == freeListTornDown   tree has been shut down; releases destroy
//	                           nodes directly instead of pooling them
//	nextFree == nil            node is not on the free list
//	nextFree == freeListTail   node is the last list entry
//
// Every transition goes through sync/atomic, whose operations are
// sequentially consistent. The ordering the protocol depends on — the
// nextFree publication in pushFree must become visible to an upgrade
// that observed the refcount at zero — therefore holds without explicit
// fences; upgrade's spin loop (handle.go) is the matching acquire side.
var (
	freeListEmpty    = &RuleNode{}
	freeListTornDown = &RuleNode{}
	freeListTail     = &RuleNode{}
)

// pushFree parks an out-of-use node on the tree's free list. On entry
// the node carries the pretend-alive refcount unit added by Release, so
// its count is at least one and cannot hit zero again while parked.
// After a successful push the node belongs to the list; the caller must
// not touch it anymore.
func (t *RuleTree) pushFree(n *RuleNode) {
	for {
		head := t.freeHead.Load()
		if head == freeListTornDown {
			// The tree is gone; there is no list to park on. Publish a
			// link anyway so that an upgrade spinning on nextFree gets
			// unblocked, then revert the pretend-alive unit and destroy
			// the node if nobody resurrected it in the meantime.
			n.nextFree.Store(freeListTail)
			if n.refcount.Add(-1) == 0 {
				n.nextFree.Store(nil)
				n.detach()
			}
			return
		}
		if head == freeListEmpty {
			n.nextFree.Store(freeListTail)
		} else {
			n.nextFree.Store(head)
		}
		if t.freeHead.CompareAndSwap(head, n) {
			t.root.approximateFreeCount.Add(1)
			return
		}
	}
}
