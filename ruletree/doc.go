/*
Package ruletree implements the shared cache for CSS selector-match
results: a tree in which every node stands for one matched rule at one
cascade level, and in which a path from the root encodes the complete
ordered list of declarations applying to an element.

Overview

Selector matching is expensive, and the result of matching — the ordered
chain of rules — is heavily shared between elements: siblings, list
items, table cells usually match exactly the same rules. Instead of
storing a rule list per element, elements hold a strong handle to the
terminal node of their chain in this tree. Two elements with the same
matched chain end up holding the very same node (pointer identity),
which also gives callers an O(1) "did the style change?" test.

Nodes are reference counted by hand. When the last strong handle to a
node goes away, the node is not destroyed but parked on a per-tree free
list, because rules that stop matching (think :hover) will very likely
match again a moment later, and resurrecting a parked node is a single
atomic increment. Real destruction happens only inside GC, an explicit
sweep the style engine triggers between restyle passes.

EnsureChild and handle clone/release are safe for concurrent use from
any number of goroutines. GC, MaybeGC and Shutdown require that the
caller guarantees quiescence: no concurrent mutators while they run.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package ruletree

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'cascade.ruletree'.
func tracer() tracing.Trace {
	return tracing.Select("cascade.ruletree")
}
