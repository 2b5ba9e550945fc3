package ruletree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"strings"

	"github.com/npillmayer/cascade/dom/style"
	tp "github.com/xlab/treeprint"
)

// Dump renders the tree for diagnostics, one line per node with cascade
// level, refcount and the node's declarations. Reading declaration
// contents requires the stylesheet guards; the tree structure itself
// does not. Children maps are read-locked per node, so Dump may run
// next to concurrent mutators, at the price of a possibly inconsistent
// picture across nodes.
func (t *RuleTree) Dump(guards style.StylesheetGuards) string {
	printer := tp.New()
	printer.SetValue(fmt.Sprintf("root rc=%d", t.root.refcount.Load()))
	dumpBelow(printer, t.root, guards)
	return printer.String()
}

func dumpBelow(p tp.Tree, n *RuleNode, guards style.StylesheetGuards) {
	for _, ch := range n.children.snapshot() {
		label := fmt.Sprintf("[%s] rc=%d %s", ch.level, ch.refcount.Load(),
			declsLabel(ch, guards))
		if ch.children.length() == 0 {
			p.AddNode(label)
			continue
		}
		dumpBelow(p.AddBranch(label), ch, guards)
	}
}

func declsLabel(n *RuleNode, guards style.StylesheetGuards) string {
	decls := n.source.Declarations(guards.ForLevel(n.level))
	if len(decls) == 0 {
		return "{ }"
	}
	var sb strings.Builder
	sb.WriteString("{ ")
	for _, d := range decls {
		sb.WriteString(d.String())
		sb.WriteString("; ")
	}
	sb.WriteString("}")
	return sb.String()
}
