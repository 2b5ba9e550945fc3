package styledtree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"github.com/npillmayer/cascade/ruletree"
	"github.com/npillmayer/cascade/tree"
	"golang.org/x/net/html"
)

// StyNode is a style node, the building block of the styled tree. It
// links an HTML DOM node to the terminal node of the element's rule
// chain in the shared rule tree.
type StyNode struct {
	tree.Node[*StyNode] // we build on top of a general purpose tree
	htmlNode            *html.Node
	rules               ruletree.StrongRuleNode // owned handle; released on SetRules
}

// NewNodeForHTMLNode creates a new styled node linked to an HTML node.
func NewNodeForHTMLNode(html *html.Node) *tree.Node[*StyNode] {
	sn := &StyNode{}
	sn.Payload = sn // Payload will always reference the node itself
	sn.htmlNode = html
	return &sn.Node
}

// Node gets the styled node from a generic tree node.
func Node(n *tree.Node[*StyNode]) *StyNode {
	if n == nil {
		return nil
	}
	return n.Payload
}

// HTMLNode gets the HTML DOM node corresponding to this styled node.
func (sn *StyNode) HTMLNode() *html.Node {
	return sn.htmlNode
}

// Rules returns the element's rule-chain handle. The handle stays owned
// by the styled node; callers clone it if they keep it.
func (sn *StyNode) Rules() ruletree.StrongRuleNode {
	return sn.rules
}

// SetRules hands the styled node ownership of a rule-chain handle,
// releasing a previously set one. Restyling an element is exactly this:
// compute a new chain, swap it in.
func (sn *StyNode) SetRules(rules ruletree.StrongRuleNode) {
	if !sn.rules.IsNull() {
		sn.rules.Release()
	}
	sn.rules = rules
}

// SameStyle is true if both elements share their matched-rule chain.
// This is a pointer comparison, the payoff of the rule tree's sharing.
func (sn *StyNode) SameStyle(other *StyNode) bool {
	if sn == nil || other == nil {
		return sn == other
	}
	return sn.rules == other.rules
}

// Dispose releases the rule-chain handles of this styled node and its
// entire subtree. Call it when a styled tree goes out of use, before
// triggering a rule-tree sweep.
func (sn *StyNode) Dispose() {
	tracer().Debugf("disposing styled subtree at %v", sn)
	disposeSubtree(&sn.Node)
}

func disposeSubtree(n *tree.Node[*StyNode]) {
	for _, ch := range n.Children() {
		disposeSubtree(ch)
	}
	sn := Node(n)
	if !sn.rules.IsNull() {
		sn.rules.Release()
		sn.rules = ruletree.StrongRuleNode{}
	}
}
