package cssom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"

	"github.com/npillmayer/cascade/dom/styledtree"
	"github.com/npillmayer/cascade/ruletree"
	"github.com/npillmayer/cascade/tree"
	"golang.org/x/net/html"
)

// ErrNoDocument is flagged when Style is called without a parsed document.
var ErrNoDocument = errors.New("cannot style a nil document")

// Style builds a styled tree for an HTML document: it walks the
// document's elements, runs selector matching for each, and inserts the
// matched chains into the given rule tree. Elements matching the same
// rules come out holding pointer-identical rule nodes.
//
// The returned tree parallels the element structure of the document
// (non-element nodes are skipped). Dispose of it via
// styledtree.Node(result).Dispose() before sweeping the rule tree.
func (c *Cascade) Style(doc *html.Node, rules *ruletree.RuleTree) (*tree.Node[*styledtree.StyNode], error) {
	if doc == nil {
		return nil, ErrNoDocument
	}
	styled := styledtree.NewNodeForHTMLNode(doc)
	styledtree.Node(styled).SetRules(rules.Root().Clone())
	c.styleChildren(doc, styled, rules)
	return styled, nil
}

func (c *Cascade) styleChildren(h *html.Node, parent *tree.Node[*styledtree.StyNode], rules *ruletree.RuleTree) {
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type != html.ElementNode {
			continue
		}
		sn := styledtree.NewNodeForHTMLNode(ch)
		chain := rules.InsertOrderedRules(c.MatchedRules(ch))
		styledtree.Node(sn).SetRules(chain)
		parent.AddChild(sn)
		c.styleChildren(ch, sn, rules)
	}
}
