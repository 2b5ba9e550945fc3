package styledtree

import (
	"strings"
	"testing"

	"github.com/npillmayer/cascade/dom/style"
	"github.com/npillmayer/cascade/ruletree"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/net/html"
)

func parseFragment(t *testing.T, src string) *html.Node {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("cannot parse test document: %v", err)
	}
	return doc
}

func testSource(lock style.SharedLock) style.Source {
	return style.NewSource(style.NewPropertyBlock(lock,
		style.Declaration{Key: "color", Value: "blue"}))
}

func TestStyledNodeLinksHTML(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.dom")
	defer teardown()
	//
	doc := parseFragment(t, "<html><body><p>hi</p></body></html>")
	n := NewNodeForHTMLNode(doc)
	if Node(n).HTMLNode() != doc {
		t.Error("styled node must point back at its HTML node")
	}
	if Node(nil) != nil {
		t.Error("Node(nil) must be nil")
	}
}

func TestSetRulesReleasesPrevious(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.dom")
	defer teardown()
	//
	rules := ruletree.New()
	lock := style.NewSharedLock()
	doc := parseFragment(t, "<html><body><p>hi</p></body></html>")
	sn := Node(NewNodeForHTMLNode(doc))
	//
	first := rules.InsertOrderedRules([]ruletree.MatchedRule{
		{Source: testSource(lock), Level: style.AuthorNormal},
	})
	sn.SetRules(first)
	second := rules.InsertOrderedRules([]ruletree.MatchedRule{
		{Source: testSource(lock), Level: style.AuthorNormal},
	})
	sn.SetRules(second) // releases first
	if sn.Rules() != second {
		t.Error("expected the styled node to hold the new chain")
	}
	sn.Dispose()
	rules.GC()
	if rules.NodeCount() != 1 {
		t.Errorf("expected all chains released after dispose, node count is %d", rules.NodeCount())
	}
}

func TestSameStyle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.dom")
	defer teardown()
	//
	rules := ruletree.New()
	lock := style.NewSharedLock()
	src := testSource(lock)
	doc := parseFragment(t, "<html><body><p>one</p><p>two</p></body></html>")
	a := Node(NewNodeForHTMLNode(doc))
	b := Node(NewNodeForHTMLNode(doc))
	chain := []ruletree.MatchedRule{{Source: src, Level: style.AuthorNormal}}
	a.SetRules(rules.InsertOrderedRules(chain))
	b.SetRules(rules.InsertOrderedRules(chain))
	if !a.SameStyle(b) {
		t.Error("equal chains must compare as same style")
	}
	b.SetRules(rules.InsertOrderedRules([]ruletree.MatchedRule{
		{Source: src, Level: style.AuthorNormal},
		{Source: testSource(lock), Level: style.Transitions},
	}))
	if a.SameStyle(b) {
		t.Error("different chains must not compare as same style")
	}
	a.Dispose()
	b.Dispose()
}
