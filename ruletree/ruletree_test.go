package ruletree

import (
	"fmt"
	"testing"

	"github.com/npillmayer/cascade/dom/style"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// testSources creates n distinct style sources, all under one shared lock.
func testSources(n int) ([]style.Source, style.SharedLock) {
	lock := style.NewSharedLock()
	sources := make([]style.Source, n)
	for i := range sources {
		block := style.NewPropertyBlock(lock,
			style.Declaration{Key: "color", Value: style.Property(fmt.Sprintf("#%06x", i))})
		sources[i] = style.NewSource(block)
	}
	return sources, lock
}

func TestTreeCreate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.ruletree")
	defer teardown()
	//
	tree := New()
	root := tree.Root()
	if !root.IsRoot() {
		t.Error("expected Root() to hand out the root node, didn't")
	}
	if root.CascadeLevel() != style.LowestLevel {
		t.Errorf("expected root to carry the lowest cascade level, has %s", root.CascadeLevel())
	}
	if !root.StyleSource().IsNull() {
		t.Error("expected root to carry the null style source, doesn't")
	}
	if root.Parent() != nil {
		t.Error("expected root to have no parent, has one")
	}
	if tree.NodeCount() != 1 {
		t.Errorf("expected fresh tree to hold 1 node, holds %d", tree.NodeCount())
	}
}

func TestEnsureChildCreatesOnce(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.ruletree")
	defer teardown()
	//
	tree := New()
	sources, _ := testSources(1)
	root := tree.Root()
	a := root.EnsureChild(root, sources[0], style.AuthorNormal)
	b := root.EnsureChild(root, sources[0], style.AuthorNormal)
	if a != b {
		t.Error("expected repeated EnsureChild to reuse the node, didn't")
	}
	if tree.NodeCount() != 2 {
		t.Errorf("expected 2 nodes after two identical inserts, have %d", tree.NodeCount())
	}
	if a.n.refcount.Load() != 2 {
		t.Errorf("expected child refcount 2 for two handles, is %d", a.n.refcount.Load())
	}
	b.Release()
	a.Release()
}

func TestEnsureChildDistinguishesLevels(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.ruletree")
	defer teardown()
	//
	tree := New()
	sources, _ := testSources(1)
	root := tree.Root()
	a := root.EnsureChild(root, sources[0], style.UserNormal)
	b := root.EnsureChild(root, sources[0], style.AuthorNormal)
	if a == b {
		t.Error("same source at different levels must yield different nodes")
	}
	if a.Importance() != style.ImportanceNormal {
		t.Errorf("expected normal importance for user level, got %s", a.Importance())
	}
	b.Release()
	a.Release()
}

func TestStructuralSharing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.ruletree")
	defer teardown()
	//
	tree := New()
	sources, _ := testSources(3)
	rules := []MatchedRule{
		{Source: sources[0], Level: style.UserAgentNormal},
		{Source: sources[1], Level: style.AuthorNormal},
		{Source: sources[2], Level: style.AuthorImportant},
	}
	first := tree.InsertOrderedRules(rules)
	second := tree.InsertOrderedRules(rules)
	if first != second {
		t.Error("identical ordered rule lists must resolve to the identical node")
	}
	if tree.NodeCount() != 4 {
		t.Errorf("expected a single shared chain of 3 below root, node count is %d", tree.NodeCount())
	}
	second.Release()
	first.Release()
}

func TestRuleChainIteration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.ruletree")
	defer teardown()
	//
	tree := New()
	sources, _ := testSources(2)
	chain := tree.InsertOrderedRules([]MatchedRule{
		{Source: sources[0], Level: style.UserNormal},
		{Source: sources[1], Level: style.AuthorNormal},
	})
	var levels []style.CascadeLevel
	iter := chain.SelfAndAncestors()
	for node, ok := iter.Next(); ok; node, ok = iter.Next() {
		levels = append(levels, node.CascadeLevel())
	}
	if len(levels) != 3 {
		t.Fatalf("expected chain iteration to yield 3 nodes, yielded %d", len(levels))
	}
	if levels[0] != style.AuthorNormal || levels[1] != style.UserNormal || levels[2] != style.LowestLevel {
		t.Errorf("expected levels author, user, root; got %v", levels)
	}
	chain.Release()
}

func TestRefcountConservation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.ruletree")
	defer teardown()
	//
	tree := New()
	sources, _ := testSources(1)
	root := tree.Root()
	a := root.EnsureChild(root, sources[0], style.AuthorNormal)
	handles := []StrongRuleNode{a}
	for i := 0; i < 4; i++ {
		handles = append(handles, a.Clone())
	}
	if got := a.n.refcount.Load(); got != 5 {
		t.Errorf("expected refcount 5 for 5 live handles, is %d", got)
	}
	for i, h := range handles {
		h.Release()
		want := int64(len(handles) - i - 1)
		if want == 0 {
			break // last release parks the node; count includes the pretend unit
		}
		if got := a.n.refcount.Load(); got != want {
			t.Errorf("expected refcount %d after %d releases, is %d", want, i+1, got)
		}
	}
	if got := tree.root.refcount.Load(); got < 1 {
		t.Errorf("root refcount must stay >= 1, is %d", got)
	}
}

func TestMonotoneLevelAsserted(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.ruletree")
	defer teardown()
	//
	tree := New()
	sources, _ := testSources(2)
	root := tree.Root()
	a := root.EnsureChild(root, sources[0], style.AuthorImportant)
	defer a.Release()
	defer func() {
		if recover() == nil {
			t.Error("expected EnsureChild with decreasing level to panic, didn't")
		}
	}()
	a.EnsureChild(root, sources[1], style.UserNormal)
}

func TestDump(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.ruletree")
	defer teardown()
	//
	tree := New()
	authorLock := style.NewSharedLock()
	uaLock := style.NewSharedLock()
	block := style.NewPropertyBlock(authorLock,
		style.Declaration{Key: "margin-top", Value: "15px"},
		style.Declaration{Key: "color", Value: "red", Important: true})
	root := tree.Root()
	chain := root.EnsureChild(root, style.NewSource(block), style.AuthorNormal)
	defer chain.Release()
	guards := style.ReadGuards(uaLock, authorLock)
	defer guards.Done()
	dump := tree.Dump(guards)
	t.Logf("rule tree =\n%s", dump)
	if len(dump) == 0 {
		t.Error("expected non-empty tree dump")
	}
}
