package cssom_test

import (
	"strings"
	"testing"

	"github.com/npillmayer/cascade/dom/style"
	"github.com/npillmayer/cascade/dom/style/cssom"
	"github.com/npillmayer/cascade/dom/style/cssom/douceuradapter"
	"github.com/npillmayer/cascade/dom/styledtree"
	"github.com/npillmayer/cascade/ruletree"
	"github.com/npillmayer/cascade/tree"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const testDoc = `<html><head></head><body>
<p class="note">one</p>
<p class="note">two</p>
<p id="special" class="note">three</p>
</body></html>`

const testCSS = `
p { margin-top: 10px; }
.note { color: blue; }
#special { color: red !important; }
`

func parseDoc(t *testing.T) *html.Node {
	doc, err := html.Parse(strings.NewReader(testDoc))
	require.NoError(t, err)
	return doc
}

func testCascade(t *testing.T) *cssom.Cascade {
	sheet, err := douceuradapter.ParseCSS(testCSS)
	require.NoError(t, err)
	c := cssom.NewCascade()
	require.NoError(t, c.AddStylesheet(sheet, style.AuthorNormal))
	return c
}

func findElements(doc *html.Node, tag string) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			found = append(found, n)
		}
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			walk(ch)
		}
	}
	walk(doc)
	return found
}

func TestMatchedRulesOrdering(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.cssom")
	defer teardown()
	//
	c := testCascade(t)
	paras := findElements(parseDoc(t), "p")
	require.Len(t, paras, 3)
	//
	plain := c.MatchedRules(paras[0])
	require.Len(t, plain, 2, "p.note matches the element and the class rule")
	require.Equal(t, style.AuthorNormal, plain[0].Level)
	require.Equal(t, style.AuthorNormal, plain[1].Level)
	//
	special := c.MatchedRules(paras[2])
	require.Len(t, special, 3, "p#special.note adds the important rule")
	require.Equal(t, style.AuthorImportant, special[2].Level,
		"important declarations must sort after all normal ones")
	// lower specificity (element) before higher (class)
	require.Equal(t, plain[0].Source, special[0].Source)
	require.Equal(t, plain[1].Source, special[1].Source)
}

func TestMatchedRulesShareSources(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.cssom")
	defer teardown()
	//
	c := testCascade(t)
	paras := findElements(parseDoc(t), "p")
	one, two := c.MatchedRules(paras[0]), c.MatchedRules(paras[1])
	require.Equal(t, one, two, "equal elements must match identical source lists")
}

func TestBadOriginRejected(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.cssom")
	defer teardown()
	//
	sheet, err := douceuradapter.ParseCSS(testCSS)
	require.NoError(t, err)
	c := cssom.NewCascade()
	require.Error(t, c.AddStylesheet(sheet, style.AuthorImportant),
		"stylesheets register at origin levels only")
}

func TestStyleSharesRuleChains(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.cssom")
	defer teardown()
	//
	c := testCascade(t)
	doc := parseDoc(t)
	rules := ruletree.New()
	styled, err := c.Style(doc, rules)
	require.NoError(t, err)
	//
	var styledParas []*styledtree.StyNode
	var walk func(*tree.Node[*styledtree.StyNode])
	walk = func(n *tree.Node[*styledtree.StyNode]) {
		if styledtree.Node(n).HTMLNode().Data == "p" {
			styledParas = append(styledParas, styledtree.Node(n))
		}
		for _, ch := range n.Children() {
			walk(ch)
		}
	}
	walk(styled)
	require.Len(t, styledParas, 3)
	require.True(t, styledParas[0].SameStyle(styledParas[1]),
		"elements with equal matched chains share their rule node")
	require.False(t, styledParas[0].SameStyle(styledParas[2]),
		"#special must end up on its own chain")
	//
	guards := c.Guards()
	t.Logf("rule tree =\n%s", rules.Dump(guards))
	guards.Done()
	//
	styledtree.Node(styled).Dispose()
	rules.GC()
	require.Equal(t, 1, rules.NodeCount(), "all chains released, sweep empties the tree")
}

func TestExtractStyleElements(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cascade.cssom")
	defer teardown()
	//
	const embedded = `<html><head><style>p { color: green; }</style></head><body><p>x</p></body></html>`
	doc, err := html.Parse(strings.NewReader(embedded))
	require.NoError(t, err)
	sheets := douceuradapter.ExtractStyleElements(doc)
	require.Len(t, sheets, 1)
	require.False(t, sheets[0].Empty())
	require.Len(t, sheets[0].Rules(), 1)
	rule := sheets[0].Rules()[0]
	require.Equal(t, "p", strings.TrimSpace(rule.Selector()))
	require.Equal(t, style.Property("green"), rule.Value("color"))
	require.False(t, rule.IsImportant("color"))
}
