package navlinks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nested has three levels with containers at two of them.
const nested = `{"topics":[
	{"title":"Origins","href":"o.html","tocID":"origins","menu":{"hasChildren":true},"next":"origins","topics":[
		{"title":"JDBC Multitable","href":"o.html#jdbc","tocID":"jdbc","menu":{"hasChildren":true},"next":"jdbc","topics":[
			{"title":"Batch Strategy","href":"o.html#batch","tocID":"batch","topics":[]},
			{"title":"Event Generation","href":"o.html#events","tocID":"events","topics":[]}
		]},
		{"title":"Kafka","href":"o.html#kafka","tocID":"kafka","topics":[]}
	]},
	{"title":"Processors","href":"p.html","tocID":"processors","menu":{"hasChildren":true},"next":"processors","topics":[
		{"title":"Start Job","href":"p.html#job","tocID":"startjob","topics":[]}
	]},
	{"title":"Glossary","href":"g.html","tocID":"glossary","topics":[]}
]}`

func nestedTree(t *testing.T) *Tree {
	t.Helper()
	tree, err := Parse([]byte(nested), "guide")
	require.NoError(t, err)
	return tree
}

func ids(topics []*Topic) []string {
	out := make([]string, 0, len(topics))
	for _, tp := range topics {
		out = append(out, tp.TocID)
	}
	return out
}

func TestTree_FindByTocID(t *testing.T) {
	tree := nestedTree(t)

	tp, ok := tree.FindByTocID("events")
	require.True(t, ok)
	assert.Equal(t, "Event Generation", tp.Title)

	tp, ok = tree.FindByTocID("missing")
	assert.False(t, ok)
	assert.Nil(t, tp)
}

func TestTree_FlattenPreOrder(t *testing.T) {
	tree := nestedTree(t)
	var got []string
	for tp := range tree.Flatten() {
		got = append(got, tp.TocID)
	}
	want := []string{"origins", "jdbc", "batch", "events", "kafka", "processors", "startjob", "glossary"}
	assert.Equal(t, want, got)
}

func TestTree_FlattenRestartable(t *testing.T) {
	tree := nestedTree(t)
	seq := tree.Flatten()

	count := func() int {
		n := 0
		for range seq {
			n++
		}
		return n
	}
	assert.Equal(t, 8, count())
	assert.Equal(t, 8, count())
}

func TestTree_FlattenStopsEarly(t *testing.T) {
	tree := nestedTree(t)
	var got []string
	for tp := range tree.Flatten() {
		got = append(got, tp.TocID)
		if tp.TocID == "batch" {
			break
		}
	}
	assert.Equal(t, []string{"origins", "jdbc", "batch"}, got)
}

func TestTree_FlattenFindsExactlyOne(t *testing.T) {
	tree := loadTestdata(t, multitable)
	for want := range tree.Flatten() {
		n := 0
		for tp := range tree.Flatten() {
			if tp.TocID == want.TocID {
				n++
			}
		}
		assert.Equal(t, 1, n, want.TocID)
	}
}

func TestTree_Walk_Depth(t *testing.T) {
	tree := nestedTree(t)
	depths := map[string]int{}
	for d, tp := range tree.Walk() {
		depths[tp.TocID] = d
	}
	assert.Equal(t, 0, depths["origins"])
	assert.Equal(t, 1, depths["jdbc"])
	assert.Equal(t, 2, depths["events"])
	assert.Equal(t, 0, depths["glossary"])
}

func TestTree_PathAndParent(t *testing.T) {
	tree := nestedTree(t)

	assert.Equal(t, []string{"origins", "jdbc", "batch"}, ids(tree.Path("batch")))
	assert.Equal(t, []string{"glossary"}, ids(tree.Path("glossary")))
	assert.Nil(t, tree.Path("missing"))

	assert.Equal(t, "jdbc", tree.Parent("batch").TocID)
	assert.Nil(t, tree.Parent("origins"))
}

func TestTree_Table(t *testing.T) {
	tree := nestedTree(t)

	top, ok := tree.Table("guide")
	require.True(t, ok)
	assert.Equal(t, []string{"origins", "processors", "glossary"}, ids(top))

	kids, ok := tree.Table("jdbc")
	require.True(t, ok)
	assert.Equal(t, []string{"batch", "events"}, ids(kids))

	_, ok = tree.Table("glossary")
	assert.False(t, ok)
	_, ok = tree.Table("missing")
	assert.False(t, ok)
}

func TestTree_MatchTitle(t *testing.T) {
	tree := nestedTree(t)

	assert.Equal(t, []string{"batch"}, ids(tree.MatchTitle("BATCH")))
	assert.Equal(t, []string{"jdbc", "startjob"}, ids(tree.MatchTitle("j")))
	assert.Empty(t, tree.MatchTitle(" "))
	assert.Empty(t, tree.MatchTitle("nothing like it"))
}

func TestTree_Invariants(t *testing.T) {
	for _, tree := range []*Tree{nestedTree(t), loadTestdata(t, multitable)} {
		seen := map[string]bool{}
		for tp := range tree.Flatten() {
			assert.False(t, seen[tp.TocID], "duplicate %s", tp.TocID)
			seen[tp.TocID] = true
			if !tp.Deferred() {
				assert.Equal(t, len(tp.Children) > 0, tp.Menu.HasChildren, tp.TocID)
			}
		}
		assert.Equal(t, len(seen), tree.Len())
	}
}

func TestTree_LoadTwiceIndependent(t *testing.T) {
	a := nestedTree(t)
	b := nestedTree(t)
	require.Equal(t, a.Topics(), b.Topics())

	ta, _ := a.FindByTocID("kafka")
	tb, _ := b.FindByTocID("kafka")
	assert.NotSame(t, ta, tb)

	ta.Title = "changed"
	assert.Equal(t, "Kafka", tb.Title)
}

func TestTopic_Summary(t *testing.T) {
	tree := loadTestdata(t, "concept_irv_l5r_2jb-d46e117562")

	tp, ok := tree.FindByTocID("StartJob-DataFlow-d46e117624")
	require.True(t, ok)
	assert.Equal(t, "The data flow of the orchestration pipeline that contains the Start Job processor depends on whether the processor runs the started jobs in the background.", tp.Summary())

	tp, ok = tree.FindByTocID("StartJob-RuntimeParameters-d46e117687")
	require.True(t, ok)
	assert.Empty(t, tp.Summary())

	tp, ok = tree.FindByTocID("task_l3t_fvr_2jb-d46e117731")
	require.True(t, ok)
	assert.Empty(t, tp.ShortDesc)
}
