package navlinks

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeTable_GeneratedForm(t *testing.T) {
	tree := loadTestdata(t, "concept_bbc_cxr_2jb-d46e117783")

	var buf bytes.Buffer
	require.NoError(t, EncodeTable(&buf, tree.Topics()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `define({"topics":[`), out)
	assert.True(t, strings.HasSuffix(out, "]});\n"), out)
	assert.Contains(t, out, `"topics":[]`)
	assert.Contains(t, out, `<p class=\"shortdesc\">`)

	again, err := Parse(buf.Bytes(), tree.Name())
	require.NoError(t, err)
	assert.Equal(t, tree.Topics(), again.Topics())
}

func TestEncodeTable_ContainersCarryNextOnly(t *testing.T) {
	tree := nestedTree(t)

	var buf bytes.Buffer
	require.NoError(t, EncodeTable(&buf, tree.Topics()))

	again, err := Parse(buf.Bytes(), "guide")
	require.NoError(t, err)
	assert.Equal(t, 3, again.Len())
	assert.Equal(t, []string{"origins", "processors"}, ids(again.Deferred()))
}

func TestEncodeTable_ContainerWithoutNext(t *testing.T) {
	topics := []*Topic{{Title: "A", Href: "a.html", TocID: "a", Menu: Menu{HasChildren: true}}}

	var buf bytes.Buffer
	require.NoError(t, EncodeTable(&buf, topics))
	assert.Contains(t, buf.String(), `"next":"a"`)
	assert.Contains(t, buf.String(), `"attributes":{}`)
}

func TestEncodeTable_InlineNextBecomesOwnTable(t *testing.T) {
	src := `{"topics":[{"title":"A","href":"a.html","tocID":"a","menu":{"hasChildren":true},"next":"b","topics":[
		{"title":"B","href":"b.html","tocID":"b","topics":[]}
	]}]}`
	tree, err := Parse([]byte(src), "t")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeTable(&buf, tree.Topics()))
	assert.Contains(t, buf.String(), `"next":"a"`)

	again, err := Parse(buf.Bytes(), "t")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(again.Deferred()))
}

func TestEncodeTree_RoundTrip(t *testing.T) {
	tree, err := (&Resolver{FS: guideFS()}).Resolve(context.Background(), "root")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeTree(&buf, tree))

	again, err := Parse(buf.Bytes(), "root")
	require.NoError(t, err)
	assert.Equal(t, tree.Topics(), again.Topics())
	assert.Equal(t, tree.Len(), again.Len())
	assert.Empty(t, again.Deferred())
}
