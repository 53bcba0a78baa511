package ux

import (
	"fmt"
	"io"
	"strings"

	"github.com/jorge-barreto/navtoc/internal/markup"
	"github.com/jorge-barreto/navtoc/internal/navlinks"
)

// RenderTree prints the tree as an indented outline. maxDepth limits the
// levels shown; zero or less shows everything.
func RenderTree(w io.Writer, tree *navlinks.Tree, maxDepth int) {
	fmt.Fprintf(w, "%s%s%s %s(%d topics)%s\n", Bold, tree.Name(), Reset, Dim, tree.Len(), Reset)
	for depth, tp := range tree.Walk() {
		if maxDepth > 0 && depth >= maxDepth {
			continue
		}
		indent := strings.Repeat("  ", depth+1)
		marker := "-"
		switch {
		case tp.Deferred():
			marker = Yellow + "…" + Reset
		case tp.Menu.HasChildren:
			marker = Cyan + "+" + Reset
		}
		fmt.Fprintf(w, "%s%s %s %s[%s]%s\n", indent, marker, tp.Title, Dim, tp.TocID, Reset)
	}
}

// RenderTopic prints one topic with its breadcrumb and description.
func RenderTopic(w io.Writer, tree *navlinks.Tree, tp *navlinks.Topic) {
	var crumbs []string
	for _, p := range tree.Path(tp.TocID) {
		crumbs = append(crumbs, p.Title)
	}
	fmt.Fprintf(w, "%s%s%s\n", Bold, tp.Title, Reset)
	fmt.Fprintf(w, "%s%s%s\n", Dim, strings.Join(crumbs, " › "), Reset)
	fmt.Fprintf(w, "  %-9s %s\n", "tocID:", tp.TocID)
	fmt.Fprintf(w, "  %-9s %s\n", "href:", tp.Href)
	if id := tp.DataID(); id != "" {
		fmt.Fprintf(w, "  %-9s %s\n", "data-id:", id)
	}
	switch {
	case tp.Deferred():
		fmt.Fprintf(w, "  %-9s %sin table %s (not loaded)%s\n", "children:", Yellow, tp.Next, Reset)
	case tp.Menu.HasChildren:
		fmt.Fprintf(w, "  %-9s %d\n", "children:", len(tp.Children))
	}
	if tp.ShortDesc != "" {
		desc, err := markup.Markdown(tp.ShortDesc)
		if err != nil {
			desc = tp.Summary()
		}
		fmt.Fprintf(w, "\n%s\n", desc)
	}
}

// RenderList prints topics one per line in the given order.
func RenderList(w io.Writer, topics []*navlinks.Topic) {
	for _, tp := range topics {
		fmt.Fprintf(w, "%-32s %s%s%s\n", tp.TocID, tp.Title, Dim+"  "+tp.Href, Reset)
	}
}
