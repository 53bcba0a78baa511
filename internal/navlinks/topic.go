// Package navlinks loads webhelp navigation-topic tables into read-only trees.
//
// A table is one generated nav-links file:
//
//	define({"topics" : [{"title":"...","href":"doc.html#id", ...}]});
//
// Container topics usually keep their children in a sibling table named
// after their tocID; Resolver stitches those tables into a single Tree.
package navlinks

import (
	"strings"

	"github.com/jorge-barreto/navtoc/internal/markup"
)

// Menu holds the display flags of a topic.
type Menu struct {
	HasChildren bool `json:"hasChildren"`
}

// Topic is one navigation entry. Topics are built by the loader and must be
// treated as read-only by callers.
type Topic struct {
	Title      string
	ShortDesc  string
	Href       string
	Attributes map[string]string
	Menu       Menu
	TocID      string
	Next       string
	Children   []*Topic
}

// IsLeaf reports whether the topic declares no children.
func (t *Topic) IsLeaf() bool {
	return !t.Menu.HasChildren
}

// Deferred reports whether the topic is a container whose children live in
// another table that has not been attached.
func (t *Topic) Deferred() bool {
	return t.Menu.HasChildren && len(t.Children) == 0
}

// DocPath returns the document part of Href.
func (t *Topic) DocPath() string {
	path, _, _ := strings.Cut(t.Href, "#")
	return path
}

// Fragment returns the in-page anchor of Href, or "" when there is none.
func (t *Topic) Fragment() string {
	_, frag, _ := strings.Cut(t.Href, "#")
	return frag
}

// DataID returns the "data-id" attribute used for cross-referencing.
func (t *Topic) DataID() string {
	return t.Attributes["data-id"]
}

// Summary returns ShortDesc reduced to plain text.
func (t *Topic) Summary() string {
	return markup.Text(t.ShortDesc)
}
