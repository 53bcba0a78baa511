package navlinks

import (
	"iter"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Tree is a loaded, indexed topic hierarchy. A Tree is never modified after
// it is returned, so it can be shared by concurrent readers.
type Tree struct {
	name   string
	topics []*Topic
	index  map[string]*Topic
	parent map[string]*Topic
	tables []string
}

func newTree(name string, topics []*Topic) (*Tree, error) {
	t := &Tree{
		name:   name,
		topics: topics,
		index:  make(map[string]*Topic),
		parent: make(map[string]*Topic),
	}
	var err error
	var index func(parent *Topic, list []*Topic)
	index = func(parent *Topic, list []*Topic) {
		for _, tp := range list {
			if err != nil {
				return
			}
			if _, dup := t.index[tp.TocID]; dup {
				err = &MalformedDataError{Table: name, TocID: tp.TocID, Field: "tocID", Reason: "is not unique in the tree"}
				return
			}
			t.index[tp.TocID] = tp
			if parent != nil {
				t.parent[tp.TocID] = parent
			}
			index(tp, tp.Children)
		}
	}
	index(nil, topics)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// checkNext verifies that every next reference lands inside the tree.
// Deferred containers point at themselves, so they pass whether or not their
// table was attached.
func (t *Tree) checkNext() error {
	for tp := range t.Flatten() {
		if tp.Next == "" {
			continue
		}
		if _, ok := t.index[tp.Next]; !ok {
			return &MalformedDataError{Table: t.name, TocID: tp.TocID, Field: "next", Reason: "references unknown topic " + tp.Next}
		}
	}
	return nil
}

// Name returns the name of the root table.
func (t *Tree) Name() string {
	return t.name
}

// Topics returns the top-level topics in display order.
func (t *Tree) Topics() []*Topic {
	return slices.Clone(t.topics)
}

// Tables returns the names of the tables the tree was built from, root first.
func (t *Tree) Tables() []string {
	return slices.Clone(t.tables)
}

// WithTables returns a copy of t reporting tables as its source tables.
// It is used to restore the table list of a tree that was stored as a
// single nested document. An empty list leaves the tables unchanged.
func (t *Tree) WithTables(tables []string) *Tree {
	c := *t
	if len(tables) > 0 {
		c.tables = slices.Clone(tables)
	}
	return &c
}

// Len returns the number of topics in the tree.
func (t *Tree) Len() int {
	return len(t.index)
}

// FindByTocID returns the topic with the given identifier at any depth.
func (t *Tree) FindByTocID(id string) (*Topic, bool) {
	tp, ok := t.index[id]
	return tp, ok
}

// Parent returns the container holding the topic, or nil for top-level topics
// and unknown identifiers.
func (t *Tree) Parent(id string) *Topic {
	return t.parent[id]
}

// Path returns the chain of topics from the top level down to id, inclusive.
// It returns nil when id is unknown.
func (t *Tree) Path(id string) []*Topic {
	tp, ok := t.index[id]
	if !ok {
		return nil
	}
	path := []*Topic{tp}
	for p := t.parent[id]; p != nil; p = t.parent[p.TocID] {
		path = append(path, p)
	}
	slices.Reverse(path)
	return path
}

// Table returns the topics that make up the named table: the top level for
// the root table, or the children of the container with that tocID.
func (t *Tree) Table(name string) ([]*Topic, bool) {
	if name == t.name {
		return t.Topics(), true
	}
	tp, ok := t.index[name]
	if !ok || len(tp.Children) == 0 {
		return nil, false
	}
	return slices.Clone(tp.Children), true
}

// Walk yields every topic in pre-order together with its depth (0 for top-level).
func (t *Tree) Walk() iter.Seq2[int, *Topic] {
	return func(yield func(int, *Topic) bool) {
		walk(t.topics, 0, yield)
	}
}

func walk(topics []*Topic, depth int, yield func(int, *Topic) bool) bool {
	for _, tp := range topics {
		if !yield(depth, tp) {
			return false
		}
		if !walk(tp.Children, depth+1, yield) {
			return false
		}
	}
	return true
}

// Flatten yields every topic in pre-order, preserving display order. Each
// call starts a fresh traversal.
func (t *Tree) Flatten() iter.Seq[*Topic] {
	return func(yield func(*Topic) bool) {
		for _, tp := range t.Walk() {
			if !yield(tp) {
				return
			}
		}
	}
}

// Deferred returns the containers whose child table was never attached.
func (t *Tree) Deferred() []*Topic {
	var out []*Topic
	for tp := range t.Flatten() {
		if tp.Deferred() {
			out = append(out, tp)
		}
	}
	return out
}

// MatchTitle returns, in display order, the topics whose title contains q
// ignoring case.
func (t *Tree) MatchTitle(q string) []*Topic {
	if strings.TrimSpace(q) == "" {
		return nil
	}
	// Casers keep state and t may be shared, so each call gets its own.
	fold := cases.Fold()
	needle := fold.String(q)
	var out []*Topic
	for tp := range t.Flatten() {
		if strings.Contains(fold.String(tp.Title), needle) {
			out = append(out, tp)
		}
	}
	return out
}
