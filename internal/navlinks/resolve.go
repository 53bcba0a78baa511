package navlinks

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"go.uber.org/zap"
)

// Resolver builds a single tree out of a directory of tables. Every deferred
// container pulls in the table named by its next reference.
type Resolver struct {
	FS fs.FS
	// Strict turns a missing child table into an error instead of leaving
	// the container deferred.
	Strict bool
	Log    *zap.Logger
}

// Resolve loads the root table and, breadth-first, every table reachable from it.
func (r *Resolver) Resolve(ctx context.Context, root string) (*Tree, error) {
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}

	topics, err := r.readTable(root)
	if err != nil {
		return nil, fmt.Errorf("loading root table: %w", err)
	}
	owners := make(map[string]string)
	if err := claim(owners, root, topics); err != nil {
		return nil, err
	}

	loaded := map[string]bool{root: true}
	tables := []string{root}
	queue := deferredOf(topics)
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tp := queue[0]
		queue = queue[1:]

		name := tp.Next
		if loaded[name] {
			return nil, &MalformedDataError{Table: name, TocID: tp.TocID, Field: "next", Reason: "references a table that is already part of the tree"}
		}
		children, err := r.readTable(name)
		if errors.Is(err, fs.ErrNotExist) {
			if r.Strict {
				return nil, fmt.Errorf("table %s for topic %s: %w", name, tp.TocID, err)
			}
			log.Warn("Child table missing, topic left deferred", zap.String("table", name), zap.String("tocID", tp.TocID))
			continue
		}
		if err != nil {
			return nil, err
		}
		if len(children) == 0 {
			return nil, &MalformedDataError{Table: name, TocID: tp.TocID, Field: "topics", Reason: "is empty but the parent declares children"}
		}
		if err := claim(owners, name, children); err != nil {
			return nil, err
		}

		loaded[name] = true
		tables = append(tables, name)
		tp.Children = children
		log.Debug("Attached table", zap.String("table", name), zap.String("parent", tp.TocID), zap.Int("topics", len(children)))
		queue = append(queue, deferredOf(children)...)
	}

	t, err := newTree(root, topics)
	if err != nil {
		return nil, err
	}
	t.tables = tables
	if err := t.checkNext(); err != nil {
		return nil, err
	}
	log.Debug("Resolved navigation tree", zap.String("root", root), zap.Int("tables", len(tables)), zap.Int("topics", t.Len()))
	return t, nil
}

func (r *Resolver) readTable(name string) ([]*Topic, error) {
	file := name + Ext
	if strings.ContainsAny(name, `/\`) || !fs.ValidPath(file) {
		return nil, &MalformedDataError{Table: name, Reason: "is not a valid table name"}
	}
	data, err := fs.ReadFile(r.FS, file)
	if err != nil {
		return nil, err
	}
	return parseTopics(data, name)
}

// claim records the owning table of every tocID in topics and rejects
// identifiers already owned by another table.
func claim(owners map[string]string, table string, topics []*Topic) error {
	for _, tp := range topics {
		if prev, ok := owners[tp.TocID]; ok {
			return &MalformedDataError{Table: table, TocID: tp.TocID, Field: "tocID", Reason: "duplicates a topic of table " + prev}
		}
		owners[tp.TocID] = table
		if err := claim(owners, table, tp.Children); err != nil {
			return err
		}
	}
	return nil
}

func deferredOf(topics []*Topic) []*Topic {
	var out []*Topic
	for _, tp := range topics {
		if tp.Deferred() {
			out = append(out, tp)
		}
		out = append(out, deferredOf(tp.Children)...)
	}
	return out
}
