// Package snapshot stores a resolved navigation tree as a single JSON file.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/jorge-barreto/navtoc/internal/navlinks"
)

// Snapshot is a stored tree together with its identity. Tree.Tables reports
// the tables the tree was originally resolved from.
type Snapshot struct {
	ID      string
	Root    string
	Created time.Time
	Tree    *navlinks.Tree
}

type file struct {
	ID      string          `json:"id"`
	Root    string          `json:"root"`
	Created time.Time       `json:"created"`
	Tables  []string        `json:"tables,omitempty"`
	Topics  json.RawMessage `json:"topics"`
}

// Save writes tree to path atomically under a new snapshot ID.
func Save(path string, tree *navlinks.Tree) (*Snapshot, error) {
	topics, err := navlinks.MarshalTopics(tree)
	if err != nil {
		return nil, fmt.Errorf("encoding topics: %w", err)
	}
	s := &Snapshot{
		ID:      uuid.NewString(),
		Root:    tree.Name(),
		Created: time.Now().UTC().Truncate(time.Second),
		Tree:    tree,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(file{ID: s.ID, Root: s.Root, Created: s.Created, Tables: tree.Tables(), Topics: topics}); err != nil {
		return nil, err
	}
	if err := writeFileAtomic(path, buf.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("writing snapshot %s: %w", path, err)
	}
	return s, nil
}

// Load reads a snapshot. The topics go through the regular table loader, so
// a tampered snapshot fails the same checks as a generated table.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding snapshot %s: %w", path, err)
	}
	if f.ID == "" || f.Root == "" {
		return nil, fmt.Errorf("snapshot %s: missing id or root", path)
	}
	tree, err := navlinks.Parse(data, f.Root)
	if err != nil {
		return nil, err
	}
	return &Snapshot{ID: f.ID, Root: f.Root, Created: f.Created, Tree: tree.WithTables(f.Tables)}, nil
}
