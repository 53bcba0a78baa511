// Package doctor checks a nav-links directory for broken or unreachable tables.
package doctor

import (
	"context"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/maruel/natural"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/jorge-barreto/navtoc/internal/navlinks"
)

// Scan is the result of parsing every table in a directory on its own.
type Scan struct {
	Tables   []string                  // every table name, natural order
	Parsed   map[string]*navlinks.Tree // tables that parsed cleanly
	Problems []error                   // one per table that failed to parse
	// refs maps a referenced table name to the tables referring to it.
	refs map[string][]string
}

// ScanDir parses every table file at the top of fsys.
func ScanDir(fsys fs.FS) (*Scan, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading table directory: %w", err)
	}
	s := &Scan{
		Parsed: make(map[string]*navlinks.Tree),
		refs:   make(map[string][]string),
	}
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), navlinks.Ext)
		if e.IsDir() || !ok {
			continue
		}
		s.Tables = append(s.Tables, name)
	}
	slices.SortFunc(s.Tables, compareNatural)

	for _, name := range s.Tables {
		data, err := fs.ReadFile(fsys, name+navlinks.Ext)
		if err != nil {
			s.Problems = append(s.Problems, err)
			continue
		}
		tree, err := navlinks.Parse(data, name)
		if err != nil {
			s.Problems = append(s.Problems, err)
			continue
		}
		s.Parsed[name] = tree
		for _, tp := range tree.Deferred() {
			s.refs[tp.Next] = append(s.refs[tp.Next], name)
		}
	}
	return s, nil
}

// Roots returns the parsed tables no other table refers to, in natural order.
func (s *Scan) Roots() []string {
	var roots []string
	for _, name := range s.Tables {
		if _, ok := s.Parsed[name]; !ok {
			continue
		}
		if len(s.refs[name]) == 0 {
			roots = append(roots, name)
		}
	}
	return roots
}

// Missing identifies a container whose child table does not exist.
type Missing struct {
	Table string // expected table name
	TocID string // container referring to it
}

// Report is the outcome of Run. Problems make the directory unusable;
// Missing and Orphans are warnings.
type Report struct {
	Root     string
	Tables   int
	Topics   int
	Reached  []string
	Missing  []Missing
	Orphans  []string
	Problems []error
}

// Err combines the problems that make the directory unusable. Missing and
// orphan tables are warnings.
func (r *Report) Err() error {
	return multierr.Combine(r.Problems...)
}

// Warnings reports whether the report has missing or orphan tables.
func (r *Report) Warnings() bool {
	return len(r.Missing) > 0 || len(r.Orphans) > 0
}

// Run scans fsys and resolves the tree from root. An empty root is inferred
// when exactly one table is unreferenced.
func Run(ctx context.Context, fsys fs.FS, root string, log *zap.Logger) (*Report, error) {
	if log == nil {
		log = zap.NewNop()
	}
	scan, err := ScanDir(fsys)
	if err != nil {
		return nil, err
	}
	rep := &Report{Tables: len(scan.Tables), Problems: slices.Clone(scan.Problems)}
	log.Debug("Scanned tables", zap.Int("tables", len(scan.Tables)), zap.Int("problems", len(scan.Problems)))

	if root == "" {
		roots := scan.Roots()
		switch len(roots) {
		case 0:
			rep.Problems = append(rep.Problems, fmt.Errorf("no root table found"))
			return rep, nil
		case 1:
			root = roots[0]
			log.Info("Using inferred root table", zap.String("root", root))
		default:
			rep.Problems = append(rep.Problems, fmt.Errorf("several root candidates, pick one with --root: %s", strings.Join(roots, ", ")))
			return rep, nil
		}
	}
	rep.Root = root

	tree, err := (&navlinks.Resolver{FS: fsys, Log: log}).Resolve(ctx, root)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		rep.Problems = append(rep.Problems, err)
		return rep, nil
	}
	rep.Topics = tree.Len()
	rep.Reached = tree.Tables()
	for _, tp := range tree.Deferred() {
		rep.Missing = append(rep.Missing, Missing{Table: tp.Next, TocID: tp.TocID})
	}

	reached := make(map[string]bool, len(rep.Reached))
	for _, name := range rep.Reached {
		reached[name] = true
	}
	for _, name := range scan.Tables {
		if _, ok := scan.Parsed[name]; ok && !reached[name] {
			rep.Orphans = append(rep.Orphans, name)
		}
	}
	return rep, nil
}

func compareNatural(a, b string) int {
	switch {
	case natural.Less(a, b):
		return -1
	case natural.Less(b, a):
		return 1
	default:
		return 0
	}
}
