package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/google/uuid"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/jorge-barreto/navtoc/internal/config"
	"github.com/jorge-barreto/navtoc/internal/doctor"
	"github.com/jorge-barreto/navtoc/internal/navlinks"
	"github.com/jorge-barreto/navtoc/internal/snapshot"
)

func sourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "dir", Usage: "read tables from `DIR` instead of source.dir"},
		&cli.StringFlag{Name: "root", Usage: "start from table `NAME` instead of source.root"},
		&cli.BoolFlag{Name: "strict", Usage: "treat a missing child table as an error"},
	}
}

// sourceFor applies the command line overrides to the configured source.
func sourceFor(cfg *config.Config, cmd *cli.Command) config.SourceConfig {
	src := cfg.Source
	if dir := cmd.String("dir"); dir != "" {
		src.Dir = dir
		src.Snapshot = ""
	}
	if root := cmd.String("root"); root != "" {
		src.Root = root
	}
	if cmd.Bool("strict") {
		src.Strict = true
	}
	return src
}

// loadTree returns the navigation tree and an identifier for it. A configured
// snapshot is preferred unless fromTables is set.
func loadTree(ctx context.Context, src config.SourceConfig, fromTables bool) (*navlinks.Tree, string, error) {
	env := envFromContext(ctx)

	if src.Snapshot != "" && !fromTables {
		snap, err := snapshot.Load(src.Snapshot)
		switch {
		case err == nil:
			env.Log.Debug("Loaded snapshot", zap.String("file", src.Snapshot), zap.String("id", snap.ID), zap.Time("created", snap.Created))
			return snap.Tree, snap.ID, nil
		case errors.Is(err, fs.ErrNotExist):
			env.Log.Info("Snapshot not found, reading tables", zap.String("file", src.Snapshot))
		default:
			return nil, "", fmt.Errorf("loading snapshot: %w", err)
		}
	}

	fsys := os.DirFS(src.Dir)
	root, err := rootTable(fsys, src.Root)
	if err != nil {
		return nil, "", err
	}
	r := &navlinks.Resolver{FS: fsys, Strict: src.Strict, Log: env.Log}
	tree, err := r.Resolve(ctx, root)
	if err != nil {
		return nil, "", err
	}
	if deferred := tree.Deferred(); len(deferred) > 0 {
		env.Log.Info("Some child tables are missing", zap.Int("containers", len(deferred)))
	}
	return tree, uuid.NewString(), nil
}

// rootTable returns root, or the only table of fsys no other table refers to.
func rootTable(fsys fs.FS, root string) (string, error) {
	if root != "" {
		return root, nil
	}
	scan, err := doctor.ScanDir(fsys)
	if err != nil {
		return "", err
	}
	roots := scan.Roots()
	switch len(roots) {
	case 1:
		return roots[0], nil
	case 0:
		return "", errors.New("no root table found, set source.root or use --root")
	}
	return "", fmt.Errorf("several root candidates (%s), set source.root or use --root", strings.Join(roots, ", "))
}
