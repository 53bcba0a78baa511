package main

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	cli "github.com/urfave/cli/v3"

	"github.com/jorge-barreto/navtoc/internal/config"
	"github.com/jorge-barreto/navtoc/internal/docs"
	"github.com/jorge-barreto/navtoc/internal/doctor"
	"github.com/jorge-barreto/navtoc/internal/navlinks"
	"github.com/jorge-barreto/navtoc/internal/scaffold"
	"github.com/jorge-barreto/navtoc/internal/server"
	"github.com/jorge-barreto/navtoc/internal/snapshot"
	"github.com/jorge-barreto/navtoc/internal/ux"
)

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a starter " + config.FileName + " in the current directory",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			return scaffold.Init(dir, os.Stdout)
		},
	}
}

func treeCmd() *cli.Command {
	return &cli.Command{
		Name:  "tree",
		Usage: "Print the table of contents as an outline",
		Flags: append(sourceFlags(),
			&cli.IntFlag{Name: "depth", Usage: "show at most `N` levels (0 for all)"},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			tree, _, err := loadTree(ctx, sourceFor(envFromContext(ctx).Cfg, cmd), false)
			if err != nil {
				return err
			}
			depth := cmd.Int("depth")
			if depth < 0 {
				return fmt.Errorf("--depth must not be negative")
			}
			ux.RenderTree(os.Stdout, tree, depth)
			return nil
		},
	}
}

func findCmd() *cli.Command {
	return &cli.Command{
		Name:      "find",
		Usage:     "Show one topic by its tocID",
		ArgsUsage: "<tocID>",
		Flags:     sourceFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id := cmd.Args().First()
			if id == "" {
				return fmt.Errorf("tocID argument is required")
			}
			tree, _, err := loadTree(ctx, sourceFor(envFromContext(ctx).Cfg, cmd), false)
			if err != nil {
				return err
			}
			tp, ok := tree.FindByTocID(id)
			if !ok {
				return fmt.Errorf("topic %q: %w", id, navlinks.ErrNotFound)
			}
			ux.RenderTopic(os.Stdout, tree, tp)
			return nil
		},
	}
}

func flatCmd() *cli.Command {
	return &cli.Command{
		Name:  "flat",
		Usage: "List every topic in display order",
		Flags: sourceFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			tree, _, err := loadTree(ctx, sourceFor(envFromContext(ctx).Cfg, cmd), false)
			if err != nil {
				return err
			}
			ux.RenderList(os.Stdout, slices.Collect(tree.Flatten()))
			return nil
		},
	}
}

func searchCmd() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Find topics by title, ignoring case",
		ArgsUsage: "<query>",
		Flags:     sourceFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			q := strings.Join(cmd.Args().Slice(), " ")
			if strings.TrimSpace(q) == "" {
				return fmt.Errorf("query argument is required")
			}
			tree, _, err := loadTree(ctx, sourceFor(envFromContext(ctx).Cfg, cmd), false)
			if err != nil {
				return err
			}
			matches := tree.MatchTitle(q)
			if len(matches) == 0 {
				fmt.Printf("%sno topic title contains %q%s\n", ux.Dim, q, ux.Reset)
				return nil
			}
			ux.RenderList(os.Stdout, matches)
			return nil
		},
	}
}

func doctorCmd() *cli.Command {
	return &cli.Command{
		Name:  "doctor",
		Usage: "Check every table in the source directory",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Usage: "check `DIR` instead of source.dir"},
			&cli.StringFlag{Name: "root", Usage: "start from table `NAME` instead of source.root"},
			&cli.BoolFlag{Name: "strict", Usage: "fail on missing or unreachable tables"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			env := envFromContext(ctx)
			src := sourceFor(env.Cfg, cmd)

			rep, err := doctor.Run(ctx, os.DirFS(src.Dir), src.Root, env.Log)
			if err != nil {
				return err
			}
			ux.RenderReport(os.Stdout, src.Dir, rep)
			if rep.Err() != nil {
				return fmt.Errorf("%d problem(s) found", len(rep.Problems))
			}
			if src.Strict && rep.Warnings() {
				return fmt.Errorf("%d missing and %d unreachable table(s)", len(rep.Missing), len(rep.Orphans))
			}
			return nil
		},
	}
}

func exportCmd() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Save the resolved tree as a snapshot",
		ArgsUsage: "[file]",
		Flags:     sourceFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			env := envFromContext(ctx)
			path := cmd.Args().First()
			if path == "" {
				path = env.Cfg.Source.Snapshot
			}
			if path == "" {
				return fmt.Errorf("file argument is required when source.snapshot is not set")
			}
			tree, _, err := loadTree(ctx, sourceFor(env.Cfg, cmd), true)
			if err != nil {
				return err
			}
			snap, err := snapshot.Save(path, tree)
			if err != nil {
				return err
			}
			ux.Success(os.Stdout, "wrote %d topics from %d table(s) to %s (%s)", tree.Len(), len(tree.Tables()), path, snap.ID)
			return nil
		},
	}
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the tree over HTTP",
		Flags: append(sourceFlags(),
			&cli.StringFlag{Name: "listen", Usage: "listen on `ADDR` instead of server.listen"},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			env := envFromContext(ctx)
			tree, id, err := loadTree(ctx, sourceFor(env.Cfg, cmd), false)
			if err != nil {
				return err
			}
			addr := env.Cfg.Server.Listen
			if l := cmd.String("listen"); l != "" {
				addr = l
			}
			return server.New(tree, id, env.Log).ListenAndServe(ctx, addr)
		},
	}
}

func dumpConfigCmd() *cli.Command {
	return &cli.Command{
		Name:  "dumpconfig",
		Usage: "Print the effective configuration",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			data, err := config.Dump(envFromContext(ctx).Cfg)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		},
	}
}

func docsCmd() *cli.Command {
	return &cli.Command{
		Name:      "docs",
		Usage:     "Show documentation",
		ArgsUsage: "[topic]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				fmt.Print("\nAvailable topics:\n\n")
				for _, t := range docs.All() {
					fmt.Printf("  %-14s %s\n", t.Name, t.Summary)
				}
				fmt.Println("\nRun 'navtoc docs <topic>' to read a topic.")
				return nil
			}
			t, err := docs.Get(name)
			if err != nil {
				return err
			}
			fmt.Print(t.Content)
			return nil
		},
	}
}
