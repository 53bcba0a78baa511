package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/jorge-barreto/navtoc/internal/config"
	"github.com/jorge-barreto/navtoc/internal/ux"
)

func main() {
	ctx, stop := signal.NotifyContext(contextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := newApp()
	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%serror:%s %v\n", ux.Red, ux.Reset, err)
		stop()
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:        "navtoc",
		Usage:       "Load and browse webhelp navigation tables",
		Description: "Run 'navtoc docs' for documentation on the table format, configuration, and commands.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (default: nearest " + config.FileName + ")"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log debug messages to the console"},
		},
		Before: initializeAppContext,
		After:  destroyAppContext,
		Commands: []*cli.Command{
			initCmd(),
			treeCmd(),
			findCmd(),
			flatCmd(),
			searchCmd(),
			doctorCmd(),
			exportCmd(),
			serveCmd(),
			dumpConfigCmd(),
			docsCmd(),
		},
	}
}

func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	env := envFromContext(ctx)

	if !config.EnableColorOutput(os.Stdout) {
		ux.DisableColor()
	}

	env.ConfigFile = cmd.String("config")
	if env.ConfigFile == "" {
		if wd, err := os.Getwd(); err == nil {
			env.ConfigFile, _ = config.Find(wd)
		}
	}
	var err error
	if env.Cfg, err = config.Load(env.ConfigFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		env.Cfg.Logging.ConsoleLogger.Level = "debug"
	}
	if env.Log, env.closeLog, err = env.Cfg.Logging.Prepare("navtoc"); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.restoreStdLog = zap.RedirectStdLog(env.Log)

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("runtime", runtime.Version()))
	if env.ConfigFile == "" {
		env.Log.Debug("Using defaults (no configuration file)")
	} else {
		env.Log.Debug("Using configuration", zap.String("file", env.ConfigFile))
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	env := envFromContext(ctx)
	env.Log.Debug("Program ended", zap.Duration("elapsed", env.uptime()))

	if env.restoreStdLog != nil {
		env.restoreStdLog()
	}
	if env.closeLog != nil {
		if er := env.closeLog(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close log file: %w", er))
		}
	}
	return err
}
