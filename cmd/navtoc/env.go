package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jorge-barreto/navtoc/internal/config"
)

type envKey struct{}

// localEnv carries program-wide state between the Before and After hooks
// and the command actions.
type localEnv struct {
	Cfg        *config.Config
	ConfigFile string
	Log        *zap.Logger

	closeLog      func() error
	restoreStdLog func()
	start         time.Time
}

func contextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, &localEnv{start: time.Now(), Log: zap.NewNop()})
}

func envFromContext(ctx context.Context) *localEnv {
	if env, ok := ctx.Value(envKey{}).(*localEnv); ok {
		return env
	}
	panic("local environment not found in context")
}

func (e *localEnv) uptime() time.Duration {
	return time.Since(e.start)
}
