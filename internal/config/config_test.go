package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.Source.Dir != "." {
		t.Fatalf("Source.Dir = %q, want .", cfg.Source.Dir)
	}
	if cfg.Server.Listen != "127.0.0.1:8088" {
		t.Fatalf("Server.Listen = %q", cfg.Server.Listen)
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" {
		t.Fatalf("console level = %q, want normal", cfg.Logging.ConsoleLogger.Level)
	}
}

func TestLoad_WithFile(t *testing.T) {
	path := writeConfig(t, `source:
  dir: nav-links/json
  root: index-d46e1
  strict: true
server:
  listen: 0.0.0.0:9000
logging:
  console:
    level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	wantDir := filepath.Join(filepath.Dir(path), "nav-links", "json")
	if cfg.Source.Dir != wantDir {
		t.Fatalf("Source.Dir = %q, want %q", cfg.Source.Dir, wantDir)
	}
	if cfg.Source.Root != "index-d46e1" || !cfg.Source.Strict {
		t.Fatalf("Source = %+v", cfg.Source)
	}
	if cfg.Server.Listen != "0.0.0.0:9000" {
		t.Fatalf("Server.Listen = %q", cfg.Server.Listen)
	}
	if cfg.Logging.ConsoleLogger.Level != "debug" {
		t.Fatalf("console level = %q", cfg.Logging.ConsoleLogger.Level)
	}
	// untouched sections keep their defaults
	if cfg.Logging.FileLogger.Level != "none" {
		t.Fatalf("file level = %q, want none", cfg.Logging.FileLogger.Level)
	}
}

func TestLoad_AbsolutePathsKept(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "snap.json")
	path := writeConfig(t, "source:\n  snapshot: "+abs+"\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Source.Snapshot != abs {
		t.Fatalf("Snapshot = %q, want %q", cfg.Source.Snapshot, abs)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeConfig(t, "")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Listen != "127.0.0.1:8088" {
		t.Fatalf("Server.Listen = %q", cfg.Server.Listen)
	}
}

func TestLoad_UnknownField(t *testing.T) {
	path := writeConfig(t, "source:\n  directory: x\n")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "directory") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestValidate_DirRequired(t *testing.T) {
	cfg := Default()
	cfg.Source.Dir = ""
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "'source.dir' is required") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_RootIsNotAPath(t *testing.T) {
	cfg := Default()
	cfg.Source.Root = "../other/index"
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "'source.root'") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_Listen(t *testing.T) {
	cfg := Default()
	cfg.Server.Listen = "localhost"
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "host:port") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_LogLevel(t *testing.T) {
	cfg := Default()
	cfg.Logging.ConsoleLogger.Level = "verbose"
	err := Validate(cfg)
	if err == nil || !strings.Contains(err.Error(), "'logging.console.level' must be one of") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_FileLoggerNeedsDestination(t *testing.T) {
	cfg := Default()
	cfg.Logging.FileLogger.Level = "debug"
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "destination") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Source.Dir = ""
	cfg.Server.Listen = ""
	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"source.dir", "server.listen"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestFind_WalksUp(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, FileName), []byte(""), 0644); err != nil {
		t.Fatal(err)
	}
	deep := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(deep, 0755); err != nil {
		t.Fatal(err)
	}
	got, ok := Find(deep)
	if !ok {
		t.Fatal("config not found")
	}
	if got != filepath.Join(root, FileName) {
		t.Fatalf("got %q", got)
	}
}

func TestDump_RoundTrip(t *testing.T) {
	data, err := Dump(Default())
	if err != nil {
		t.Fatal(err)
	}
	path := writeConfig(t, string(data))
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("dumped config does not load: %v\n%s", err, data)
	}
	if cfg.Server.Listen != Default().Server.Listen {
		t.Fatalf("Server.Listen = %q", cfg.Server.Listen)
	}
}

func TestPrepare_FileLogger(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "navtoc.log")
	conf := LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "debug", Destination: dest, Mode: "overwrite"},
	}
	log, closer, err := conf.Prepare("navtoc")
	if err != nil {
		t.Fatal(err)
	}
	log.Debug("hello from test")
	if err := closer(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hello from test") {
		t.Fatalf("log file = %q", data)
	}
}
