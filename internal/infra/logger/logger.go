// Package logger owns the process-wide slog logger. Until Setup succeeds
// every record is discarded, so packages can log unconditionally.
package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Config selects where the log file lives and how verbose it is.
type Config struct {
	Root    string
	Debug   bool
	Command string // recorded on every line, e.g. "mesh"
}

// Dir is the log directory relative to the workspace root.
var Dir = filepath.Join(".aerogrid", "logs")

// FileName is the log file name inside Dir.
const FileName = "aerogrid.log"

type state struct {
	log        *slog.Logger
	file       *os.File
	path       string
	invocation string
}

var (
	mu  sync.RWMutex
	cur = discardState()
)

func discardState() state {
	return state{log: slog.New(slog.NewJSONHandler(io.Discard, nil))}
}

// Setup points the global logger at <root>/.aerogrid/logs/aerogrid.log and
// returns a cleanup that closes the file and restores the discard logger.
// Every line carries an invocation id shared by one CLI run.
func Setup(cfg Config) (func() error, error) {
	root := "."
	if cfg.Root != "" {
		root = filepath.Clean(cfg.Root)
	}

	dir := filepath.Join(root, Dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		reset()
		return nil, err
	}

	path := filepath.Join(dir, FileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		reset()
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: slog.LevelInfo, ReplaceAttr: utcTime}
	if cfg.Debug {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}

	inv := uuid.NewString()
	l := slog.New(slog.NewJSONHandler(f, opts)).With("invocation", inv)
	if cfg.Command != "" {
		l = l.With("cmd", cfg.Command)
	}

	mu.Lock()
	cur = state{log: l, file: f, path: path, invocation: inv}
	mu.Unlock()

	l.Info("logger.initialized", "path", path, "debug", cfg.Debug)

	return func() error {
		mu.Lock()
		defer mu.Unlock()
		var cerr error
		if cur.file != nil {
			cerr = cur.file.Close()
		}
		cur = discardState()
		return cerr
	}, nil
}

func utcTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
		a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
	}
	return a
}

func reset() {
	mu.Lock()
	defer mu.Unlock()
	cur = discardState()
}

// L returns the current global logger.
func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return cur.log
}

// Component returns L tagged with a component name.
func Component(name string) *slog.Logger {
	return L().With("component", name)
}

func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	return cur.path
}

// Invocation is the id attached to every line since Setup; empty before.
func Invocation() string {
	mu.RLock()
	defer mu.RUnlock()
	return cur.invocation
}

func IsReady() error {
	mu.RLock()
	defer mu.RUnlock()
	if cur.file == nil || cur.path == "" {
		return errors.New("logger not initialized")
	}
	return nil
}
