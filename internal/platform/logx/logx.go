// internal/platform/logx/logx.go
package logx

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/pterm/pterm"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the canonical lowercase name of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Err(err error, kv ...any)
	With(kv ...any) Logger
	SetLevel(lvl Level)
}

// Options configures a logger built with NewWithOptions.
type Options struct {
	// Writer receives log lines. Default: os.Stderr
	Writer io.Writer

	// Level is the minimum level written.
	Level Level

	// JSON switches pterm's formatter to one JSON object per line.
	JSON bool
}

// state is shared by a logger and all loggers derived from it with With,
// so SetLevel and writes are coordinated across scopes.
type state struct {
	mu  sync.Mutex
	lvl Level
}

type simpleLogger struct {
	st    *state
	scope []any // fixed key/value pairs
	lg    *pterm.Logger
}

func New() Logger {
	return NewWithLevel(ParseLevel(os.Getenv("SENTIMETER_LOG_LEVEL")))
}

// NewWithLevel creates a stderr logger with a specific log level
func NewWithLevel(lvl Level) Logger {
	return NewWithOptions(Options{Level: lvl})
}

// NewSilent creates a logger that only outputs errors (silent mode for UI)
func NewSilent() Logger {
	return NewWithLevel(LevelError)
}

// NewWithOptions creates a logger rendered by pterm's structured logger.
func NewWithOptions(opts Options) Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	// Level filtering happens here; pterm prints everything it is handed.
	lg := pterm.DefaultLogger.
		WithWriter(w).
		WithLevel(pterm.LogLevelTrace).
		WithTime(true).
		WithTimeFormat("15:04:05")
	if opts.JSON {
		lg = lg.WithFormatter(pterm.LogFormatterJSON)
	}

	return &simpleLogger{
		st: &state{lvl: opts.Level},
		lg: lg,
	}
}

func (s *simpleLogger) With(kv ...any) Logger {
	clone := *s
	clone.scope = append(append([]any{}, s.scope...), kvPairs(kv...)...)
	return &clone
}

func (s *simpleLogger) SetLevel(lvl Level) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	s.st.lvl = lvl
}

func (s *simpleLogger) Debug(msg string, kv ...any) { s.log(LevelDebug, msg, kv...) }
func (s *simpleLogger) Info(msg string, kv ...any)  { s.log(LevelInfo, msg, kv...) }
func (s *simpleLogger) Warn(msg string, kv ...any)  { s.log(LevelWarn, msg, kv...) }
func (s *simpleLogger) Err(err error, kv ...any) {
	if err == nil {
		return
	}
	s.log(LevelError, err.Error(), kv...)
}

func (s *simpleLogger) log(l Level, msg string, kv ...any) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	if l < s.st.lvl {
		return
	}

	fields := append(append([]any{}, s.scope...), kvPairs(kv...)...)
	args := s.lg.Args(fields...)

	switch l {
	case LevelDebug:
		s.lg.Debug(msg, args)
	case LevelInfo:
		s.lg.Info(msg, args)
	case LevelWarn:
		s.lg.Warn(msg, args)
	default:
		s.lg.Error(msg, args)
	}
}

// kvPairs normalizes a key/value list: keys become strings and a dangling
// key gets the value "(missing)".
func kvPairs(kv ...any) []any {
	out := make([]any, 0, len(kv)+1)
	for i := 0; i < len(kv); i += 2 {
		out = append(out, fmt.Sprint(kv[i]))
		if i+1 < len(kv) {
			out = append(out, kv[i+1])
		} else {
			out = append(out, "(missing)")
		}
	}
	return out
}

// ParseLevel converts a level name to a Level. Unknown names map to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "dbg":
		return LevelDebug
	case "info", "inf", "":
		return LevelInfo
	case "warn", "warning", "wrn":
		return LevelWarn
	case "err", "error":
		return LevelError
	default:
		return LevelInfo
	}
}
