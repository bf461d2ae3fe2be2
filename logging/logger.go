// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"rivaas.dev/i18nroutes/diag"
)

// HandlerType represents the type of logging handler.
type HandlerType string

const (
	// JSONHandler outputs structured JSON logs.
	JSONHandler HandlerType = "json"
	// TextHandler outputs key=value text logs.
	TextHandler HandlerType = "text"
	// ConsoleHandler outputs human-readable colored logs.
	ConsoleHandler HandlerType = "console"
)

// Level represents log level.
type Level = slog.Level

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Logger owns a [*slog.Logger] built from its options.
//
// Thread-safety: All public methods are safe for concurrent use.
type Logger struct {
	handlerType HandlerType
	output      io.Writer
	level       slog.LevelVar

	addSource   bool
	replaceAttr func(groups []string, a slog.Attr) slog.Attr
	attrs       []any

	customLogger *slog.Logger
	useCustom    bool

	slogger atomic.Pointer[slog.Logger]
	mu      sync.Mutex

	registerGlobal bool
}

// Option is a functional option for configuring the logger.
type Option func(*Logger)

func defaultLogger() *Logger {
	l := &Logger{
		handlerType: ConsoleHandler,
		output:      os.Stderr,
	}
	l.level.Set(LevelInfo)
	return l
}

// New creates a Logger with the given options. The default is a console
// handler writing info and above to stderr.
//
// New does not replace the global slog logger unless [WithGlobalLogger]
// is given.
func New(opts ...Option) (*Logger, error) {
	l := defaultLogger()
	for _, opt := range opts {
		opt(l)
	}

	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.initializeHandler(); err != nil {
		return nil, err
	}
	return l, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Logger {
	l, err := New(opts...)
	if err != nil {
		panic("logging initialization failed: " + err.Error())
	}
	return l
}

// Validate checks the configuration.
func (l *Logger) Validate() error {
	if l.useCustom {
		if l.customLogger == nil {
			return ErrNilLogger
		}
		return nil
	}
	if l.output == nil {
		return errors.New("output writer cannot be nil")
	}
	switch l.handlerType {
	case JSONHandler, TextHandler, ConsoleHandler:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidHandler, l.handlerType)
	}
	return nil
}

// initializeHandler creates the slog logger (must be called with lock held).
func (l *Logger) initializeHandler() error {
	if l.useCustom {
		l.store(l.customLogger)
		return nil
	}

	opts := &slog.HandlerOptions{
		Level:       &l.level,
		AddSource:   l.addSource,
		ReplaceAttr: l.replaceAttr,
	}

	var handler slog.Handler
	switch l.handlerType {
	case JSONHandler:
		handler = slog.NewJSONHandler(l.output, opts)
	case TextHandler:
		handler = slog.NewTextHandler(l.output, opts)
	case ConsoleHandler:
		handler = newConsoleHandler(l.output, opts)
	default:
		return fmt.Errorf("%w: %s", ErrInvalidHandler, l.handlerType)
	}

	logger := slog.New(handler)
	if len(l.attrs) > 0 {
		logger = logger.With(l.attrs...)
	}
	l.store(logger)
	return nil
}

func (l *Logger) store(logger *slog.Logger) {
	l.slogger.Store(logger)
	if l.registerGlobal {
		slog.SetDefault(logger)
	}
}

// Logger returns the underlying slog.Logger.
func (l *Logger) Logger() *slog.Logger {
	return l.slogger.Load()
}

// With returns a logger with additional attributes.
func (l *Logger) With(args ...any) *slog.Logger {
	return l.Logger().With(args...)
}

// Debug logs at [LevelDebug].
func (l *Logger) Debug(msg string, args ...any) { l.Logger().Debug(msg, args...) }

// Info logs at [LevelInfo].
func (l *Logger) Info(msg string, args ...any) { l.Logger().Info(msg, args...) }

// Warn logs at [LevelWarn].
func (l *Logger) Warn(msg string, args ...any) { l.Logger().Warn(msg, args...) }

// Error logs at [LevelError].
func (l *Logger) Error(msg string, args ...any) { l.Logger().Error(msg, args...) }

// SetLevel changes the minimum level at runtime.
//
// Errors:
//   - ErrCannotChangeLevel for a custom logger
func (l *Logger) SetLevel(level Level) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.useCustom {
		return ErrCannotChangeLevel
	}
	l.level.Set(level)
	return nil
}

// Level returns the current minimum level.
func (l *Logger) Level() Level {
	return l.level.Level()
}

// Diagnostics returns a handler logging every diagnostic event at
// [LevelDebug], or at [LevelWarn] for the kinds listed in warn.
func (l *Logger) Diagnostics(warn ...diag.Kind) diag.Handler {
	return diag.HandlerFunc(func(e diag.Event) {
		level := LevelDebug
		for _, k := range warn {
			if e.Kind == k {
				level = LevelWarn
				break
			}
		}
		args := make([]any, 0, 2+2*len(e.Fields))
		args = append(args, "kind", string(e.Kind))
		for _, k := range slices.Sorted(maps.Keys(e.Fields)) {
			args = append(args, k, e.Fields[k])
		}
		l.Logger().Log(context.Background(), level, e.Message, args...)
	})
}

// ParseLevel converts a level name (debug, info, warn, error) into a Level.
// Names are case-insensitive and "warning" is accepted.
//
// Errors:
//   - ErrInvalidLevel for any other name
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
}

// ParseHandlerType converts a format name (json, text, console) into a
// HandlerType.
//
// Errors:
//   - ErrInvalidHandler for any other name
func ParseHandlerType(s string) (HandlerType, error) {
	t := HandlerType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case JSONHandler, TextHandler, ConsoleHandler:
		return t, nil
	case "":
		return ConsoleHandler, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidHandler, s)
}
