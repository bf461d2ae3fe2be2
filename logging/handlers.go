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
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorDebug = lipgloss.Color("#94A3B8")
	colorInfo  = lipgloss.Color("#06B6D4")
	colorWarn  = lipgloss.Color("#F59E0B")
	colorError = lipgloss.Color("#EF4444")
	colorDim   = lipgloss.Color("#64748B")
)

// consoleStyles holds the styles of a console handler, bound to the
// renderer of its output so that colors are dropped when it is not a
// terminal.
type consoleStyles struct {
	time    lipgloss.Style
	levels  [4]lipgloss.Style // debug, info, warn, error
	message lipgloss.Style
	key     lipgloss.Style
	source  lipgloss.Style
}

func newConsoleStyles(w io.Writer) *consoleStyles {
	r := lipgloss.NewRenderer(w)
	level := func(c lipgloss.Color) lipgloss.Style {
		return r.NewStyle().Foreground(c).Bold(true)
	}
	return &consoleStyles{
		time:    r.NewStyle().Foreground(colorDim),
		levels:  [4]lipgloss.Style{level(colorDebug), level(colorInfo), level(colorWarn), level(colorError)},
		message: r.NewStyle(),
		key:     r.NewStyle().Foreground(colorDim),
		source:  r.NewStyle().Foreground(colorDim).Italic(true),
	}
}

func (s *consoleStyles) level(level slog.Level) lipgloss.Style {
	switch {
	case level >= slog.LevelError:
		return s.levels[3]
	case level >= slog.LevelWarn:
		return s.levels[2]
	case level >= slog.LevelInfo:
		return s.levels[1]
	default:
		return s.levels[0]
	}
}

// consoleHandler implements [slog.Handler] for human-readable console
// output:
//
//	15:04:05.000 INFO  built rules redirects=12 rewrites=4
//	15:04:05.002 WARN  routes data file ignored file=about/_routes.yaml
type consoleHandler struct {
	opts   *slog.HandlerOptions
	styles *consoleStyles
	mu     *sync.Mutex
	output io.Writer
	attrs  []slog.Attr
	groups []string
}

func newConsoleHandler(w io.Writer, opts *slog.HandlerOptions) *consoleHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &consoleHandler{
		opts:   opts,
		styles: newConsoleStyles(w),
		mu:     &sync.Mutex{},
		output: w,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle formats and writes a log record.
func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	if !r.Time.IsZero() {
		b.WriteString(h.styles.time.Render(r.Time.Format("15:04:05.000")))
		b.WriteByte(' ')
	}
	name := r.Level.String()
	b.WriteString(h.styles.level(r.Level).Render(name))
	b.WriteString(strings.Repeat(" ", max(1, 6-len(name))))
	b.WriteString(h.styles.message.Render(r.Message))

	for _, a := range h.attrs {
		h.appendAttr(&b, "", a)
	}
	prefix := strings.Join(h.groups, ".")
	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&b, prefix, a)
		return true
	})

	if h.opts.AddSource && r.PC != 0 {
		if src := recordSource(r.PC); src != "" {
			b.WriteByte(' ')
			b.WriteString(h.styles.source.Render("(" + src + ")"))
		}
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.output, b.String())
	return err
}

// WithAttrs returns a new handler with additional attributes. Their keys
// are qualified with the current groups.
func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append([]slog.Attr(nil), h.attrs...)
	prefix := strings.Join(h.groups, ".")
	for _, a := range attrs {
		if prefix != "" {
			a.Key = prefix + "." + a.Key
		}
		c.attrs = append(c.attrs, a)
	}
	return &c
}

// WithGroup returns a new handler with a group name.
func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := *h
	c.groups = append(append([]string(nil), h.groups...), name)
	return &c
}

func (h *consoleHandler) appendAttr(b *strings.Builder, prefix string, a slog.Attr) {
	if h.opts.ReplaceAttr != nil && a.Value.Kind() != slog.KindGroup {
		a = h.opts.ReplaceAttr(h.groups, a)
	}
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			h.appendAttr(b, key, ga)
		}
		return
	}

	b.WriteByte(' ')
	b.WriteString(h.styles.key.Render(key + "="))
	b.WriteString(formatValue(a.Value))
}

func formatValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	case slog.KindFloat64:
		return fmt.Sprintf("%.2f", v.Float64())
	case slog.KindAny:
		switch x := v.Any().(type) {
		case error:
			return x.Error()
		case []string:
			return "[" + strings.Join(x, ",") + "]"
		}
	}
	s := v.String()
	if strings.ContainsAny(s, " \t\n\"") {
		return fmt.Sprintf("%q", s)
	}
	return s
}

// recordSource returns "file:line" for a pc if available.
func recordSource(pc uintptr) string {
	fs := runtime.CallersFrames([]uintptr{pc})
	f, _ := fs.Next()
	if f.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
}
