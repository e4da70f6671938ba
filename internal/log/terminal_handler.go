package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Attribute keys with a fixed place in the terminal layout.
const (
	repoKey  = "repo"
	errorKey = "error"
)

var (
	dimStyle   = color.New(color.Faint)
	boldStyle  = color.New(color.Bold)
	repoStyle  = color.New(color.FgMagenta)
	debugStyle = color.New(color.FgCyan)
	infoStyle  = color.New(color.FgGreen)
	warnStyle  = color.New(color.FgYellow)
	errorStyle = color.New(color.FgRed)
)

// TerminalHandler writes one line per record for an interactive terminal:
//
//	12:04:05 WRN [api] skipping repository path=/src/api error="exit status 128"
//
// A top-level repo attribute becomes the bracketed tag, with the full path
// kept as path= when it differs from the tag. Errors always come last.
// NO_COLOR and non-terminal output disable colours.
type TerminalHandler struct {
	writer io.Writer
	level  slog.Leveler
	fields []field
	prefix string
	mu     *sync.Mutex
}

type field struct {
	key   string
	value slog.Value
}

func newTerminalHandler(w io.Writer, opts *slog.HandlerOptions) *TerminalHandler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &TerminalHandler{writer: w, level: level, mu: &sync.Mutex{}}
}

// Enabled reports whether the handler handles records at the given level.
func (h *TerminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes the record.
func (h *TerminalHandler) Handle(_ context.Context, r slog.Record) error {
	fields := append([]field{}, h.fields...)
	r.Attrs(func(a slog.Attr) bool {
		fields = flatten(fields, a, h.prefix)
		return true
	})

	var repo string
	var errs, rest []field
	for _, f := range fields {
		switch f.key {
		case repoKey:
			repo = f.value.String()
		case errorKey:
			errs = append(errs, f)
		default:
			rest = append(rest, f)
		}
	}

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	var buf bytes.Buffer
	buf.WriteString(dimStyle.Sprint(ts.Format(time.TimeOnly)))
	buf.WriteByte(' ')
	style, label := levelStyle(r.Level)
	buf.WriteString(style.Sprint(label))
	buf.WriteByte(' ')

	if repo != "" {
		tag := repoTag(repo)
		buf.WriteString(repoStyle.Sprint("[" + tag + "]"))
		buf.WriteByte(' ')
		if tag != repo {
			rest = append([]field{{key: "path", value: slog.StringValue(repo)}}, rest...)
		}
	}
	buf.WriteString(boldStyle.Sprint(r.Message))

	for _, f := range rest {
		writeField(&buf, f, nil)
	}
	for _, f := range errs {
		writeField(&buf, f, errorStyle)
	}
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.writer.Write(buf.Bytes())
	return err
}

// WithAttrs returns a handler that also writes attrs.
func (h *TerminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	fields := append([]field{}, h.fields...)
	for _, a := range attrs {
		fields = flatten(fields, a, h.prefix)
	}
	return &TerminalHandler{writer: h.writer, level: h.level, fields: fields, prefix: h.prefix, mu: h.mu}
}

// WithGroup returns a handler that prefixes later attribute keys with name.
func (h *TerminalHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &TerminalHandler{writer: h.writer, level: h.level, fields: h.fields, prefix: h.prefix + name + ".", mu: h.mu}
}

// flatten appends a, expanding groups into dotted keys.
func flatten(fields []field, a slog.Attr, prefix string) []field {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return fields
	}
	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			fields = flatten(fields, ga, prefix)
		}
		return fields
	}
	return append(fields, field{key: prefix + a.Key, value: a.Value})
}

// repoTag shortens a repository path to its last element.
func repoTag(repo string) string {
	base := filepath.Base(filepath.Clean(repo))
	if base == "." || base == string(filepath.Separator) {
		return repo
	}
	return base
}

func levelStyle(level slog.Level) (*color.Color, string) {
	switch {
	case level < slog.LevelInfo:
		return debugStyle, "DBG"
	case level < slog.LevelWarn:
		return infoStyle, "INF"
	case level < slog.LevelError:
		return warnStyle, "WRN"
	default:
		return errorStyle, "ERR"
	}
}

func writeField(buf *bytes.Buffer, f field, style *color.Color) {
	buf.WriteByte(' ')
	buf.WriteString(dimStyle.Sprint(f.key + "="))
	v := formatValue(f.value)
	if style != nil {
		v = style.Sprint(v)
	}
	buf.WriteString(v)
}

// formatValue quotes strings that would otherwise break key=value parsing.
func formatValue(v slog.Value) string {
	if v.Kind() == slog.KindAny {
		if err, ok := v.Any().(error); ok {
			return fmt.Sprintf("%q", err.Error())
		}
	}
	s := v.String()
	if v.Kind() == slog.KindString && (s == "" || strings.ContainsAny(s, " \t\n\"\\=")) {
		return fmt.Sprintf("%q", s)
	}
	return s
}
