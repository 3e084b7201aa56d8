// Relaybot - Real-time Chat Bot Service for Cloud Run
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/relaybot

package logging

import (
	"bytes"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"github.com/rs/zerolog"
	"github.com/valyala/fastjson"

	"github.com/tomtom215/relaybot/internal/metrics"
)

// reservedFields are consumed by Record itself and never copied to Fields.
var reservedFields = map[string]struct{}{
	zerolog.LevelFieldName:     {},
	zerolog.MessageFieldName:   {},
	zerolog.TimestampFieldName: {},
	OriginField:                {},
	FileField:                  {},
	LineField:                  {},
	FunctionField:              {},
}

// RouterConfig configures a Router.
type RouterConfig struct {
	// Filter decides which origins are emitted. Default: NewTargetFilter(nil, nil).
	Filter *TargetFilter

	// Format selects the renderer. Default: FormatStructured.
	Format Format

	// Output receives one rendered entry per line. Default: os.Stdout.
	Output io.Writer

	// Namespace is the origin given to records that carry none.
	// Default: Namespace.
	Namespace string
}

// Router is the process-wide log sink. It receives every zerolog event,
// drops those whose origin fails the filter, and writes the rest through
// the configured Formatter. It is safe for concurrent use; each rendered
// entry is written with a single Write under a mutex so lines never
// interleave.
type Router struct {
	filter    *TargetFilter
	format    Format
	formatter Formatter
	namespace string

	parsers fastjson.ParserPool

	mu  sync.Mutex
	out io.Writer

	// stack captures the goroutine stack for Error and Warn records.
	stack func() string
}

// NewRouter creates a Router. It does not install it; see Install.
func NewRouter(cfg RouterConfig) *Router {
	if cfg.Filter == nil {
		cfg.Filter = NewTargetFilter(nil, nil)
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.Namespace == "" {
		cfg.Namespace = Namespace
	}
	return &Router{
		filter:    cfg.Filter,
		format:    cfg.Format,
		formatter: cfg.Format.Formatter(),
		namespace: cfg.Namespace,
		out:       cfg.Output,
		stack:     captureStack,
	}
}

// Allows reports whether records from origin would be emitted.
func (r *Router) Allows(origin string) bool {
	return r.filter.Allows(origin)
}

// Format returns the configured output format.
func (r *Router) Format() Format {
	return r.format
}

// Write implements io.Writer for events without a known level; the level
// is read from the event itself.
func (r *Router) Write(p []byte) (int, error) {
	return r.route(p, zerolog.NoLevel)
}

// WriteLevel implements zerolog.LevelWriter.
func (r *Router) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	return r.route(p, level)
}

func (r *Router) route(p []byte, level zerolog.Level) (int, error) {
	parser := r.parsers.Get()
	defer r.parsers.Put(parser)

	v, err := parser.ParseBytes(p)
	if err != nil || v.Type() != fastjson.TypeObject {
		// Not a zerolog event, so there is no origin to filter on. Only code
		// holding the Router writes raw bytes; emit them rather than lose them.
		return r.writeLine(bytes.TrimRight(p, "\n"), len(p))
	}

	origin := string(v.GetStringBytes(OriginField))
	if origin == "" {
		origin = r.namespace
	}

	if level == zerolog.NoLevel {
		if parsed, perr := zerolog.ParseLevel(string(v.GetStringBytes(zerolog.LevelFieldName))); perr == nil {
			level = parsed
		}
	}
	lvl := levelFromZerolog(level)

	if !r.filter.Allows(origin) {
		metrics.LogRecords.WithLabelValues(lvl.Label(), metrics.OutcomeFiltered).Inc()
		return len(p), nil
	}

	rec := decodeRecord(v, lvl, origin)

	var stack string
	if lvl.Actionable() {
		stack = r.stack()
	}

	line := r.formatter.Render(rec, stack)
	metrics.LogRecords.WithLabelValues(lvl.Label(), metrics.OutcomeEmitted).Inc()
	return r.writeLine([]byte(line), len(p))
}

// writeLine writes line plus a newline as one Write and reports n as the
// consumed length on success.
func (r *Router) writeLine(line []byte, n int) (int, error) {
	buf := make([]byte, 0, len(line)+1)
	buf = append(buf, line...)
	buf = append(buf, '\n')

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := r.out.Write(buf); err != nil {
		return 0, err
	}
	return n, nil
}

// decodeRecord lifts the reserved fields of a zerolog event into a Record
// and keeps everything else, in order, as Fields.
func decodeRecord(v *fastjson.Value, lvl Level, origin string) *Record {
	rec := &Record{
		Level:    lvl,
		Origin:   origin,
		Message:  string(v.GetStringBytes(zerolog.MessageFieldName)),
		File:     string(v.GetStringBytes(FileField)),
		Line:     v.GetInt(LineField),
		Function: string(v.GetStringBytes(FunctionField)),
	}

	obj, err := v.Object()
	if err != nil {
		return rec
	}
	obj.Visit(func(key []byte, fv *fastjson.Value) {
		if _, reserved := reservedFields[string(key)]; reserved {
			return
		}
		f := Field{Key: string(key), Raw: fv.MarshalTo(nil)}
		if fv.Type() == fastjson.TypeString {
			f.Text = string(fv.GetStringBytes())
		} else {
			f.Text = string(f.Raw)
		}
		rec.Fields = append(rec.Fields, f)
	})
	return rec
}

func captureStack() string {
	return string(bytes.TrimRight(debug.Stack(), "\n"))
}
