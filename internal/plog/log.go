// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package plog is the structured-logging shim the container parser
// holds onto for its entire readFile/readBuffer call, mirroring the shape of the teacher's own github.com/saferwall/pe/log
// package: a minimal Logger interface, a leveled Helper wrapper, a
// level filter, and a stdlib-backed default.
package plog

import (
	"fmt"
	"log"
	"os"
)

// Level is a logging severity.
type Level int

// Levels, most to least verbose.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Logger is the minimal sink every Helper writes through.
type Logger interface {
	Log(level Level, keyvals ...interface{}) error
}

// stdLogger writes to an underlying *log.Logger.
type stdLogger struct {
	l *log.Logger
}

// NewStdLogger returns a Logger that writes to w using the standard
// library's log package, one line per call.
func NewStdLogger(w *os.File) Logger {
	return &stdLogger{l: log.New(w, "", log.LstdFlags)}
}

func (s *stdLogger) Log(level Level, keyvals ...interface{}) error {
	s.l.Println(append([]interface{}{levelName(level)}, keyvals...)...)
	return nil
}

func levelName(l Level) string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// filter wraps a Logger and drops records below a minimum level.
type filter struct {
	next Logger
	min  Level
}

// FilterOption configures a filter built by NewFilter.
type FilterOption func(*filter)

// FilterLevel sets the minimum level a filtered Logger passes
// through.
func FilterLevel(min Level) FilterOption {
	return func(f *filter) { f.min = min }
}

// NewFilter returns a Logger that forwards to next only records at or
// above the configured minimum level.
func NewFilter(next Logger, opts ...FilterOption) Logger {
	f := &filter{next: next, min: LevelDebug}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *filter) Log(level Level, keyvals ...interface{}) error {
	if level < f.min {
		return nil
	}
	return f.next.Log(level, keyvals...)
}

// Helper is the leveled convenience wrapper components hold a pointer
// to, matching the teacher's *log.Helper field on pe.File.
type Helper struct {
	logger Logger
}

// NewHelper wraps logger in a Helper.
func NewHelper(logger Logger) *Helper {
	return &Helper{logger: logger}
}

// Debugf logs a formatted message at debug level.
func (h *Helper) Debugf(format string, args ...interface{}) {
	h.log(LevelDebug, format, args...)
}

// Infof logs a formatted message at info level.
func (h *Helper) Infof(format string, args ...interface{}) {
	h.log(LevelInfo, format, args...)
}

// Errorf logs a formatted message at error level.
func (h *Helper) Errorf(format string, args ...interface{}) {
	h.log(LevelError, format, args...)
}

func (h *Helper) log(level Level, format string, args ...interface{}) {
	if h == nil || h.logger == nil {
		return
	}
	h.logger.Log(level, fmt.Sprintf(format, args...))
}

// Default returns a Helper writing to stderr, filtered to warnings
// and above — the parser's default when no Options.Logger is given.
func Default() *Helper {
	l := NewStdLogger(os.Stderr)
	return NewHelper(NewFilter(l, FilterLevel(LevelWarn)))
}
