/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package liblog is a small structured-logging wrapper around logrus, in
// the style of golib/logger: leveled methods, merge-able Fields, and a
// disabled sink as the zero value so a nil/unset Logger is always safe to
// call.
package liblog

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Level mirrors golib/logger.Level: Debug is the most verbose, NilLevel
// disables logging entirely.
type Level uint8

const (
	ErrorLevel Level = iota
	WarnLevel
	InfoLevel
	DebugLevel
	NilLevel
)

func (l Level) logrus() logrus.Level {
	switch l {
	case ErrorLevel:
		return logrus.ErrorLevel
	case WarnLevel:
		return logrus.WarnLevel
	case InfoLevel:
		return logrus.InfoLevel
	default:
		return logrus.DebugLevel
	}
}

// Fields is a small immutable-update map of structured log fields,
// mirroring golib/logger.Fields' Add/Merge copy-on-write semantics.
type Fields map[string]interface{}

// Add returns a new Fields with key=val set, leaving the receiver untouched.
func (f Fields) Add(key string, val interface{}) Fields {
	res := make(Fields, len(f)+1)
	for k, v := range f {
		res[k] = v
	}
	res[key] = val
	return res
}

// Logger is the logging surface used throughout wait-on's core engine.
// Every method is nil-receiver safe so a zero-value *Logger is a no-op
// sink, matching golib/logger's "logger may be nil" pattern.
type Logger struct {
	entry   *logrus.Entry
	level   Level
	enabled bool
}

// New builds a Logger writing to w at the given level. enabled controls
// whether anything is emitted at all (spec.md §3's `log` option); level
// controls the floor once enabled (`verbose` raises it to DebugLevel per
// §4.6, where verbose implies log).
func New(w io.Writer, enabled bool, level Level) *Logger {
	if w == nil {
		w = os.Stderr
	}

	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: false})
	l.SetLevel(level.logrus())

	return &Logger{entry: logrus.NewEntry(l), level: level, enabled: enabled && level != NilLevel}
}

// Discard returns a Logger that never emits anything, used when `log` is
// false.
func Discard() *Logger {
	return &Logger{enabled: false}
}

func (l *Logger) with(f Fields) *logrus.Entry {
	if len(f) == 0 {
		return l.entry
	}
	return l.entry.WithFields(logrus.Fields(f))
}

// Debug logs at debug level (only visible when `verbose` is set).
func (l *Logger) Debug(msg string, f Fields) {
	if l == nil || !l.enabled || l.entry == nil {
		return
	}
	l.with(f).Debug(msg)
}

// Info logs at info level.
func (l *Logger) Info(msg string, f Fields) {
	if l == nil || !l.enabled || l.entry == nil {
		return
	}
	l.with(f).Info(msg)
}

// Warning logs at warning level.
func (l *Logger) Warning(msg string, f Fields) {
	if l == nil || !l.enabled || l.entry == nil {
		return
	}
	l.with(f).Warn(msg)
}

// Error logs at error level.
func (l *Logger) Error(msg string, f Fields) {
	if l == nil || !l.enabled || l.entry == nil {
		return
	}
	l.with(f).Error(msg)
}
