// Copyright 2025 walteh LLC
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

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/fastcopy/pkg/text"
)

// 🎨 Display configuration
const (
	entryIndent = 2  // spaces to indent entry lines
	nameWidth   = 45 // width for the source path column
	sizeWidth   = 10 // width for the byte count column
)

// 🎯 EntryOperation represents one top-level copy entry for logging
type EntryOperation struct {
	Source      string // Source path as the user gave it
	Destination string // Where it went
	Bytes       int64  // Bytes written for this entry
	Failed      bool   // Whether the entry failed
	Skipped     bool   // Whether the entry was skipped (declined overwrite)
	Reason      string // Failure or skip reason, empty on success
}

// 🎯 Logger pairs human console output with structured zerolog records
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
	entries []EntryOperation
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatEntryOperation formats an entry result for display
func (l *Logger) formatEntryOperation(op EntryOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.Failed:
		symbol = '✗'
		symbolColor = color.FgRed
	case op.Skipped:
		symbol = '•'
		symbolColor = color.FgYellow
	default:
		symbol = '✓'
		symbolColor = color.FgGreen
	}

	size := ""
	if !op.Failed && !op.Skipped {
		size = text.FormatBytes(op.Bytes)
	}

	line := fmt.Sprintf("%s%s %s %s",
		fmt.Sprintf("%*s", entryIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		text.Pad(op.Source, nameWidth),
		fmt.Sprintf("%-*s", sizeWidth, size))

	if op.Reason != "" {
		line += color.New(color.Faint).Sprint(op.Reason)
	}
	return line
}

// 📝 LogEntryOperation logs the outcome of one top-level entry
func (l *Logger) LogEntryOperation(ctx context.Context, op EntryOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, op)

	fmt.Fprintln(l.console, l.formatEntryOperation(op))

	l.zlog.Info().
		Str("source", op.Source).
		Str("destination", op.Destination).
		Int64("bytes", op.Bytes).
		Bool("failed", op.Failed).
		Bool("skipped", op.Skipped).
		Str("reason", op.Reason).
		Msg("entry finished")
}

// 📝 RecordEntry stores an entry outcome for the summary without printing a
// console line. Used while the progress bar owns the terminal.
func (l *Logger) RecordEntry(op EntryOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, op)

	l.zlog.Info().
		Str("source", op.Source).
		Str("destination", op.Destination).
		Int64("bytes", op.Bytes).
		Bool("failed", op.Failed).
		Bool("skipped", op.Skipped).
		Str("reason", op.Reason).
		Msg("entry finished")
}

// 📝 Summary prints the batch result line and returns it
func (l *Logger) Summary() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	var copied, failed, skipped int
	var bytes int64
	for _, op := range l.entries {
		switch {
		case op.Failed:
			failed++
		case op.Skipped:
			skipped++
		default:
			copied++
			bytes += op.Bytes
		}
	}

	summary := fmt.Sprintf("%d copied (%s), %d skipped, %d failed",
		copied, text.FormatBytes(bytes), skipped, failed)
	fmt.Fprintf(l.console, "\n%s\n", summary)

	l.zlog.Info().
		Int("copied", copied).
		Int("skipped", skipped).
		Int("failed", failed).
		Int64("bytes", bytes).
		Msg("batch finished")

	return summary
}

// 📝 LogNewline prints a blank line to the console
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("fastcopy")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
