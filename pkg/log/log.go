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
)

// 🎨 Display configuration
const (
	copyIndent   = 4  // spaces to indent copy entries
	nameWidth    = 35 // Base width for blueprint name
	numberWidth  = 7  // Width for missile number
	statusWidth  = 15 // Width for status text
	summaryWidth = 10
)

// 🎯 CopyOperation represents one written (or failed) copy for logging
type CopyOperation struct {
	Name       string // Blueprint folder name of the copy
	Number     int    // Missile number the copy was given
	Status     string // Operation status
	IsNew      bool   // Whether the folder had no blueprint before
	IsReplaced bool   // Whether an older blueprint was replaced
	IsFailed   bool   // Whether writing the copy failed
	Items      int    // Number of renamed blocks
}

// 📦 DuplicateOperation represents a duplication run for logging
type DuplicateOperation struct {
	Source     string // Source blueprint name
	Library    string // Library folder
	FirstIndex int    // First missile number
	Count      int    // Number of copies
}

// 📊 Summary counts the copies of a finished duplication run
type Summary struct {
	New       int
	Replaced  int
	Unchanged int
	Failed    int
}

// Total returns the number of copies logged.
func (s Summary) Total() int {
	return s.New + s.Replaced + s.Unchanged + s.Failed
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	currentOp  *DuplicateOperation
	operations []CopyOperation
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
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

// 📝 formatCopyOperation formats a copy for display
func (l *Logger) formatCopyOperation(op CopyOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.IsFailed:
		symbol = '✗'
		symbolColor = color.FgRed
	case op.IsNew:
		symbol = '✓'
		symbolColor = color.FgGreen
	case op.IsReplaced:
		symbol = '⟳'
		symbolColor = color.FgBlue
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", copyIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Name),
		color.New(color.FgYellow).Sprint(fmt.Sprintf("%-*s", numberWidth, fmt.Sprintf("#%d", op.Number))),
		fmt.Sprintf("%-*s", statusWidth, op.Status))
}

// 📝 LogCopyOperation logs a copy
func (l *Logger) LogCopyOperation(ctx context.Context, op CopyOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.operations = append(l.operations, op)

	fmt.Fprintln(l.console, l.formatCopyOperation(op))

	l.zlog.Info().
		Str("copy", op.Name).
		Int("number", op.Number).
		Str("status", op.Status).
		Bool("is_new", op.IsNew).
		Bool("is_replaced", op.IsReplaced).
		Bool("is_failed", op.IsFailed).
		Int("items", op.Items).
		Msg("copy operation")
}

// 📝 StartDuplicate starts a new duplication run
func (l *Logger) StartDuplicate(ctx context.Context, op DuplicateOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.operations = nil

	fmt.Fprintf(l.console, "[duplicating into %s]\n",
		color.New(color.FgCyan).Sprint(op.Library))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Source),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprintf("#%d..#%d", op.FirstIndex, op.FirstIndex+op.Count-1))

	l.zlog.Info().
		Str("source", op.Source).
		Str("library", op.Library).
		Int("first_index", op.FirstIndex).
		Int("count", op.Count).
		Msg("starting duplication")
}

// 📝 EndDuplicate ends the current duplication run and returns its summary
func (l *Logger) EndDuplicate(ctx context.Context) Summary {
	l.mu.Lock()
	defer l.mu.Unlock()

	var sum Summary
	for _, op := range l.operations {
		switch {
		case op.IsFailed:
			sum.Failed++
		case op.IsNew:
			sum.New++
		case op.IsReplaced:
			sum.Replaced++
		default:
			sum.Unchanged++
		}
	}

	if l.currentOp == nil {
		return sum
	}

	fmt.Fprintf(l.console, "%s%s %s %s %s\n",
		fmt.Sprintf("%*s", copyIndent, ""),
		color.New(color.FgGreen).Sprint(fmt.Sprintf("%-*s", summaryWidth, fmt.Sprintf("%d new", sum.New))),
		color.New(color.FgBlue).Sprint(fmt.Sprintf("%-*s", summaryWidth, fmt.Sprintf("%d replaced", sum.Replaced))),
		color.New(color.FgCyan).Sprint(fmt.Sprintf("%-*s", summaryWidth, fmt.Sprintf("%d same", sum.Unchanged))),
		color.New(color.FgRed).Sprintf("%d failed", sum.Failed))

	l.zlog.Info().
		Str("source", l.currentOp.Source).
		Int("new", sum.New).
		Int("replaced", sum.Replaced).
		Int("unchanged", sum.Unchanged).
		Int("failed", sum.Failed).
		Msg("duplication complete")

	l.currentOp = nil
	l.operations = nil
	return sum
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("whamdup")
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
