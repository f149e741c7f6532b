// Package logger provides logging implementations for stream updates and
// execution results.
//
// ConsoleLogger writes timestamped, level-filtered lines and colours them
// when the destination is a terminal. Implementations are thread-safe.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/harrison/claudestream/internal/models"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// Logger receives records as they are delivered by the execution layer.
type Logger interface {
	LogStreamUpdate(update models.StreamUpdate)
	LogExecutionResult(result models.ExecutionResult)
}

// ConsoleLogger logs records to a writer with timestamps and thread safety.
// All output is prefixed with [HH:MM:SS] timestamps.
// Color output is automatically enabled for terminal output (os.Stdout/os.Stderr).
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// SetColor forces color output on or off, overriding terminal detection.
func (cl *ConsoleLogger) SetColor(enabled bool) {
	cl.mutex.Lock()
	defer cl.mutex.Unlock()
	cl.colorOutput = enabled
}

// isTerminal checks if the writer is a terminal that supports colors.
func isTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}
	if w == os.Stdout || w == os.Stderr {
		// fatih/color already honours NO_COLOR and TTY detection
		return !color.NoColor
	}
	return false
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
// Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	}
	return "info"
}

// shouldLog checks if a message at the given level should be logged.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// LogTrace logs a trace-level message (most verbose).
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

// logWithLevel writes "[HH:MM:SS] [LEVEL] message" if filtering allows it.
func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil {
		return
	}
	if !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var formatted string
	if cl.colorOutput {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, colorLevel(level), message)
	} else {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, level, message)
	}

	cl.writer.Write([]byte(formatted))
}

func colorLevel(level string) string {
	switch strings.ToUpper(level) {
	case "TRACE":
		return color.New(color.FgHiBlack).Sprint(level)
	case "DEBUG":
		return color.New(color.FgCyan).Sprint(level)
	case "INFO":
		return color.New(color.FgBlue).Sprint(level)
	case "WARN":
		return color.New(color.FgYellow).Sprint(level)
	case "ERROR":
		return color.New(color.FgRed).Sprint(level)
	default:
		return level
	}
}

// LogStreamUpdate logs one stream update.
// Errors go out at ERROR, unknown types at WARN, progress and tool calls at
// INFO and everything else at DEBUG.
// Format: "[HH:MM:SS] [LEVEL] <type> <details>"
func (cl *ConsoleLogger) LogStreamUpdate(update models.StreamUpdate) {
	msg := describeUpdate(update, cl.colors())

	switch {
	case update.IsError():
		cl.LogError(msg)
	case !update.Type.IsKnown():
		cl.LogWarn(msg)
	case update.Type == models.UpdateProgress, len(update.ToolCalls) > 0, update.Type == models.UpdateResult:
		cl.LogInfo(msg)
	default:
		cl.LogDebug(msg)
	}
}

// LogExecutionResult logs the final outcome of an execution.
// Format: "[HH:MM:SS] [INFO] result session=<id> turns=<n> cost=$<x> duration=<d> tools=<names>"
func (cl *ConsoleLogger) LogExecutionResult(result models.ExecutionResult) {
	msg := describeResult(result, cl.colors())
	if result.IsError {
		cl.LogError(msg)
		return
	}
	cl.LogInfo(msg)
}

func (cl *ConsoleLogger) colors() *colorScheme {
	cl.mutex.Lock()
	defer cl.mutex.Unlock()
	if !cl.colorOutput {
		return nil
	}
	return newColorScheme()
}

// describeUpdate renders the derived values of an update on one line.
func describeUpdate(u models.StreamUpdate, scheme *colorScheme) string {
	parts := []string{scheme.typeName(u.Type)}

	if u.ExecutionID != nil {
		parts = append(parts, scheme.metric("exec", *u.ExecutionID))
	}
	if names := u.ToolNames(); len(names) > 0 {
		parts = append(parts, scheme.metric("tools", strings.Join(names, ",")))
	}
	if pct, ok := u.ProgressPercentage(); ok {
		parts = append(parts, NewPercentBar(10, scheme != nil).Render(pct))
	}
	if msg, ok := u.ErrorMessage(); ok {
		parts = append(parts, scheme.failure(fmt.Sprintf("error: %s", truncate(msg, 200))))
	} else if u.Content != nil && *u.Content != "" {
		parts = append(parts, fmt.Sprintf("%q", truncate(*u.Content, 80)))
	}

	return strings.Join(parts, " ")
}

// describeResult renders an execution result on one line.
func describeResult(r models.ExecutionResult, scheme *colorScheme) string {
	parts := []string{
		"result",
		scheme.metric("session", r.SessionID),
		scheme.metric("turns", r.NumTurns),
		scheme.cost(r.Cost),
		scheme.metric("duration", formatDuration(r.Duration())),
	}
	if names := r.ToolNames(); len(names) > 0 {
		parts = append(parts, scheme.metric("tools", strings.Join(names, ",")))
	}
	if r.IsError {
		kind, ok := r.ErrorKind()
		if !ok {
			kind = "unknown"
		}
		parts = append(parts, scheme.failure("failed: "+kind))
	}
	return strings.Join(parts, " ")
}

// truncate shortens s to at most max runes, never splitting a rune.
func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// formatDuration converts a time.Duration to a human-readable string.
// Examples: "250ms", "5s", "1m30s", "2h15m"
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Hour:
		hours := d / time.Hour
		remainder := d % time.Hour
		if remainder == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		minutes := remainder / time.Minute
		remainder = remainder % time.Minute
		if remainder == 0 {
			return fmt.Sprintf("%dh%dm", hours, minutes)
		}
		seconds := remainder / time.Second
		return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
	case d >= time.Minute:
		minutes := d / time.Minute
		remainder := d % time.Minute
		if remainder == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		seconds := remainder / time.Second
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	case d >= time.Second:
		return fmt.Sprintf("%ds", int64(d.Seconds()))
	default:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
}

// NoOpLogger is a Logger implementation that discards all records.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// LogStreamUpdate is a no-op implementation.
func (n *NoOpLogger) LogStreamUpdate(update models.StreamUpdate) {
}

// LogExecutionResult is a no-op implementation.
func (n *NoOpLogger) LogExecutionResult(result models.ExecutionResult) {
}
