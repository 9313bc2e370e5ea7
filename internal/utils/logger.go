package utils

import (
	"fmt"
	"log"
	"strings"
)

type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	CurrentLevel   LogLevel = LevelWarn
	ShowRaylibInfo bool
)

const colorReset = "\033[0m"

var levelColors = map[LogLevel]string{
	LevelDebug: "\033[36m",
	LevelInfo:  "\033[34m",
	LevelWarn:  "\033[33m",
	LevelError: "\033[31m",
}

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// ParseLevel accepts the names printed by String, case-insensitively.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	}
	return LevelWarn, fmt.Errorf("unknown log level %q", s)
}

// Enabled reports whether messages at level are currently printed.
func Enabled(level LogLevel) bool {
	return level >= CurrentLevel
}

func prefix(level LogLevel) string {
	return fmt.Sprintf("%s[%s]%s ", levelColors[level], level, colorReset)
}

func logMessage(level LogLevel, format string, v ...any) {
	if !Enabled(level) {
		return
	}
	printMessage(level, format, v...)
}

// printMessage writes regardless of CurrentLevel.
func printMessage(level LogLevel, format string, v ...any) {
	log.Printf(prefix(level)+format, v...)
}

func Info(format string, v ...any)  { logMessage(LevelInfo, format, v...) }
func Debug(format string, v ...any) { logMessage(LevelDebug, format, v...) }
func Warn(format string, v ...any)  { logMessage(LevelWarn, format, v...) }
func Error(format string, v ...any) { logMessage(LevelError, format, v...) }

// RaylibLogCallback routes raylib's trace log through the leveled logger.
// Install it with rl.SetTraceLogCallback.
func RaylibLogCallback(level int, text string) {
	const colorMagenta = "\033[35m"
	formatted := colorMagenta + "[RAYLIB] " + colorReset + strings.ReplaceAll(text, "%", "%%")
	switch level {
	case 1, 2: // LOG_TRACE, LOG_DEBUG
		Debug(formatted)
	case 3: // LOG_INFO
		if ShowRaylibInfo {
			printMessage(LevelInfo, formatted)
		} else {
			Info(formatted)
		}
	case 4: // LOG_WARNING
		Warn(formatted)
	case 5, 6: // LOG_ERROR, LOG_FATAL
		Error(formatted)
	}
}
