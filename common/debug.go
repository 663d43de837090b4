package common

import (
	"fmt"
	"log"
	"strings"
	"sync"
)

// Level is the severity of a debug line.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Sink receives debug lines. The browser build forwards them to the console,
// native builds to the standard logger.
type Sink interface {
	Log(level Level, msg string)
}

// EnableDebug gates every Debug* call.
var EnableDebug = true

var (
	sinkMu sync.RWMutex
	sink   Sink = StdSink{}
)

// SetSink replaces the active sink. A nil sink restores the standard logger.
func SetSink(s Sink) {
	sinkMu.Lock()
	defer sinkMu.Unlock()
	if s == nil {
		s = StdSink{}
	}
	sink = s
}

// StdSink writes through the standard library logger.
type StdSink struct{}

func (StdSink) Log(level Level, msg string) {
	if level == LevelInfo {
		log.Print(msg)
		return
	}
	log.Printf("%s: %s", strings.ToUpper(level.String()), msg)
}

func emit(level Level, args []interface{}) {
	if !EnableDebug {
		return
	}
	sinkMu.RLock()
	s := sink
	sinkMu.RUnlock()
	s.Log(level, strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
}

// Debug logs a message if debug mode is enabled.
func Debug(args ...interface{}) {
	emit(LevelInfo, args)
}

// Debugf logs a formatted message if debug mode is enabled.
func Debugf(format string, args ...interface{}) {
	emit(LevelInfo, []interface{}{fmt.Sprintf(format, args...)})
}

// DebugWarn logs a warning if debug mode is enabled.
func DebugWarn(args ...interface{}) {
	emit(LevelWarn, args)
}

// DebugError logs an error if debug mode is enabled.
func DebugError(args ...interface{}) {
	emit(LevelError, args)
}

// Entry is one captured debug line.
type Entry struct {
	Level Level
	Msg   string
}

// MemorySink keeps debug lines in memory. Tests install it to assert that a
// degraded path was taken.
type MemorySink struct {
	mu      sync.Mutex
	entries []Entry
}

func (m *MemorySink) Log(level Level, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, Entry{Level: level, Msg: msg})
}

// Entries returns a copy of the captured lines.
func (m *MemorySink) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Contains reports whether any captured line contains substr.
func (m *MemorySink) Contains(substr string) bool {
	for _, e := range m.Entries() {
		if strings.Contains(e.Msg, substr) {
			return true
		}
	}
	return false
}
