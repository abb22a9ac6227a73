package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultFilePath is the log file, relative to the working directory (project root when run via go run ./cmd/globe).
const DefaultFilePath = "logs/globe.log"

// maxLines bounds the in-memory history shown by the debug overlay.
const maxLines = 200

// Options configures New.
type Options struct {
	File    string // JSON lines are appended here; empty = DefaultFilePath
	Level   string // zerolog level name; empty = info
	Console io.Writer
}

// Logger is a zerolog logger that also appends to a file on disk and keeps the most recent lines
// in memory for on-screen display.
type Logger struct {
	zerolog.Logger

	mu    sync.Mutex
	lines []string
	file  *os.File
}

// New returns a Logger and ensures the log directory exists. Console output is human readable;
// the file gets JSON.
func New(opts Options) (*Logger, error) {
	path := opts.File
	if path == "" {
		path = DefaultFilePath
	}
	level := zerolog.InfoLevel
	if opts.Level != "" {
		lv, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
		level = lv
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	l := &Logger{file: f}
	writers := []io.Writer{
		f,
		zerolog.ConsoleWriter{Out: (*lineSink)(l), NoColor: true, TimeFormat: time.DateTime},
	}
	if opts.Console != nil {
		writers = append(writers, zerolog.ConsoleWriter{Out: opts.Console, TimeFormat: time.TimeOnly})
	}
	l.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().Timestamp().Logger()
	return l, nil
}

// Lines returns a copy of the most recent lines, oldest first.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Close closes the log file. The logger keeps its in-memory history.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// lineSink stores formatted console lines on the Logger.
type lineSink Logger

func (s *lineSink) Write(p []byte) (int, error) {
	text := strings.TrimRight(string(p), "\n")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, line := range strings.Split(text, "\n") {
		s.lines = append(s.lines, line)
	}
	if over := len(s.lines) - maxLines; over > 0 {
		s.lines = append(s.lines[:0], s.lines[over:]...)
	}
	return len(p), nil
}
