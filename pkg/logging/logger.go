package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger writes session diagnostics to a rotating file. It never writes to
// the terminal: while a session is running the screen belongs to the
// renderer.
type Logger struct {
	logger        *log.Logger
	closer        io.Closer
	jsonMode      bool
	correlationID string
}

// Options configures a file logger.
type Options struct {
	// Path of the log file. Empty selects DefaultLogPath.
	Path string

	// JSON writes one JSON object per line instead of plain text.
	JSON bool
}

// DefaultLogPath returns ~/.cmdline/session.log.
func DefaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	return filepath.Join(home, ".cmdline", "session.log")
}

// NewLogger creates a logger backed by a rotating log file. JSON output is
// also enabled by CMDLINE_JSON_LOGS=1.
func NewLogger(opts Options) (*Logger, error) {
	path := opts.Path
	if path == "" {
		path = DefaultLogPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	l := NewWithWriter(logFile, opts.JSON || os.Getenv("CMDLINE_JSON_LOGS") == "1")
	l.closer = logFile
	return l, nil
}

// NewWithWriter creates a logger writing to w.
func NewWithWriter(w io.Writer, jsonMode bool) *Logger {
	flags := log.LstdFlags
	if jsonMode {
		flags = 0
	}
	return &Logger{
		logger:        log.New(w, "", flags),
		jsonMode:      jsonMode,
		correlationID: uuid.NewString(),
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewWithWriter(io.Discard, false)
}

// CorrelationID identifies the session in every log line.
func (l *Logger) CorrelationID() string {
	return l.correlationID
}

// Log writes a message at the given level.
func (l *Logger) Log(level string, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	if l.jsonMode {
		_ = json.NewEncoder(l.logger.Writer()).Encode(map[string]any{
			"time":  time.Now().Format(time.RFC3339),
			"level": level,
			"msg":   message,
			"cid":   l.correlationID,
		})
		return
	}
	l.logger.Printf("[%s] [%s] %s", strings.ToUpper(level), l.correlationID, message)
}

// Debug logs debug information
func (l *Logger) Debug(format string, args ...interface{}) {
	l.Log("debug", format, args...)
}

// Info logs informational messages
func (l *Logger) Info(format string, args ...interface{}) {
	l.Log("info", format, args...)
}

// Warn logs warning messages
func (l *Logger) Warn(format string, args ...interface{}) {
	l.Log("warn", format, args...)
}

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	l.Log("error", format, args...)
}

// LogError logs err at error level.
func (l *Logger) LogError(err error) {
	if err == nil {
		return
	}
	l.Error("%v", err)
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}
