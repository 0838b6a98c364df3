// Package log provides the debug logger used across cgc. Messages are
// buffered until a destination is chosen with SetFile, and can additionally
// be echoed to a terminal when running verbose.
package log

import (
	"io"
	"log"
	"os"
	"sync"
)

// DebugLogger buffers debug output until it knows where to send it.
// It implements io.Writer so it can back a standard log.Logger.
type DebugLogger struct {
	mu      sync.Mutex
	file    *os.File
	echo    io.Writer
	buffer  []byte
	discard bool
}

var (
	globalDebugLogger = &DebugLogger{}
	stdLogger         = log.New(globalDebugLogger, "", log.LstdFlags|log.Lmicroseconds)
	echoLogger        = log.New(io.Discard, "cgc: ", 0)
)

// Write implements io.Writer.
func (l *DebugLogger) Write(p []byte) (n int, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.discard {
		return len(p), nil
	}

	if l.file != nil {
		n, err = l.file.Write(p)
		_ = l.file.Sync()
		return n, err
	}

	// p may be reused by the caller
	b := make([]byte, len(p))
	copy(b, p)
	l.buffer = append(l.buffer, b...)
	return len(p), nil
}

// SetFile sets the debug log file path, creating the file when needed and
// flushing anything buffered so far. An empty path discards all logs.
func SetFile(path string) error {
	globalDebugLogger.mu.Lock()
	defer globalDebugLogger.mu.Unlock()

	if globalDebugLogger.file != nil {
		_ = globalDebugLogger.file.Close()
		globalDebugLogger.file = nil
	}

	if path == "" {
		globalDebugLogger.discard = true
		globalDebugLogger.buffer = nil
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec
	if err != nil {
		globalDebugLogger.discard = true
		globalDebugLogger.buffer = nil
		return err
	}

	globalDebugLogger.file = f
	globalDebugLogger.discard = false

	if len(globalDebugLogger.buffer) > 0 {
		_, _ = f.Write(globalDebugLogger.buffer)
		_ = f.Sync()
		globalDebugLogger.buffer = nil
	}

	return nil
}

// SetEcho mirrors every message to w, typically os.Stderr for --verbose.
// A nil writer turns echoing off.
func SetEcho(w io.Writer) {
	globalDebugLogger.mu.Lock()
	globalDebugLogger.echo = w
	globalDebugLogger.mu.Unlock()

	if w == nil {
		echoLogger.SetOutput(io.Discard)
		return
	}
	echoLogger.SetOutput(w)
}

// Verbose reports whether messages are echoed.
func Verbose() bool {
	globalDebugLogger.mu.Lock()
	defer globalDebugLogger.mu.Unlock()
	return globalDebugLogger.echo != nil
}

// Printf writes a formatted debug message.
func Printf(format string, args ...any) {
	stdLogger.Printf(format, args...)
	echoLogger.Printf(format, args...)
}

// Println writes a debug message.
func Println(v ...any) {
	stdLogger.Println(v...)
	echoLogger.Println(v...)
}

// Close closes the debug log file if open.
func Close() error {
	globalDebugLogger.mu.Lock()
	defer globalDebugLogger.mu.Unlock()

	if globalDebugLogger.file == nil {
		return nil
	}

	err := globalDebugLogger.file.Close()
	globalDebugLogger.file = nil
	return err
}
