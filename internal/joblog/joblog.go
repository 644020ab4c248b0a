package joblog

import (
	"fmt"
	"os"
	"sync"
)

// Writer appends timestamped lines to a per-job log file. The files are
// informational audit trails, not a parsed interchange format.
type Writer struct {
	mu   sync.Mutex
	file *os.File
}

// Open opens (or creates) the log file for appending
func Open(path string) (*Writer, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open job log %s: %w", path, err)
	}
	return &Writer{file: file}, nil
}

// WriteLine appends one line to the log
func (w *Writer) WriteLine(line string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.file.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("failed to append job log line: %w", err)
	}
	return nil
}

// WriteLines appends multiple lines as one locked batch
func (w *Writer) WriteLines(lines []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, line := range lines {
		if _, err := w.file.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("failed to append job log line: %w", err)
		}
	}
	return nil
}

// Close closes the underlying file
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}
