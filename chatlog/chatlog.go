// Package chatlog records inbound messages to an append-only log.
package chatlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"sync"
)

// Header is the first row of every log file.
var Header = []string{"User ID", "Message Type", "Message Text"}

type Record struct {
	UserID   int64
	ChatType string
	Text     string
}

func (r Record) row() []string {
	return []string{strconv.FormatInt(r.UserID, 10), r.ChatType, r.Text}
}

type Appender interface {
	Append(r Record) error
}

// File is a CSV log. The file is opened and closed on every Append; no handle
// is held between writes.
type File struct {
	path string
}

// OpenFile returns a File for path, creating it with Header if it does not
// exist. An existing file is never truncated.
func OpenFile(path string) (*File, error) {
	f, err := openLog(path)
	if err != nil {
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close log: %w", err)
	}
	return &File{path: path}, nil
}

func (l *File) Path() string { return l.path }

// Append writes one row. A log removed since the last write is recreated
// with its header.
func (l *File) Append(r Record) error {
	f, err := openLog(l.path)
	if err != nil {
		return err
	}
	if err := writeRow(f, r.row()); err != nil {
		_ = f.Close()
		return fmt.Errorf("append log: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close log: %w", err)
	}
	return nil
}

// openLog opens path for appending. Whoever creates the file writes Header.
func openLog(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("open log: %w", err)
	}
	f, err = os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE|os.O_EXCL, 0o644)
	switch {
	case errors.Is(err, fs.ErrExist):
		return openLog(path)
	case err != nil:
		return nil, fmt.Errorf("create log: %w", err)
	}
	if err := writeRow(f, Header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write log header: %w", err)
	}
	return f, nil
}

func writeRow(f *os.File, row []string) error {
	w := csv.NewWriter(f)
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// Memory keeps records in memory.
type Memory struct {
	mu      sync.Mutex
	records []Record
}

func (m *Memory) Append(r Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, r)
	return nil
}

func (m *Memory) Records() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Record(nil), m.records...)
}
