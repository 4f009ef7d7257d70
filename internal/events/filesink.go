package events

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oceaniadigital/lead-relay/pkg/logging"
)

// FileSink appends records to a per-day log file keyed by UTC date
// (lead-relay-2006-01-02.log). Each record is one JSON line written with a
// single Write call, so concurrent appends cannot interleave.
type FileSink struct {
	dir    string
	logger *logging.Logger

	mu      sync.Mutex
	day     string
	file    *os.File
	nowFunc func() time.Time
}

// NewFileSink creates a sink writing under dir, creating it if needed.
func NewFileSink(dir string, logger *logging.Logger) (*FileSink, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileSink{
		dir:     dir,
		logger:  logger,
		nowFunc: time.Now,
	}, nil
}

// Append writes the record as one line to the current day's file. Failures
// are logged to the process logger and swallowed.
func (s *FileSink) Append(rec Record) {
	line, err := json.Marshal(rec)
	if err != nil {
		s.logger.Error("event sink: marshal record failed", "error", err, "type", rec.Type)
		return
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.rotateLocked(); err != nil {
		s.logger.Error("event sink: open log file failed", "error", err, "dir", s.dir)
		return
	}
	if _, err := s.file.Write(line); err != nil {
		s.logger.Error("event sink: append failed", "error", err, "type", rec.Type)
	}
}

// rotateLocked opens the file for the current UTC day, closing yesterday's
// handle when the date rolls over. Caller holds s.mu.
func (s *FileSink) rotateLocked() error {
	day := s.nowFunc().UTC().Format("2006-01-02")
	if s.file != nil && day == s.day {
		return nil
	}
	if s.file != nil {
		s.file.Close()
		s.file = nil
	}
	path := filepath.Join(s.dir, "lead-relay-"+day+".log")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	s.day = day
	s.file = f
	return nil
}

// Close releases the current file handle.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

var _ Sink = (*FileSink)(nil)
